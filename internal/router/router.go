package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/handlers"
	"github.com/jobtrail-dev/jobtrail/internal/middleware"
	"github.com/jobtrail-dev/jobtrail/internal/types"
)

func NewRouter(conn *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(conn)
	companyHandler := handlers.NewCompanyHandler(conn)
	contactHandler := handlers.NewContactHandler(conn)
	communicationHandler := handlers.NewCommunicationHandler(conn)
	taskHandler := handlers.NewTaskHandler(conn)
	researchHandler := handlers.NewResearchHandler(conn)
	applicationHandler := handlers.NewApplicationHandler(conn)
	documentHandler := handlers.NewDocumentHandler(conn)
	exportHandler := handlers.NewExportHandler(conn)
	importHandler := handlers.NewImportHandler(conn)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(conn), authHandler.Me)
		}

		companies := api.Group("/companies", middleware.AuthMiddleware(conn))
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.POST("", companyHandler.CreateCompany)
			companies.POST("/find-or-create", companyHandler.FindOrCreateCompany)
			companies.GET("/:id", companyHandler.GetCompany)
			companies.PUT("/:id", companyHandler.UpdateCompany)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
			companies.GET("/:id/research", companyHandler.GetCompanyResearch)
		}

		contacts := api.Group("/contacts", middleware.AuthMiddleware(conn))
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.GET("/:id", contactHandler.GetContact)
			contacts.PUT("/:id", contactHandler.UpdateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		communications := api.Group("/communications", middleware.AuthMiddleware(conn))
		{
			communications.GET("", communicationHandler.ListCommunications)
			communications.POST("", communicationHandler.CreateCommunication)
			// gin's tree cannot hold a static and a wildcard child in the
			// same segment, so "upcoming" is dispatched from the wildcard.
			communications.GET("/:id", func(ctx *gin.Context) {
				if ctx.Param("id") == "upcoming" {
					communicationHandler.GetUpcoming(ctx)
					return
				}
				communicationHandler.GetCommunication(ctx)
			})
			communications.PUT("/:id", communicationHandler.UpdateCommunication)
			communications.DELETE("/:id", communicationHandler.DeleteCommunication)
			communications.POST("/:id/follow-up-actions", communicationHandler.CreateFollowUpAction)
		}

		followUpActions := api.Group("/follow-up-actions", middleware.AuthMiddleware(conn))
		{
			followUpActions.PUT("/:id", communicationHandler.UpdateFollowUpAction)
			followUpActions.DELETE("/:id", communicationHandler.DeleteFollowUpAction)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware(conn))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			// same segment constraint: /tasks/unified shares the wildcard.
			tasks.GET("/:id", func(ctx *gin.Context) {
				if ctx.Param("id") == "unified" {
					taskHandler.GetUnifiedTasks(ctx)
					return
				}
				taskHandler.GetTask(ctx)
			})
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/toggle", taskHandler.ToggleTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		research := api.Group("/research", middleware.AuthMiddleware(conn))
		{
			research.GET("", researchHandler.ListResearch)
			research.POST("", researchHandler.CreateResearch)
			research.GET("/:id", researchHandler.GetResearch)
			research.PUT("/:id", researchHandler.UpdateResearch)
			research.DELETE("/:id", researchHandler.DeleteResearch)
			research.POST("/:id/links", researchHandler.CreateResearchLink)
			research.PUT("/:id/links/:linkId", researchHandler.UpdateResearchLink)
			research.DELETE("/:id/links/:linkId", researchHandler.DeleteResearchLink)
		}

		applications := api.Group("/applications", middleware.AuthMiddleware(conn))
		{
			applications.GET("", applicationHandler.ListApplications)
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("/:id", applicationHandler.GetApplication)
			applications.PUT("/:id", applicationHandler.UpdateApplication)
			applications.DELETE("/:id", applicationHandler.DeleteApplication)
			applications.POST("/:id/interviews", applicationHandler.CreateInterview)
		}

		interviews := api.Group("/interviews", middleware.AuthMiddleware(conn))
		{
			interviews.PUT("/:id", applicationHandler.UpdateInterview)
			interviews.DELETE("/:id", applicationHandler.DeleteInterview)
		}

		documents := api.Group("/documents", middleware.AuthMiddleware(conn))
		{
			documents.GET("", documentHandler.ListDocuments)
			documents.POST("", documentHandler.CreateDocument)
			documents.PUT("/:id", documentHandler.UpdateDocument)
			documents.DELETE("/:id", documentHandler.DeleteDocument)
		}

		api.GET("/export/user-data", middleware.AuthMiddleware(conn), exportHandler.ExportUserData)
		api.POST("/import", middleware.AuthMiddleware(conn), importHandler.ImportUserData)
	}

	return r
}
