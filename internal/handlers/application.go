package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type ApplicationHandler struct {
	DB *gorm.DB
}

func NewApplicationHandler(conn *gorm.DB) *ApplicationHandler {
	return &ApplicationHandler{DB: conn}
}

type CreateApplicationRequest struct {
	Company     string     `json:"company"`
	CompanyID   *uint      `json:"companyId"`
	Position    string     `json:"position" binding:"required"`
	Location    string     `json:"location"`
	Salary      string     `json:"salary"`
	JobURL      string     `json:"jobUrl" binding:"omitempty,url"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AppliedDate *time.Time `json:"appliedDate"`
	Notes       string     `json:"notes"`
	ContactID   *uint      `json:"contactId"`
}

type UpdateApplicationRequest struct {
	Company     *string    `json:"company"`
	CompanyID   *uint      `json:"companyId"`
	Position    *string    `json:"position"`
	Location    *string    `json:"location"`
	Salary      *string    `json:"salary"`
	JobURL      *string    `json:"jobUrl" binding:"omitempty,url"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	AppliedDate *time.Time `json:"appliedDate"`
	Notes       *string    `json:"notes"`
	ContactID   *uint      `json:"contactId"`
}

type InterviewRequest struct {
	Type         string    `json:"type" binding:"required"`
	ScheduledAt  time.Time `json:"scheduledAt" binding:"required"`
	Duration     *int      `json:"duration" binding:"omitempty,min=1"`
	Location     string    `json:"location"`
	Interviewers []string  `json:"interviewers"`
	Notes        string    `json:"notes"`
	Outcome      string    `json:"outcome"`
}

type UpdateInterviewRequest struct {
	Type         *string    `json:"type"`
	ScheduledAt  *time.Time `json:"scheduledAt"`
	Duration     *int       `json:"duration"`
	Location     *string    `json:"location"`
	Interviewers *[]string  `json:"interviewers"`
	Notes        *string    `json:"notes"`
	Outcome      *string    `json:"outcome"`
}

func (h *ApplicationHandler) ListApplications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.DB.
		Preload("Interviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("interviews.scheduled_at asc")
		}).
		Preload("Contact").
		Preload("CompanyRef").
		Where("user_id = ?", userID)

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.Application

	if err := query.Order("created_at desc").Find(&applications).Error; err != nil {
		log.Printf("Failed to list applications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	ctx.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) GetApplication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	applicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var application models.Application

	if err := h.DB.
		Preload("Interviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("interviews.scheduled_at asc")
		}).
		Preload("Contact").
		Preload("CompanyRef").
		Where("id = ? AND user_id = ?", applicationID, userID).
		First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			log.Printf("Failed to retrieve application: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	ctx.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) CreateApplication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateApplicationRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if body.CompanyID != nil && !h.ownsCompany(ctx, userID, *body.CompanyID) {
		return
	}

	if body.ContactID != nil && !h.ownsContact(ctx, userID, *body.ContactID) {
		return
	}

	application := models.Application{
		UserID:      userID,
		Company:     body.Company,
		CompanyID:   body.CompanyID,
		Position:    body.Position,
		Location:    body.Location,
		Salary:      body.Salary,
		JobURL:      body.JobURL,
		Description: body.Description,
		Status:      body.Status,
		AppliedDate: body.AppliedDate,
		Notes:       body.Notes,
		ContactID:   body.ContactID,
	}
	if application.Status == "" {
		application.Status = "APPLIED"
	}

	if err := h.DB.Create(&application).Error; err != nil {
		log.Printf("Failed to create application: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	ctx.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) UpdateApplication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	applicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateApplicationRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var application models.Application

	if err := h.DB.Where("id = ? AND user_id = ?", applicationID, userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			log.Printf("Failed to retrieve application: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	if body.CompanyID != nil && !h.ownsCompany(ctx, userID, *body.CompanyID) {
		return
	}

	if body.ContactID != nil && !h.ownsContact(ctx, userID, *body.ContactID) {
		return
	}

	if body.Company != nil {
		application.Company = *body.Company
	}
	if body.CompanyID != nil {
		application.CompanyID = body.CompanyID
	}
	if body.Position != nil {
		application.Position = *body.Position
	}
	if body.Location != nil {
		application.Location = *body.Location
	}
	if body.Salary != nil {
		application.Salary = *body.Salary
	}
	if body.JobURL != nil {
		application.JobURL = *body.JobURL
	}
	if body.Description != nil {
		application.Description = *body.Description
	}
	if body.Status != nil {
		application.Status = *body.Status
	}
	if body.AppliedDate != nil {
		application.AppliedDate = body.AppliedDate
	}
	if body.Notes != nil {
		application.Notes = *body.Notes
	}
	if body.ContactID != nil {
		application.ContactID = body.ContactID
	}

	if err := h.DB.Save(&application).Error; err != nil {
		log.Printf("Failed to update application: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	ctx.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) DeleteApplication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	applicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var application models.Application

	if err := h.DB.Where("id = ? AND user_id = ?", applicationID, userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			log.Printf("Failed to retrieve application: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	if err := h.DB.Select("Interviews").Delete(&application).Error; err != nil {
		log.Printf("Failed to delete application: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) CreateInterview(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	applicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body InterviewRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var application models.Application

	if err := h.DB.Where("id = ? AND user_id = ?", applicationID, userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			log.Printf("Failed to retrieve application: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	interview := models.Interview{
		ApplicationID: application.ID,
		Type:          body.Type,
		ScheduledAt:   body.ScheduledAt,
		Duration:      body.Duration,
		Location:      body.Location,
		Interviewers:  datatypes.NewJSONSlice(body.Interviewers),
		Notes:         body.Notes,
		Outcome:       body.Outcome,
	}

	if err := h.DB.Create(&interview).Error; err != nil {
		log.Printf("Failed to create interview: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create interview"})
		return
	}

	ctx.JSON(http.StatusCreated, interview)
}

func (h *ApplicationHandler) UpdateInterview(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	interviewID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateInterviewRequest

	if !bindJSON(ctx, &body) {
		return
	}

	interview, ok := h.findOwnedInterview(ctx, userID, interviewID)

	if !ok {
		return
	}

	if body.Type != nil {
		interview.Type = *body.Type
	}
	if body.ScheduledAt != nil {
		interview.ScheduledAt = *body.ScheduledAt
	}
	if body.Duration != nil {
		interview.Duration = body.Duration
	}
	if body.Location != nil {
		interview.Location = *body.Location
	}
	if body.Interviewers != nil {
		interview.Interviewers = datatypes.NewJSONSlice(*body.Interviewers)
	}
	if body.Notes != nil {
		interview.Notes = *body.Notes
	}
	if body.Outcome != nil {
		interview.Outcome = *body.Outcome
	}

	if err := h.DB.Save(&interview).Error; err != nil {
		log.Printf("Failed to update interview: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update interview"})
		return
	}

	ctx.JSON(http.StatusOK, interview)
}

func (h *ApplicationHandler) DeleteInterview(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	interviewID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	interview, ok := h.findOwnedInterview(ctx, userID, interviewID)

	if !ok {
		return
	}

	if err := h.DB.Delete(&interview).Error; err != nil {
		log.Printf("Failed to delete interview: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete interview"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) findOwnedInterview(ctx *gin.Context, userID uint, interviewID uint) (models.Interview, bool) {
	var interview models.Interview

	err := h.DB.
		Joins("JOIN applications ON applications.id = interviews.application_id").
		Where("interviews.id = ? AND applications.user_id = ? AND applications.deleted_at IS NULL", interviewID, userID).
		First(&interview).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
		} else {
			log.Printf("Failed to retrieve interview: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve interview"})
		}
		return interview, false
	}

	return interview, true
}

func (h *ApplicationHandler) ownsCompany(ctx *gin.Context, userID uint, companyID uint) bool {
	var company models.Company

	if err := h.DB.Where("id = ? AND user_id = ?", companyID, userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			log.Printf("Failed to verify company ownership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	return true
}

func (h *ApplicationHandler) ownsContact(ctx *gin.Context, userID uint, contactID uint) bool {
	var contact models.Contact

	if err := h.DB.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			log.Printf("Failed to verify contact ownership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	return true
}
