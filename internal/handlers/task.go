package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/unified"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type TaskHandler struct {
	DB      *gorm.DB
	Unified *unified.Engine
}

func NewTaskHandler(conn *gorm.DB) *TaskHandler {
	return &TaskHandler{
		DB:      conn,
		Unified: &unified.Engine{DB: conn},
	}
}

type CreateTaskRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	DueDate       *time.Time `json:"dueDate"`
	Priority      string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Category      string     `json:"category" binding:"omitempty,oneof=APPLICATION FOLLOW_UP INTERVIEW_PREP NETWORKING RESUME OTHER"`
	ApplicationID *uint      `json:"applicationId"`
	ContactID     *uint      `json:"contactId"`
}

type UpdateTaskRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	DueDate       *time.Time `json:"dueDate"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Category      *string    `json:"category" binding:"omitempty,oneof=APPLICATION FOLLOW_UP INTERVIEW_PREP NETWORKING RESUME OTHER"`
	ApplicationID *uint      `json:"applicationId"`
	ContactID     *uint      `json:"contactId"`
}

func (h *TaskHandler) ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.DB.
		Preload("Application").
		Preload("Contact").
		Where("user_id = ?", userID)

	if contactID, ok, valid := parseIDQuery(ctx, "contactId"); !valid {
		return
	} else if ok {
		if !h.ownsContact(ctx, userID, contactID) {
			return
		}
		query = query.Where("contact_id = ?", contactID)
	}

	var tasks []models.Task

	if err := query.Find(&tasks).Error; err != nil {
		log.Printf("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	sortTasks(tasks)

	ctx.JSON(http.StatusOK, tasks)
}

// GetUnifiedTasks merges manual tasks with communication follow-up actions.
func (h *TaskHandler) GetUnifiedTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filters := unified.Filters{
		Priority: models.Priority(ctx.Query("priority")),
		Status:   ctx.Query("status"),
		Source:   ctx.Query("filter"),
	}

	tasks, err := h.Unified.List(userID, filters)

	if err != nil {
		log.Printf("Failed to build unified task list: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var task models.Task

	if err := h.DB.
		Preload("Application").
		Preload("Contact").
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTaskRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if body.ApplicationID != nil && !h.ownsApplication(ctx, userID, *body.ApplicationID) {
		return
	}

	if body.ContactID != nil && !h.ownsContact(ctx, userID, *body.ContactID) {
		return
	}

	task := models.Task{
		UserID:        userID,
		Title:         body.Title,
		Description:   body.Description,
		DueDate:       body.DueDate,
		Priority:      models.Priority(body.Priority),
		Category:      models.TaskCategory(body.Category),
		ApplicationID: body.ApplicationID,
		ContactID:     body.ContactID,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Category == "" {
		task.Category = models.TaskCategoryOther
	}

	if err := h.DB.Create(&task).Error; err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateTaskRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var task models.Task

	if err := h.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if body.ApplicationID != nil && !h.ownsApplication(ctx, userID, *body.ApplicationID) {
		return
	}

	if body.ContactID != nil && !h.ownsContact(ctx, userID, *body.ContactID) {
		return
	}

	if body.Title != nil {
		task.Title = *body.Title
	}
	if body.Description != nil {
		task.Description = *body.Description
	}
	if body.DueDate != nil {
		task.DueDate = body.DueDate
	}
	if body.Priority != nil {
		task.Priority = models.Priority(*body.Priority)
	}
	if body.Category != nil {
		task.Category = models.TaskCategory(*body.Category)
	}
	if body.ApplicationID != nil {
		task.ApplicationID = body.ApplicationID
	}
	if body.ContactID != nil {
		task.ContactID = body.ContactID
	}

	if err := h.DB.Save(&task).Error; err != nil {
		log.Printf("Failed to update task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) ToggleTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var task models.Task

	if err := h.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	task.Completed = !task.Completed

	if err := h.DB.Save(&task).Error; err != nil {
		log.Printf("Failed to toggle task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var task models.Task

	if err := h.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := h.DB.Delete(&task).Error; err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *TaskHandler) ownsApplication(ctx *gin.Context, userID uint, applicationID uint) bool {
	var application models.Application

	if err := h.DB.Where("id = ? AND user_id = ?", applicationID, userID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			log.Printf("Failed to verify application ownership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	return true
}

func (h *TaskHandler) ownsContact(ctx *gin.Context, userID uint, contactID uint) bool {
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

// sortTasks applies the shared ordering: incomplete first, earlier due dates
// first with undated last, then priority HIGH > MEDIUM > LOW.
func sortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}

		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}

		return models.PriorityRank(a.Priority) > models.PriorityRank(b.Priority)
	})
}
