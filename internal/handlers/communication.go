package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type CommunicationHandler struct {
	DB *gorm.DB
}

func NewCommunicationHandler(conn *gorm.DB) *CommunicationHandler {
	return &CommunicationHandler{DB: conn}
}

type FollowUpActionRequest struct {
	Description string     `json:"description" binding:"required"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

type CreateCommunicationRequest struct {
	ContactID       uint                    `json:"contactId" binding:"required"`
	Type            string                  `json:"type" binding:"required,oneof=EMAIL PHONE LINKEDIN TEXT MEETING OTHER"`
	Subject         string                  `json:"subject"`
	Content         string                  `json:"content"`
	Date            time.Time               `json:"date" binding:"required"`
	Duration        *int                    `json:"duration" binding:"omitempty,min=1"`
	Location        string                  `json:"location"`
	FollowUpActions []FollowUpActionRequest `json:"followUpActions" binding:"omitempty,dive"`
}

type UpdateCommunicationRequest struct {
	Type     *string    `json:"type" binding:"omitempty,oneof=EMAIL PHONE LINKEDIN TEXT MEETING OTHER"`
	Subject  *string    `json:"subject"`
	Content  *string    `json:"content"`
	Date     *time.Time `json:"date"`
	Duration *int       `json:"duration"`
	Location *string    `json:"location"`
}

type UpdateFollowUpActionRequest struct {
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// ListCommunications lists a contact's communications, newest first.
func (h *CommunicationHandler) ListCommunications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, present, valid := parseIDQuery(ctx, "contactId")

	if !valid {
		return
	}

	if !present {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "contactId query parameter is required"})
		return
	}

	var contact models.Contact

	if err := h.DB.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			log.Printf("Failed to retrieve contact: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact"})
		}
		return
	}

	var communications []models.Communication

	if err := h.DB.
		Preload("FollowUpActions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("follow_up_actions.created_at asc")
		}).
		Where("contact_id = ?", contactID).
		Order("date desc").
		Find(&communications).Error; err != nil {
		log.Printf("Failed to list communications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve communications"})
		return
	}

	ctx.JSON(http.StatusOK, communications)
}

// GetUpcoming lists future-dated communications, i.e. scheduled meetings.
func (h *CommunicationHandler) GetUpcoming(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var communications []models.Communication

	if err := h.DB.
		Preload("Contact").
		Joins("JOIN contacts ON contacts.id = communications.contact_id").
		Where("contacts.user_id = ? AND contacts.deleted_at IS NULL AND communications.date >= ?", userID, time.Now()).
		Order("communications.date asc").
		Find(&communications).Error; err != nil {
		log.Printf("Failed to list upcoming communications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve communications"})
		return
	}

	ctx.JSON(http.StatusOK, communications)
}

func (h *CommunicationHandler) GetCommunication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	communicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	communication, ok := h.findOwnedCommunication(ctx, userID, communicationID)

	if !ok {
		return
	}

	if err := h.DB.
		Preload("FollowUpActions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("follow_up_actions.created_at asc")
		}).
		Preload("Contact").
		First(&communication, communication.ID).Error; err != nil {
		log.Printf("Failed to retrieve communication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve communication"})
		return
	}

	ctx.JSON(http.StatusOK, communication)
}

func (h *CommunicationHandler) CreateCommunication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCommunicationRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var contact models.Contact

	if err := h.DB.Where("id = ? AND user_id = ?", body.ContactID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			log.Printf("Failed to retrieve contact: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact"})
		}
		return
	}

	communication := models.Communication{
		ContactID: body.ContactID,
		Type:      models.CommunicationType(body.Type),
		Subject:   body.Subject,
		Content:   body.Content,
		Date:      body.Date,
		Duration:  body.Duration,
		Location:  body.Location,
	}

	for _, action := range body.FollowUpActions {
		priority := models.Priority(action.Priority)
		if priority == "" {
			priority = models.PriorityMedium
		}
		communication.FollowUpActions = append(communication.FollowUpActions, models.FollowUpAction{
			Description: action.Description,
			DueDate:     action.DueDate,
			Priority:    priority,
		})
	}

	if err := h.DB.Create(&communication).Error; err != nil {
		log.Printf("Failed to create communication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create communication"})
		return
	}

	ctx.JSON(http.StatusCreated, communication)
}

func (h *CommunicationHandler) UpdateCommunication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	communicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateCommunicationRequest

	if !bindJSON(ctx, &body) {
		return
	}

	communication, ok := h.findOwnedCommunication(ctx, userID, communicationID)

	if !ok {
		return
	}

	if body.Type != nil {
		communication.Type = models.CommunicationType(*body.Type)
	}
	if body.Subject != nil {
		communication.Subject = *body.Subject
	}
	if body.Content != nil {
		communication.Content = *body.Content
	}
	if body.Date != nil {
		communication.Date = *body.Date
	}
	if body.Duration != nil {
		communication.Duration = body.Duration
	}
	if body.Location != nil {
		communication.Location = *body.Location
	}

	if err := h.DB.Save(&communication).Error; err != nil {
		log.Printf("Failed to update communication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update communication"})
		return
	}

	var actions []models.FollowUpAction

	if err := h.DB.Where("communication_id = ?", communication.ID).
		Order("created_at asc").Find(&actions).Error; err == nil {
		communication.FollowUpActions = actions
	}

	ctx.JSON(http.StatusOK, communication)
}

// DeleteCommunication cascades to the communication's follow-up actions.
func (h *CommunicationHandler) DeleteCommunication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	communicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	communication, ok := h.findOwnedCommunication(ctx, userID, communicationID)

	if !ok {
		return
	}

	if err := h.DB.Select("FollowUpActions").Delete(&communication).Error; err != nil {
		log.Printf("Failed to delete communication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete communication"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *CommunicationHandler) CreateFollowUpAction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	communicationID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body FollowUpActionRequest

	if !bindJSON(ctx, &body) {
		return
	}

	communication, ok := h.findOwnedCommunication(ctx, userID, communicationID)

	if !ok {
		return
	}

	action := models.FollowUpAction{
		CommunicationID: communication.ID,
		Description:     body.Description,
		DueDate:         body.DueDate,
		Priority:        models.Priority(body.Priority),
	}
	if action.Priority == "" {
		action.Priority = models.PriorityMedium
	}

	if err := h.DB.Create(&action).Error; err != nil {
		log.Printf("Failed to create follow-up action: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create follow-up action"})
		return
	}

	ctx.JSON(http.StatusCreated, action)
}

func (h *CommunicationHandler) UpdateFollowUpAction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	actionID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateFollowUpActionRequest

	if !bindJSON(ctx, &body) {
		return
	}

	action, ok := h.findOwnedFollowUpAction(ctx, userID, actionID)

	if !ok {
		return
	}

	if body.Description != nil {
		action.Description = *body.Description
	}
	if body.DueDate != nil {
		action.DueDate = body.DueDate
	}
	if body.Completed != nil {
		action.Completed = *body.Completed
	}
	if body.Priority != nil {
		action.Priority = models.Priority(*body.Priority)
	}

	if err := h.DB.Save(&action).Error; err != nil {
		log.Printf("Failed to update follow-up action: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow-up action"})
		return
	}

	ctx.JSON(http.StatusOK, action)
}

func (h *CommunicationHandler) DeleteFollowUpAction(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	actionID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	action, ok := h.findOwnedFollowUpAction(ctx, userID, actionID)

	if !ok {
		return
	}

	if err := h.DB.Delete(&action).Error; err != nil {
		log.Printf("Failed to delete follow-up action: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete follow-up action"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// findOwnedCommunication resolves a communication through its contact's
// owner. Writes the error response on failure.
func (h *CommunicationHandler) findOwnedCommunication(ctx *gin.Context, userID uint, communicationID uint) (models.Communication, bool) {
	var communication models.Communication

	err := h.DB.
		Joins("JOIN contacts ON contacts.id = communications.contact_id").
		Where("communications.id = ? AND contacts.user_id = ? AND contacts.deleted_at IS NULL", communicationID, userID).
		First(&communication).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Communication not found"})
		} else {
			log.Printf("Failed to retrieve communication: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve communication"})
		}
		return communication, false
	}

	return communication, true
}

func (h *CommunicationHandler) findOwnedFollowUpAction(ctx *gin.Context, userID uint, actionID uint) (models.FollowUpAction, bool) {
	var action models.FollowUpAction

	err := h.DB.
		Joins("JOIN communications ON communications.id = follow_up_actions.communication_id").
		Joins("JOIN contacts ON contacts.id = communications.contact_id").
		Where("follow_up_actions.id = ? AND contacts.user_id = ? AND contacts.deleted_at IS NULL AND communications.deleted_at IS NULL", actionID, userID).
		First(&action).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Follow-up action not found"})
		} else {
			log.Printf("Failed to retrieve follow-up action: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve follow-up action"})
		}
		return action, false
	}

	return action, true
}
