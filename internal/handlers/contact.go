package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type ContactHandler struct {
	DB *gorm.DB
}

func NewContactHandler(conn *gorm.DB) *ContactHandler {
	return &ContactHandler{DB: conn}
}

type CreateContactRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	CompanyID   *uint  `json:"companyId"`
	Position    string `json:"position"`
	LinkedinURL string `json:"linkedinUrl" binding:"omitempty,url"`
	Notes       string `json:"notes"`
	Type        string `json:"type" binding:"omitempty,oneof=RECRUITER HIRING_MANAGER REFERRAL COLLEAGUE OTHER"`
}

type UpdateContactRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	CompanyID   *uint   `json:"companyId"`
	Position    *string `json:"position"`
	LinkedinURL *string `json:"linkedinUrl" binding:"omitempty,url"`
	Notes       *string `json:"notes"`
	Type        *string `json:"type" binding:"omitempty,oneof=RECRUITER HIRING_MANAGER REFERRAL COLLEAGUE OTHER"`
}

func (h *ContactHandler) ListContacts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.DB.Preload("CompanyRef").Where("user_id = ?", userID)

	if search := ctx.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ? OR LOWER(position) LIKE ? OR LOWER(notes) LIKE ?"+
				" OR company_id IN (SELECT id FROM companies WHERE user_id = ? AND LOWER(name) LIKE ?)",
			pattern, pattern, pattern, pattern, pattern, userID, pattern,
		)
	}

	var contacts []models.Contact

	if err := query.Order("updated_at desc").Find(&contacts).Error; err != nil {
		log.Printf("Failed to list contacts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contacts"})
		return
	}

	ctx.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetContact(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	query := h.DB.Where("id = ? AND user_id = ?", contactID, userID)

	if ctx.Query("include") == "company" {
		query = query.Preload("CompanyRef")
	}

	var contact models.Contact

	if err := query.First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			log.Printf("Failed to retrieve contact: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact"})
		}
		return
	}

	ctx.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) CreateContact(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateContactRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if body.CompanyID != nil && !h.ownsCompany(ctx, userID, *body.CompanyID) {
		return
	}

	contact := models.Contact{
		UserID:      userID,
		Name:        body.Name,
		Email:       body.Email,
		Phone:       body.Phone,
		Company:     body.Company,
		CompanyID:   body.CompanyID,
		Position:    body.Position,
		LinkedinURL: body.LinkedinURL,
		Notes:       body.Notes,
		Type:        models.ContactType(body.Type),
	}
	if contact.Type == "" {
		contact.Type = models.ContactTypeOther
	}

	if err := h.DB.Create(&contact).Error; err != nil {
		log.Printf("Failed to create contact: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	ctx.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) UpdateContact(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateContactRequest

	if !bindJSON(ctx, &body) {
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

	if body.CompanyID != nil && !h.ownsCompany(ctx, userID, *body.CompanyID) {
		return
	}

	if body.Name != nil {
		contact.Name = *body.Name
	}
	if body.Email != nil {
		contact.Email = *body.Email
	}
	if body.Phone != nil {
		contact.Phone = *body.Phone
	}
	if body.Company != nil {
		contact.Company = *body.Company
	}
	if body.CompanyID != nil {
		contact.CompanyID = body.CompanyID
	}
	if body.Position != nil {
		contact.Position = *body.Position
	}
	if body.LinkedinURL != nil {
		contact.LinkedinURL = *body.LinkedinURL
	}
	if body.Notes != nil {
		contact.Notes = *body.Notes
	}
	if body.Type != nil {
		contact.Type = models.ContactType(*body.Type)
	}

	if err := h.DB.Save(&contact).Error; err != nil {
		log.Printf("Failed to update contact: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}

	ctx.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contactID, ok := parseIDParam(ctx, "id")

	if !ok {
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

	if err := h.DB.Select("Communications", "Communications.FollowUpActions").Delete(&contact).Error; err != nil {
		log.Printf("Failed to delete contact: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ownsCompany rejects a companyId that does not reference one of the caller's
// own companies. Writes the error response itself.
func (h *ContactHandler) ownsCompany(ctx *gin.Context, userID uint, companyID uint) bool {
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
