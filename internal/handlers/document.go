package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type DocumentHandler struct {
	DB *gorm.DB
}

func NewDocumentHandler(conn *gorm.DB) *DocumentHandler {
	return &DocumentHandler{DB: conn}
}

type CreateDocumentRequest struct {
	Type          string `json:"type" binding:"required"`
	Name          string `json:"name" binding:"required"`
	URL           string `json:"url" binding:"required"`
	Version       *int   `json:"version" binding:"omitempty,min=1"`
	ApplicationID *uint  `json:"applicationId"`
}

type UpdateDocumentRequest struct {
	Type          *string `json:"type"`
	Name          *string `json:"name"`
	URL           *string `json:"url"`
	Version       *int    `json:"version" binding:"omitempty,min=1"`
	ApplicationID *uint   `json:"applicationId"`
}

func (h *DocumentHandler) ListDocuments(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var documents []models.Document

	if err := h.DB.
		Preload("Application").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&documents).Error; err != nil {
		log.Printf("Failed to list documents: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve documents"})
		return
	}

	ctx.JSON(http.StatusOK, documents)
}

func (h *DocumentHandler) CreateDocument(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateDocumentRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if body.ApplicationID != nil {
		var application models.Application

		if err := h.DB.Where("id = ? AND user_id = ?", *body.ApplicationID, userID).
			First(&application).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			} else {
				log.Printf("Failed to verify application ownership: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
	}

	document := models.Document{
		UserID:        userID,
		Type:          body.Type,
		Name:          body.Name,
		URL:           body.URL,
		Version:       1,
		ApplicationID: body.ApplicationID,
	}
	if body.Version != nil {
		document.Version = *body.Version
	}

	if err := h.DB.Create(&document).Error; err != nil {
		log.Printf("Failed to create document: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
		return
	}

	ctx.JSON(http.StatusCreated, document)
}

func (h *DocumentHandler) UpdateDocument(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	documentID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateDocumentRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var document models.Document

	if err := h.DB.Where("id = ? AND user_id = ?", documentID, userID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			log.Printf("Failed to retrieve document: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	if body.Type != nil {
		document.Type = *body.Type
	}
	if body.Name != nil {
		document.Name = *body.Name
	}
	if body.URL != nil {
		document.URL = *body.URL
	}
	if body.Version != nil {
		document.Version = *body.Version
	}
	if body.ApplicationID != nil {
		document.ApplicationID = body.ApplicationID
	}

	if err := h.DB.Save(&document).Error; err != nil {
		log.Printf("Failed to update document: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}

	ctx.JSON(http.StatusOK, document)
}

func (h *DocumentHandler) DeleteDocument(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	documentID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var document models.Document

	if err := h.DB.Where("id = ? AND user_id = ?", documentID, userID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			log.Printf("Failed to retrieve document: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	if err := h.DB.Delete(&document).Error; err != nil {
		log.Printf("Failed to delete document: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
