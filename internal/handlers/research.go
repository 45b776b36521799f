package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type ResearchHandler struct {
	DB *gorm.DB
}

func NewResearchHandler(conn *gorm.DB) *ResearchHandler {
	return &ResearchHandler{DB: conn}
}

type CreateResearchRequest struct {
	Title      string   `json:"title" binding:"required"`
	Type       string   `json:"type" binding:"omitempty,oneof=CONTACT COMPANY INDUSTRY COMPETITIVE GENERAL"`
	TargetType string   `json:"targetType" binding:"omitempty,oneof=CONTACT APPLICATION COMPANY"`
	TargetID   *uint    `json:"targetId"`
	Summary    string   `json:"summary"`
	Findings   []string `json:"findings"`
	Notes      string   `json:"notes"`
	Importance string   `json:"importance" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Tags       []string `json:"tags"`
}

type UpdateResearchRequest struct {
	Title      *string   `json:"title"`
	Type       *string   `json:"type" binding:"omitempty,oneof=CONTACT COMPANY INDUSTRY COMPETITIVE GENERAL"`
	TargetType *string   `json:"targetType" binding:"omitempty,oneof=CONTACT APPLICATION COMPANY"`
	TargetID   *uint     `json:"targetId"`
	Summary    *string   `json:"summary"`
	Findings   *[]string `json:"findings"`
	Notes      *string   `json:"notes"`
	Importance *string   `json:"importance" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Tags       *[]string `json:"tags"`
}

type ResearchLinkRequest struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"omitempty,oneof=ARTICLE VIDEO SOCIAL COMPANY_PAGE NEWS GLASSDOOR LINKEDIN GITHUB OTHER"`
}

type UpdateResearchLinkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url" binding:"omitempty,url"`
	Description *string `json:"description"`
	Type        *string `json:"type" binding:"omitempty,oneof=ARTICLE VIDEO SOCIAL COMPANY_PAGE NEWS GLASSDOOR LINKEDIN GITHUB OTHER"`
}

func (h *ResearchHandler) ListResearch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.DB.Preload("Links").Where("user_id = ?", userID)

	if researchType := ctx.Query("type"); researchType != "" {
		query = query.Where("type = ?", researchType)
	}

	if targetType := ctx.Query("targetType"); targetType != "" {
		query = query.Where("target_kind = ?", targetType)
	}

	if targetID := ctx.Query("targetId"); targetID != "" {
		query = query.Where("target_id = ?", targetID)
	}

	var research []models.Research

	if err := query.Order("updated_at desc").Find(&research).Error; err != nil {
		log.Printf("Failed to list research: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve research"})
		return
	}

	// Tag filtering happens in memory: the tags column is a JSON array and
	// a portable has-any predicate is not expressible across drivers.
	if tags := ctx.QueryArray("tags"); len(tags) > 0 {
		filtered := make([]models.Research, 0, len(research))

		for _, item := range research {
			if hasAnyTag(item.Tags, tags) {
				filtered = append(filtered, item)
			}
		}

		research = filtered
	}

	ctx.JSON(http.StatusOK, research)
}

func (h *ResearchHandler) GetResearch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	researchID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	research, ok := h.findOwnedResearch(ctx, userID, researchID, true)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, research)
}

func (h *ResearchHandler) CreateResearch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateResearchRequest

	if !bindJSON(ctx, &body) {
		return
	}

	targetKind := models.ResearchTargetKind(body.TargetType)

	if !h.validTarget(ctx, userID, targetKind, body.TargetID) {
		return
	}

	research := models.Research{
		UserID:     userID,
		Title:      body.Title,
		Type:       models.ResearchType(body.Type),
		TargetKind: targetKind,
		TargetID:   body.TargetID,
		Summary:    body.Summary,
		Findings:   datatypes.NewJSONSlice(body.Findings),
		Notes:      body.Notes,
		Importance: models.ResearchImportance(body.Importance),
		Tags:       datatypes.NewJSONSlice(body.Tags),
	}
	if research.Type == "" {
		research.Type = models.ResearchTypeGeneral
	}
	if research.Importance == "" {
		research.Importance = models.ResearchImportanceMedium
	}

	if err := h.DB.Create(&research).Error; err != nil {
		log.Printf("Failed to create research: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create research"})
		return
	}

	research.Links = []models.ResearchLink{}

	ctx.JSON(http.StatusCreated, research)
}

func (h *ResearchHandler) UpdateResearch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	researchID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateResearchRequest

	if !bindJSON(ctx, &body) {
		return
	}

	research, ok := h.findOwnedResearch(ctx, userID, researchID, false)

	if !ok {
		return
	}

	if body.TargetType != nil || body.TargetID != nil {
		targetKind := research.TargetKind
		targetID := research.TargetID

		if body.TargetType != nil {
			targetKind = models.ResearchTargetKind(*body.TargetType)
		}
		if body.TargetID != nil {
			targetID = body.TargetID
		}

		if !h.validTarget(ctx, userID, targetKind, targetID) {
			return
		}

		research.TargetKind = targetKind
		research.TargetID = targetID
	}

	if body.Title != nil {
		research.Title = *body.Title
	}
	if body.Type != nil {
		research.Type = models.ResearchType(*body.Type)
	}
	if body.Summary != nil {
		research.Summary = *body.Summary
	}
	if body.Findings != nil {
		research.Findings = datatypes.NewJSONSlice(*body.Findings)
	}
	if body.Notes != nil {
		research.Notes = *body.Notes
	}
	if body.Importance != nil {
		research.Importance = models.ResearchImportance(*body.Importance)
	}
	if body.Tags != nil {
		research.Tags = datatypes.NewJSONSlice(*body.Tags)
	}

	if err := h.DB.Save(&research).Error; err != nil {
		log.Printf("Failed to update research: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update research"})
		return
	}

	var links []models.ResearchLink

	if err := h.DB.Where("research_id = ?", research.ID).Find(&links).Error; err == nil {
		research.Links = links
	}

	ctx.JSON(http.StatusOK, research)
}

func (h *ResearchHandler) DeleteResearch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	researchID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	research, ok := h.findOwnedResearch(ctx, userID, researchID, false)

	if !ok {
		return
	}

	if err := h.DB.Select("Links").Delete(&research).Error; err != nil {
		log.Printf("Failed to delete research: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete research"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ResearchHandler) CreateResearchLink(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	researchID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body ResearchLinkRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if _, ok := h.findOwnedResearch(ctx, userID, researchID, false); !ok {
		return
	}

	link := models.ResearchLink{
		ResearchID:  researchID,
		Title:       body.Title,
		URL:         body.URL,
		Description: body.Description,
		Type:        models.ResearchLinkType(body.Type),
	}
	if link.Type == "" {
		link.Type = models.ResearchLinkTypeOther
	}

	if err := h.DB.Create(&link).Error; err != nil {
		log.Printf("Failed to create research link: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create research link"})
		return
	}

	ctx.JSON(http.StatusCreated, link)
}

func (h *ResearchHandler) UpdateResearchLink(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	researchID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	linkID, ok := parseIDParam(ctx, "linkId")

	if !ok {
		return
	}

	var body UpdateResearchLinkRequest

	if !bindJSON(ctx, &body) {
		return
	}

	if _, ok := h.findOwnedResearch(ctx, userID, researchID, false); !ok {
		return
	}

	var link models.ResearchLink

	if err := h.DB.Where("id = ? AND research_id = ?", linkID, researchID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Research link not found"})
		} else {
			log.Printf("Failed to retrieve research link: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve research link"})
		}
		return
	}

	if body.Title != nil {
		link.Title = *body.Title
	}
	if body.URL != nil {
		link.URL = *body.URL
	}
	if body.Description != nil {
		link.Description = *body.Description
	}
	if body.Type != nil {
		link.Type = models.ResearchLinkType(*body.Type)
	}

	if err := h.DB.Save(&link).Error; err != nil {
		log.Printf("Failed to update research link: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update research link"})
		return
	}

	ctx.JSON(http.StatusOK, link)
}

func (h *ResearchHandler) DeleteResearchLink(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	researchID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	linkID, ok := parseIDParam(ctx, "linkId")

	if !ok {
		return
	}

	if _, ok := h.findOwnedResearch(ctx, userID, researchID, false); !ok {
		return
	}

	if err := h.DB.Where("id = ? AND research_id = ?", linkID, researchID).
		Delete(&models.ResearchLink{}).Error; err != nil {
		log.Printf("Failed to delete research link: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete research link"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// validTarget enforces the tagged-reference rule: kind and id go together,
// and the referenced row must exist and belong to the caller.
func (h *ResearchHandler) validTarget(ctx *gin.Context, userID uint, kind models.ResearchTargetKind, targetID *uint) bool {
	if kind == "" && targetID == nil {
		return true
	}

	if kind == "" || targetID == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "targetType and targetId must be provided together"})
		return false
	}

	var err error

	switch kind {
	case models.ResearchTargetContact:
		err = h.DB.Where("id = ? AND user_id = ?", *targetID, userID).First(&models.Contact{}).Error
	case models.ResearchTargetApplication:
		err = h.DB.Where("id = ? AND user_id = ?", *targetID, userID).First(&models.Application{}).Error
	case models.ResearchTargetCompany:
		err = h.DB.Where("id = ? AND user_id = ?", *targetID, userID).First(&models.Company{}).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Research target not found"})
		} else {
			log.Printf("Failed to verify research target: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	return true
}

func (h *ResearchHandler) findOwnedResearch(ctx *gin.Context, userID uint, researchID uint, withLinks bool) (models.Research, bool) {
	var research models.Research

	query := h.DB.Where("id = ? AND user_id = ?", researchID, userID)

	if withLinks {
		query = query.Preload("Links")
	}

	if err := query.First(&research).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Research not found"})
		} else {
			log.Printf("Failed to retrieve research: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve research"})
		}
		return research, false
	}

	return research, true
}

func hasAnyTag(tags []string, wanted []string) bool {
	for _, tag := range tags {
		for _, want := range wanted {
			if tag == want {
				return true
			}
		}
	}

	return false
}
