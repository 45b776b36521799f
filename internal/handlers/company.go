package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type CompanyHandler struct {
	DB *gorm.DB
}

func NewCompanyHandler(conn *gorm.DB) *CompanyHandler {
	return &CompanyHandler{DB: conn}
}

type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Website     string `json:"website" binding:"omitempty,url"`
	Industry    string `json:"industry"`
	Size        string `json:"size" binding:"omitempty,oneof=STARTUP SMALL MEDIUM LARGE ENTERPRISE UNKNOWN"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Founded     *int   `json:"founded" binding:"omitempty,min=1800"`
	Status      string `json:"status" binding:"omitempty,oneof=OPPORTUNITY TARGET RESEARCH WATCHING ARCHIVED"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Industry    *string `json:"industry"`
	Size        *string `json:"size" binding:"omitempty,oneof=STARTUP SMALL MEDIUM LARGE ENTERPRISE UNKNOWN"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	Founded     *int    `json:"founded" binding:"omitempty,min=1800"`
	Status      *string `json:"status" binding:"omitempty,oneof=OPPORTUNITY TARGET RESEARCH WATCHING ARCHIVED"`
}

type DependentCounts struct {
	Applications int64 `json:"applications"`
	Contacts     int64 `json:"contacts"`
}

type CompanyResponse struct {
	models.Company
	Count DependentCounts `json:"_count"`
}

func (h *CompanyHandler) ListCompanies(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := h.DB.Where("user_id = ?", userID)

	if search := ctx.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if industry := ctx.Query("industry"); industry != "" {
		query = query.Where("industry = ?", industry)
	}

	if size := ctx.Query("size"); size != "" {
		query = query.Where("size = ?", size)
	}

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var companies []models.Company

	if err := query.Find(&companies).Error; err != nil {
		log.Printf("Failed to list companies: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companies"})
		return
	}

	// Status rank first (OPPORTUNITY ... ARCHIVED), then name.
	sort.SliceStable(companies, func(i, j int) bool {
		a, b := companies[i], companies[j]
		if a.Status != b.Status {
			return models.CompanyStatusRank(a.Status) < models.CompanyStatusRank(b.Status)
		}
		return a.Name < b.Name
	})

	response := make([]CompanyResponse, 0, len(companies))

	for _, company := range companies {
		counts, err := h.dependentCounts(company.ID)

		if err != nil {
			log.Printf("Failed to count company dependents: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companies"})
			return
		}

		response = append(response, CompanyResponse{Company: company, Count: counts})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *CompanyHandler) GetCompany(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	companyID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var company models.Company

	if err := h.DB.
		Preload("Contacts", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("contacts.name asc")
		}).
		Preload("Applications", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("applications.created_at desc")
		}).
		Preload("Applications.Contact").
		Where("id = ? AND user_id = ?", companyID, userID).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			log.Printf("Failed to retrieve company: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	counts := DependentCounts{
		Applications: int64(len(company.Applications)),
		Contacts:     int64(len(company.Contacts)),
	}

	ctx.JSON(http.StatusOK, CompanyResponse{Company: company, Count: counts})
}

func (h *CompanyHandler) CreateCompany(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCompanyRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var existing models.Company

	err = h.DB.Where("user_id = ? AND name = ?", userID, body.Name).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Company with this name already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check company name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	company := models.Company{
		UserID:      userID,
		Name:        body.Name,
		Website:     body.Website,
		Industry:    body.Industry,
		Size:        models.CompanySize(body.Size),
		Location:    body.Location,
		Description: body.Description,
		Notes:       body.Notes,
		Founded:     body.Founded,
		Status:      models.CompanyStatus(body.Status),
	}
	if company.Size == "" {
		company.Size = models.CompanySizeUnknown
	}
	if company.Status == "" {
		company.Status = models.CompanyStatusResearch
	}

	if err := h.DB.Create(&company).Error; err != nil {
		log.Printf("Failed to create company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	ctx.JSON(http.StatusCreated, CompanyResponse{Company: company})
}

func (h *CompanyHandler) UpdateCompany(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	companyID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateCompanyRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var company models.Company

	if err := h.DB.Where("id = ? AND user_id = ?", companyID, userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			log.Printf("Failed to retrieve company: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	if body.Name != nil && *body.Name != company.Name {
		var conflict models.Company

		err := h.DB.Where("user_id = ? AND name = ? AND id <> ?", userID, *body.Name, company.ID).
			First(&conflict).Error

		if err == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Company with this name already exists"})
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to check company name: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
			return
		}

		company.Name = *body.Name
	}

	if body.Website != nil {
		company.Website = *body.Website
	}
	if body.Industry != nil {
		company.Industry = *body.Industry
	}
	if body.Size != nil {
		company.Size = models.CompanySize(*body.Size)
	}
	if body.Location != nil {
		company.Location = *body.Location
	}
	if body.Description != nil {
		company.Description = *body.Description
	}
	if body.Notes != nil {
		company.Notes = *body.Notes
	}
	if body.Founded != nil {
		company.Founded = body.Founded
	}
	if body.Status != nil {
		company.Status = models.CompanyStatus(*body.Status)
	}

	if err := h.DB.Save(&company).Error; err != nil {
		log.Printf("Failed to update company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}

	counts, err := h.dependentCounts(company.ID)

	if err != nil {
		log.Printf("Failed to count company dependents: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}

	ctx.JSON(http.StatusOK, CompanyResponse{Company: company, Count: counts})
}

func (h *CompanyHandler) DeleteCompany(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	companyID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var company models.Company

	if err := h.DB.Where("id = ? AND user_id = ?", companyID, userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			log.Printf("Failed to retrieve company: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	counts, err := h.dependentCounts(company.ID)

	if err != nil {
		log.Printf("Failed to count company dependents: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}

	if counts.Applications > 0 || counts.Contacts > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete company with existing applications or contacts"})
		return
	}

	// Hard delete: a soft-deleted row would keep the (user_id, name) unique
	// slot occupied and block re-creating the name. No children exist here.
	if err := h.DB.Unscoped().Delete(&company).Error; err != nil {
		log.Printf("Failed to delete company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *CompanyHandler) GetCompanyResearch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	companyID, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var company models.Company

	if err := h.DB.Where("id = ? AND user_id = ?", companyID, userID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			log.Printf("Failed to retrieve company: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	var research []models.Research

	if err := h.DB.Preload("Links").
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, models.ResearchTargetCompany, companyID).
		Order("updated_at desc").
		Find(&research).Error; err != nil {
		log.Printf("Failed to retrieve company research: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve research"})
		return
	}

	ctx.JSON(http.StatusOK, research)
}

type FindOrCreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CompanyHandler) FindOrCreateCompany(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body FindOrCreateCompanyRequest

	if !bindJSON(ctx, &body) {
		return
	}

	var company models.Company

	err = h.DB.Where("user_id = ? AND name = ?", userID, body.Name).First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		company = models.Company{
			UserID: userID,
			Name:   body.Name,
			Size:   models.CompanySizeUnknown,
			Status: models.CompanyStatusResearch,
		}
		err = h.DB.Create(&company).Error
	}

	if err != nil {
		log.Printf("Failed to find or create company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find or create company"})
		return
	}

	ctx.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) dependentCounts(companyID uint) (DependentCounts, error) {
	var counts DependentCounts

	if err := h.DB.Model(&models.Application{}).
		Where("company_id = ?", companyID).
		Count(&counts.Applications).Error; err != nil {
		return counts, err
	}

	if err := h.DB.Model(&models.Contact{}).
		Where("company_id = ?", companyID).
		Count(&counts.Contacts).Error; err != nil {
		return counts, err
	}

	return counts, nil
}
