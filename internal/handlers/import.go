package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/importer"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type ImportHandler struct {
	Engine *importer.Engine
}

func NewImportHandler(conn *gorm.DB) *ImportHandler {
	return &ImportHandler{Engine: &importer.Engine{DB: conn}}
}

// ImportUserData re-creates a snapshot document's graph inside one
// transaction; nothing persists if any step fails.
func (h *ImportHandler) ImportUserData(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var document importer.Document

	if !bindJSON(ctx, &document) {
		return
	}

	summary, warnings, err := h.Engine.Run(userID, document)

	if err != nil {
		log.Printf("Import failed for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import data"})
		return
	}

	response := gin.H{
		"success": true,
		"message": "Data imported successfully",
		"summary": summary,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}

	ctx.JSON(http.StatusOK, response)
}
