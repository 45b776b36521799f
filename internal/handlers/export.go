package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/export"
	"github.com/jobtrail-dev/jobtrail/internal/utils"
)

type ExportHandler struct {
	Engine *export.Engine
}

func NewExportHandler(conn *gorm.DB) *ExportHandler {
	return &ExportHandler{Engine: &export.Engine{DB: conn}}
}

// ExportUserData serves the full snapshot as a downloadable JSON attachment.
func (h *ExportHandler) ExportUserData(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	document, err := h.Engine.Build(userID)

	if err != nil {
		log.Printf("Export failed for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export user data"})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	ctx.JSON(http.StatusOK, document)
}
