package handlers

import (
	"net/http"

	"musicminds/models"
	"musicminds/services/export"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportHandler relays export jobs to the backend.
type ExportHandler struct {
	Svc export.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc export.ExportService) *ExportHandler {
	return &ExportHandler{Svc: svc}
}

// CreateExportHandler validates the payload, forwards it and answers with the
// generated file's location.
func (h *ExportHandler) CreateExportHandler(c *gin.Context) {
	token, ok := requireToken(c)
	if !ok {
		return
	}

	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid export request", err.Error())
		return
	}

	res, err := h.Svc.Create(c.Request.Context(), token, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("export created",
		zap.String("format", res.Format),
		zap.String("filename", res.Filename),
		zap.Int64("size", res.Size),
	)
	c.JSON(http.StatusCreated, res)
}
