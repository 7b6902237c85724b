package handlers

import (
	"musicminds/services/download"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DownloadHandler streams generated files through the gateway so the browser
// never contacts the backend's storage directly.
type DownloadHandler struct {
	Svc download.DownloadService
}

// NewDownloadHandler creates a DownloadHandler.
func NewDownloadHandler(svc download.DownloadService) *DownloadHandler {
	return &DownloadHandler{Svc: svc}
}

// DownloadFileHandler serves GET /api/download?fileUrl=<url>[&filename=<name>].
func (h *DownloadHandler) DownloadFileHandler(c *gin.Context) {
	if _, ok := requireToken(c); !ok {
		return
	}

	dl, err := h.Svc.Open(c.Request.Context(), c.Query("fileUrl"), c.Query("filename"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer dl.Body.Close()

	c.DataFromReader(200, dl.Length, dl.ContentType, dl.Body, map[string]string{
		"Content-Disposition":    download.ContentDisposition(dl.Filename),
		"Cache-Control":          "no-store",
		"X-Content-Type-Options": "nosniff",
	})
	if errs := c.Errors.Last(); errs != nil {
		getLogger(c).Warn("download stream interrupted", zap.String("filename", dl.Filename), zap.Error(errs.Err))
	}
}
