package handlers

import (
	"net/http"

	"github.com/fileportal/backend-go/internal/gateway"
	"github.com/fileportal/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	gw        *gateway.Gateway
	dashboard *service.DashboardService
}

func NewAdminHandler(gw *gateway.Gateway, dashboard *service.DashboardService) *AdminHandler {
	return &AdminHandler{gw: gw, dashboard: dashboard}
}

// Dashboard returns the aggregated operational metrics.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Summary(c.Request.Context()))
}

// AuditLogs lists the audit record keys, newest first.
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	keys := h.gw.ListAuditLogs(c.Request.Context())
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": keys})
}

// AuditLogContent returns the decompressed text of one audit record. The
// key arrives as a query parameter because audit keys contain slashes.
func (h *AdminHandler) AuditLogContent(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key"})
		return
	}
	content := h.gw.AuditLogContent(c.Request.Context(), key)
	if content == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "log unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "content": content})
}

// Alerts returns the alert ledger snapshot in insertion order.
func (h *AdminHandler) Alerts(c *gin.Context) {
	alerts := h.gw.Alerts()
	if alerts == nil {
		alerts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// ClearAlerts empties the alert ledger.
func (h *AdminHandler) ClearAlerts(c *gin.Context) {
	h.gw.ClearAlerts()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
