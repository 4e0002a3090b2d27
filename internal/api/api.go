package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/fileportal/backend-go/internal/api/handlers"
	"github.com/fileportal/backend-go/internal/api/middleware"
	"github.com/fileportal/backend-go/internal/gateway"
	"github.com/fileportal/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the thin JSON surface over the gateway. Everything here
// delegates to the gateway's public operations; there is no business logic
// in the handlers.
func NewRouter(gw *gateway.Gateway, dashboard *service.DashboardService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	fileHandler := handlers.NewFileHandler(gw, dashboard)
	fileGroup := apiGroup.Group("/files")
	{
		fileGroup.POST("", fileHandler.Upload)
		fileGroup.GET("", fileHandler.List)
		fileGroup.DELETE("/:key", fileHandler.Delete)
		fileGroup.GET("/:key/download", fileHandler.Download)
		fileGroup.POST("/:key/backup", fileHandler.Backup)
	}

	adminHandler := handlers.NewAdminHandler(gw, dashboard)
	adminGroup := apiGroup.Group("/admin")
	{
		adminGroup.GET("/dashboard", adminHandler.Dashboard)
		adminGroup.GET("/audit/logs", adminHandler.AuditLogs)
		adminGroup.GET("/audit/logs/content", adminHandler.AuditLogContent)
		adminGroup.GET("/alerts", adminHandler.Alerts)
		adminGroup.DELETE("/alerts", adminHandler.ClearAlerts)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
