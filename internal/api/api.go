// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/autoorder/internal/api/handlers"
	"github.com/andresuchdata/autoorder/internal/api/middleware"
	"github.com/andresuchdata/autoorder/internal/service"
)

type Services struct {
	ReplenishmentService *service.ReplenishmentService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if services != nil && services.ReplenishmentService != nil {
			body["catalog"] = services.ReplenishmentService.Source()
		}
		c.JSON(http.StatusOK, body)
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.ReplenishmentService != nil {
		h := handlers.NewReplenishmentHandler(services.ReplenishmentService)
		group := apiGroup.Group("/replenishment")
		{
			group.GET("/report", h.GetReport)
			group.GET("/products", h.GetProducts)
			group.GET("/products/:id", h.GetProduct)
			group.PATCH("/products/:id/auto_order", h.SetAutoOrder)
			group.GET("/candidates", h.GetCandidates)
			group.GET("/candidates/export", h.ExportCandidates)
			group.GET("/categories", h.GetCategorySummary)
			group.GET("/suppliers", h.GetSupplierSummary)
			group.GET("/filters", h.GetFilterOptions)
		}
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	cfg := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			cfg.AllowOrigins = nil
			cfg.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			cfg.AllowOrigins = normalizedOrigins
		}
	}
	return cfg
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimRight(strings.TrimSpace(part), "/")
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
