package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the classification and ingestion routes. The
// health routes installed by internal/httpserver already cover basic
// liveness; this adds the domain-specific operational endpoints plus an
// optional Prometheus scrape handler.
func SetupRoutes(router *gin.Engine, h *Handler, metricsHandler http.Handler) {
	router.POST("/api/classify", h.PostClassify)
	router.GET("/api/classify/status", h.GetClassifyStatus)

	router.POST("/api/webhook/kwatch", h.PostWebhookKwatch)

	router.GET("/api/health", h.GetHealth)
	router.POST("/api/health/reload-classifier", h.PostReloadClassifier)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
}
