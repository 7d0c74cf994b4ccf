package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() error

// RegisterHealthRoutes wires a liveness-style /health endpoint that
// reports the service name, version and a fixed "ok" status; it runs no
// dependency checks (see RegisterHealthRoutesWithChecks).
// This is a transport-level liveness probe, distinct from the
// domain-specific GET /api/health the classifier/ingestion API exposes.
func RegisterHealthRoutes(router *gin.Engine, serviceName, serviceVersion string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

// RegisterHealthRoutesWithChecks is like RegisterHealthRoutes but also
// evaluates checks, downgrading the overall status to "degraded" when any
// of them returns an error.
func RegisterHealthRoutesWithChecks(router *gin.Engine, serviceName, serviceVersion string, checks map[string]HealthChecker) {
	router.GET("/health", func(c *gin.Context) {
		results := make(gin.H, len(checks))
		status := "ok"
		for name, check := range checks {
			if err := check(); err != nil {
				results[name] = err.Error()
				status = "degraded"
			} else {
				results[name] = "ok"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"service": serviceName,
			"version": serviceVersion,
			"checks":  results,
		})
	})
}
