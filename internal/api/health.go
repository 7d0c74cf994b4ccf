package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/brandquery/internal/logger"
)

// GetHealth handles GET /api/health: classifier and queue status.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"classifier": gin.H{
			"state":      h.classifier.State().String(),
			"queryCount": h.classifier.QueryCount(),
		},
		"queue": gin.H{
			"depth": h.queue.Depth(),
		},
	})
}

// PostReloadClassifier handles POST /api/health/reload-classifier: it
// re-reads the catalog file and atomically publishes the new snapshot.
// The previous snapshot stays live for concurrent Classify calls until
// then, per the Ready -> Initializing -> Ready discipline.
func (h *Handler) PostReloadClassifier(c *gin.Context) {
	if err := h.classifier.Load(h.catalogPath); err != nil {
		logger.FromContext(c.Request.Context()).Error("reload rule catalog", logger.String("path", h.catalogPath), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":      h.classifier.State().String(),
		"queryCount": h.classifier.QueryCount(),
	})
}
