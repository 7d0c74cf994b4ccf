package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
)

// classifyRequest accepts either {text} or {title, content}; exactly one
// shape needs to be populated.
type classifyRequest struct {
	Text    string `json:"text"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// classifyResponse is the body for POST /api/classify.
type classifyResponse struct {
	Matched        bool                   `json:"matched"`
	Classification *domain.Classification `json:"classification"`
	TextLength     int                    `json:"textLength"`
	QueryCount     int                    `json:"queryCount"`
}

// PostClassify handles POST /api/classify.
func (h *Handler) PostClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	text := req.Text
	if text == "" {
		text = strings.TrimSpace(req.Title + " " + req.Content)
	}
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	if h.classifier.State() != domain.CatalogReady {
		logger.FromContext(c.Request.Context()).Warn("classify request rejected", logger.Error(domain.ErrCatalogNotReady))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrCatalogNotReady.Error()})
		return
	}

	result := h.classifier.Classify(text)
	c.JSON(http.StatusOK, classifyResponse{
		Matched:        result.Matched,
		Classification: result.Classification,
		TextLength:     len(text),
		QueryCount:     h.classifier.QueryCount(),
	})
}

// classifyStatusResponse is the body for GET /api/classify/status.
type classifyStatusResponse struct {
	Initialized bool `json:"initialized"`
	QueryCount  int  `json:"queryCount"`
}

// GetClassifyStatus handles GET /api/classify/status.
func (h *Handler) GetClassifyStatus(c *gin.Context) {
	c.JSON(http.StatusOK, classifyStatusResponse{
		Initialized: h.classifier.State() == domain.CatalogReady,
		QueryCount:  h.classifier.QueryCount(),
	})
}
