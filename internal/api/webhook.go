package api

import (
	"crypto/md5" //nolint:gosec // used for a deterministic non-secret id, not for security
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
)

// webhookRequest mirrors the kwatch payload shape. Query doubles as the
// title half of the title+content article the pipeline classifies on.
type webhookRequest struct {
	Platform  string `json:"platform"`
	Query     string `json:"query"`
	DateTime  string `json:"datetime"`
	Link      string `json:"link"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Sentiment string `json:"sentiment"`
}

var requiredWebhookFields = []string{"platform", "query", "datetime", "link", "author", "content"}

// PostWebhookKwatch handles POST /api/webhook/kwatch: it enqueues the
// record for the ingestion pipeline and returns immediately. Backpressure
// on a full queue is reported as 503, not silently dropped.
func (h *Handler) PostWebhookKwatch(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	reqLog := logger.FromContext(c.Request.Context())

	missing := missingFields(raw, requiredWebhookFields)
	if len(missing) > 0 {
		reqLog.Warn("webhook payload missing required fields",
			logger.Error(domain.ErrMissingField), logger.String("fields", fmt.Sprint(missing)))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        fmt.Sprintf("%s: %v", domain.ErrMissingField, missing),
			"receivedKeys": receivedKeys(raw),
		})
		return
	}

	var req webhookRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if req.Sentiment == "" {
		req.Sentiment = domain.DefaultSentiment
	}

	now := time.Now()
	rec := domain.IngestRecord{
		ID:         recordID(req.Platform, req.DateTime, req.Author, now),
		Platform:   req.Platform,
		Query:      req.Query,
		DateTime:   req.DateTime,
		Link:       req.Link,
		Author:     req.Author,
		Content:    req.Content,
		Sentiment:  req.Sentiment,
		ReceivedAt: now,
	}

	if err := h.queue.Enqueue(rec); err != nil {
		reqLog.Warn("ingestion queue full, rejecting webhook record",
			logger.String("platform", rec.Platform), logger.Error(err))
		if h.tel != nil {
			h.tel.RecordShed()
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ingestion queue is full"})
		return
	}
	if h.tel != nil {
		h.tel.SetQueueDepth(h.queue.Depth())
	}

	c.JSON(http.StatusOK, gin.H{"id": rec.ID})
}

// recordID builds the MD5 hex id the store layout is keyed on:
// platform|datetime|author|now_ms.
func recordID(platform, datetime, author string, now time.Time) string {
	seed := fmt.Sprintf("%s|%s|%s|%d", platform, datetime, author, now.UnixMilli())
	sum := md5.Sum([]byte(seed)) //nolint:gosec // non-secret identifier derivation
	return hex.EncodeToString(sum[:])
}

func missingFields(raw map[string]any, required []string) []string {
	var missing []string
	for _, field := range required {
		v, ok := raw[field]
		if !ok {
			missing = append(missing, field)
			continue
		}
		s, isString := v.(string)
		if !isString || s == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func receivedKeys(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	return keys
}
