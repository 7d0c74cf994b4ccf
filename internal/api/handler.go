// Package api implements the HTTP surface described by the classification
// and ingestion endpoints: a synchronous classify call for ad-hoc text, a
// webhook that enqueues records for the ingestion pipeline, and a pair of
// operational endpoints for health and catalog reload.
package api

import (
	"github.com/jonesrussell/brandquery/internal/classifier"
	"github.com/jonesrussell/brandquery/internal/ingest"
	"github.com/jonesrussell/brandquery/internal/logger"
	"github.com/jonesrussell/brandquery/internal/telemetry"
)

// Handler holds the dependencies shared by every route.
type Handler struct {
	classifier  *classifier.Classifier
	queue       *ingest.Queue
	catalogPath string
	tel         *telemetry.Provider
	log         logger.Logger
}

// NewHandler builds a Handler. catalogPath is the CSV path reloaded by
// PostReloadClassifier. tel may be nil, in which case no metrics are
// recorded.
func NewHandler(
	c *classifier.Classifier, q *ingest.Queue, catalogPath string, tel *telemetry.Provider, log logger.Logger,
) *Handler {
	return &Handler{
		classifier:  c,
		queue:       q,
		catalogPath: catalogPath,
		tel:         tel,
		log:         log,
	}
}
