package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
)

// ESMirror best-effort mirrors processed records into Elasticsearch for
// downstream search/analytics. It is never the durable store of record:
// callers log and continue on failure rather than failing the drain.
type ESMirror struct {
	client *es.Client
	index  string
	log    logger.Logger
}

// NewESMirror builds a mirror against the given Elasticsearch URL and
// index name.
func NewESMirror(url, index string, log logger.Logger) (*ESMirror, error) {
	client, err := es.NewClient(es.Config{Addresses: []string{url}})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &ESMirror{client: client, index: index, log: log}, nil
}

// Mirror indexes rec under its id, overwriting any prior document. Errors
// are logged and swallowed: the processed container remains the source of
// truth, so a mirror failure must not fail the drain.
func (m *ESMirror) Mirror(ctx context.Context, rec domain.ProcessedRecord) {
	docBytes, err := json.Marshal(rec)
	if err != nil {
		m.log.Warn("marshal record for elasticsearch mirror", logger.Error(err))
		return
	}

	res, err := m.client.Index(
		m.index,
		bytes.NewReader(docBytes),
		m.client.Index.WithContext(ctx),
		m.client.Index.WithDocumentID(rec.ID),
	)
	if err != nil {
		m.log.Warn("elasticsearch mirror request failed", logger.String("id", rec.ID), logger.Error(err))
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		m.log.Warn("elasticsearch mirror error response",
			logger.String("id", rec.ID), logger.String("response", res.String()))
	}
}
