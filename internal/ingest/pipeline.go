// Package ingest decouples webhook ingestion from durable writes. Records
// accepted by the webhook handler are enqueued in an in-memory Queue;
// Pipeline drains the queue on a ticker, persists each record to the raw
// container, classifies it, and persists matches to the processed
// container.
package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonesrussell/brandquery/internal/classifier"
	"github.com/jonesrussell/brandquery/internal/domain"
	"github.com/jonesrussell/brandquery/internal/logger"
	"github.com/jonesrussell/brandquery/internal/store"
	"github.com/jonesrussell/brandquery/internal/telemetry"
)

const defaultDrainTimeout = 30 * time.Second

// Config holds batch drain tuning.
type Config struct {
	BatchSize     int
	BatchInterval time.Duration
}

// Pipeline drains Queue on a ticker and writes results to Store. It
// mirrors the teacher's poll-then-process loop: a ticker fires drain,
// which is also run once immediately on Start.
type Pipeline struct {
	queue      *Queue
	classifier *classifier.Classifier
	store      store.Store
	mirror     *store.ESMirror
	tel        *telemetry.Provider
	log        logger.Logger

	batchSize     int
	batchInterval time.Duration
	running       bool
	stopChan      chan struct{}
}

// NewPipeline builds a Pipeline. mirror may be nil: the Elasticsearch
// mirror is optional and best-effort.
func NewPipeline(
	q *Queue,
	c *classifier.Classifier,
	st store.Store,
	mirror *store.ESMirror,
	tel *telemetry.Provider,
	log logger.Logger,
	cfg Config,
) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.BatchInterval <= 0 {
		cfg.BatchInterval = 60 * time.Second
	}
	return &Pipeline{
		queue:         q,
		classifier:    c,
		store:         st,
		mirror:        mirror,
		tel:           tel,
		log:           log,
		batchSize:     cfg.BatchSize,
		batchInterval: cfg.BatchInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the drain loop in a goroutine. It is an error to call
// Start on an already-running Pipeline.
func (p *Pipeline) Start(ctx context.Context) error {
	if p.running {
		return errors.New("ingest pipeline is already running")
	}
	p.running = true
	p.log.Info("ingest pipeline starting",
		logger.Int("batch_size", p.batchSize),
		logger.Duration("batch_interval", p.batchInterval),
	)

	go p.run(ctx)
	return nil
}

// Stop signals the drain loop to exit. It does not wait for the current
// drain to finish.
func (p *Pipeline) Stop() {
	if !p.running {
		return
	}
	p.log.Info("ingest pipeline stopping")
	close(p.stopChan)
	p.running = false
}

func (p *Pipeline) run(ctx context.Context) {
	ticker := time.NewTicker(p.batchInterval)
	defer ticker.Stop()

	p.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("ingest pipeline stopped: context cancelled")
			return
		case <-p.stopChan:
			p.log.Info("ingest pipeline stopped")
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

// drain pulls up to batchSize records off the queue and processes each in
// turn. A single record's failure is logged and does not block the rest
// of the batch.
func (p *Pipeline) drain(ctx context.Context) {
	start := time.Now()
	batch := p.queue.DrainUpTo(p.batchSize)
	if len(batch) == 0 {
		return
	}

	drainCtx, cancel := context.WithTimeout(ctx, defaultDrainTimeout)
	defer cancel()

	for _, rec := range batch {
		p.processOne(drainCtx, rec)
	}

	if p.tel != nil {
		p.tel.RecordDrain(time.Since(start), len(batch))
		p.tel.SetQueueDepth(p.queue.Depth())
	}
}

func (p *Pipeline) processOne(ctx context.Context, rec domain.IngestRecord) {
	writeStart := time.Now()
	if err := p.store.PutRaw(ctx, rec); err != nil {
		if !errors.Is(err, store.ErrConflict) {
			p.log.Error("write raw record", logger.String("id", rec.ID), logger.Error(err))
			return
		}
		if p.tel != nil {
			p.tel.RecordStoreConflict()
		}
	}
	if p.tel != nil {
		p.tel.RecordStoreWrite("raw", time.Since(writeStart))
	}

	// rec.Query is the kwatch payload's title-equivalent: the search query
	// that surfaced the mention, not the mention body. Combine it with the
	// content the way spec.md §4.G's combined = title + " " + content
	// requires, rather than classifying on content alone.
	combined := strings.TrimSpace(rec.Query + " " + rec.Content)
	result := p.classifier.ClassifyWithTelemetry(combined, p.tel, rec.Platform)

	if !result.Matched {
		return
	}

	processed := domain.ProcessedRecord{
		IngestRecord: rec,
		Topic:        result.Classification.Topic,
		SubTopic:     result.Classification.SubTopic,
		QueryName:    result.Classification.QueryName,
		InternalID:   result.Classification.InternalID,
	}
	processed.Processed = true

	procWriteStart := time.Now()
	if err := p.store.PutProcessed(ctx, processed); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Duplicate id on the processed container: the record is
			// already durable, so this counts as success.
			if p.tel != nil {
				p.tel.RecordStoreConflict()
			}
		} else {
			p.log.Error("write processed record", logger.String("id", rec.ID), logger.Error(err))
			return
		}
	}
	if p.tel != nil {
		p.tel.RecordStoreWrite("processed", time.Since(procWriteStart))
	}

	if p.mirror != nil {
		p.mirror.Mirror(ctx, processed)
	}
}
