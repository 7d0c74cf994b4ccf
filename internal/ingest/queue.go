// Package ingest decouples webhook ingestion from durable writes: a
// bounded queue absorbs inbound records and a periodic, non-reentrant
// drain classifies and persists them.
package ingest

import (
	"errors"
	"sync"

	"github.com/jonesrussell/brandquery/internal/domain"
)

// ErrQueueFull is returned by Enqueue when the queue has reached its
// capacity. The caller (the webhook handler) turns this into a 503.
var ErrQueueFull = errors.New("ingestion queue is full")

// Queue is a bounded, mutex-protected FIFO of inbound records. Enqueue
// never blocks: it either appends or rejects with ErrQueueFull, per the
// shed-on-overload policy chosen for this service's backpressure model.
type Queue struct {
	mu       sync.Mutex
	capacity int
	items    []domain.IngestRecord
}

// NewQueue creates a Queue that holds at most capacity records.
func NewQueue(capacity int) *Queue {
	return &Queue{capacity: capacity}
}

// Enqueue appends rec, or returns ErrQueueFull if the queue is at capacity.
func (q *Queue) Enqueue(rec domain.IngestRecord) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.capacity {
		return ErrQueueFull
	}
	q.items = append(q.items, rec)
	return nil
}

// DrainUpTo removes and returns up to n records from the front of the
// queue, oldest first. It returns fewer than n if the queue holds less.
func (q *Queue) DrainUpTo(n int) []domain.IngestRecord {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.items) {
		n = len(q.items)
	}
	batch := make([]domain.IngestRecord, n)
	copy(batch, q.items[:n])
	q.items = q.items[n:]
	return batch
}

// Depth returns the current number of queued records.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
