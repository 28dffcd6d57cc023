package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdir/directory-api/internal/api/metrics"
	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// AuditDispatcher routes audit events to a fixed set of workers using
// consistent hashing on the actor, guaranteeing per-actor event ordering.
// It implements ports.AuditRecorder; Record returns before the event is
// persisted.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its actor. The call is
// non-blocking up to channelBuffer capacity.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	metrics.AuditEventsTotal.WithLabelValues(string(event.Type)).Inc()
	d.workers[d.shardIndex(event.Actor)] <- event
}

// shardIndex maps an actor deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
			err := d.repo.Insert(insertCtx, &event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("type", string(event.Type)).
					Str("actor", event.Actor).
					Int("worker_id", id).
					Msg("audit event persist failed")
			}
		}
	}
}
