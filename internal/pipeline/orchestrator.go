// Package pipeline orchestrates dossier batches through the stage state
// machine: received → extracted → classified → grouped/merged → generated →
// packaged → delivered.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crepdde/pddepack/internal/assemble"
	"github.com/crepdde/pddepack/internal/config"
	"github.com/crepdde/pddepack/internal/dispatch"
)

// Orchestrator manages the batch queue and worker pool.
type Orchestrator struct {
	batches *Store
	queue   chan *Batch
	worker  *Worker
	stats   *Stats
	log     *slog.Logger
	cfg     config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. External tool calls go through the
// retry wrappers so a transient timeout does not sink a group.
func NewOrchestrator(cfg config.Config, extractor TextExtractor, merger assemble.Merger, converter dispatch.Converter, log *slog.Logger) *Orchestrator {
	stats := NewStats(time.Hour)
	return &Orchestrator{
		batches: NewStore(cfg.JobTTL),
		queue:   make(chan *Batch, cfg.MaxQueueSize),
		worker: NewWorker(
			extractor,
			WithRetryMerger(merger),
			WithRetryConverter(converter),
			log,
			stats,
			cfg.MaxConcurrentExtract,
		),
		stats: stats,
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines and the store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case batch, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, batch)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.batches.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new batch for processing.
func (o *Orchestrator) Submit(b *Batch) error {
	o.batches.Put(b)
	select {
	case o.queue <- b:
		return nil
	default:
		b.Fail(StageReceived, "fila cheia")
		return fmt.Errorf("batch queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// Get returns a batch by ID.
func (o *Orchestrator) Get(id string) *Batch {
	return o.batches.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats exposes the rolling batch latency window.
func (o *Orchestrator) Stats() *Stats {
	return o.stats
}
