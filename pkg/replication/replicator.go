package replication

import (
	"context"
	"errors"
	"fmt"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/merge"
	"hackathon-radar/pkg/store"
	"hackathon-radar/pkg/worker"
)

const (
	defaultBatchSize = 100
	defaultWorkers   = 5
)

// Config wires the replication dependencies.
type Config struct {
	From      store.Store
	To        store.Store
	BatchSize int
	Workers   int
	Logger    *logger.Logger
}

// Report counts what a replication did.
type Report struct {
	Read     int `json:"read"`
	Existing int `json:"existing"`
	Copied   int `json:"copied"`
	Batches  int `json:"batches"`
	Failed   int `json:"failed_batches"`
}

// Replicator copies records that the destination does not have yet. Records
// already in the destination are never modified, so running it twice is a
// no-op.
type Replicator struct {
	from      store.Store
	to        store.Store
	batchSize int
	workers   int
	log       *logger.Logger
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.From == nil {
		return nil, fmt.Errorf("source store is required")
	}
	if cfg.To == nil {
		return nil, fmt.Errorf("destination store is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Replicator{
		from:      cfg.From,
		to:        cfg.To,
		batchSize: cfg.BatchSize,
		workers:   cfg.Workers,
		log:       cfg.Logger.Component("replication"),
	}, nil
}

// Run reads both datasets and copies the missing records. A corrupt
// destination is treated as empty; a corrupt source is an error.
func (r *Replicator) Run(ctx context.Context) (Report, error) {
	var report Report

	src, err := r.from.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load %s: %w", r.from.Name(), err)
	}
	dst, err := store.LoadOrEmpty(ctx, r.to, r.log)
	if err != nil {
		return report, fmt.Errorf("load %s: %w", r.to.Name(), err)
	}
	report.Read = len(src)
	report.Existing = len(dst)

	merged, added, err := merge.Merge(dst, src)
	if err != nil {
		return report, err
	}
	r.log.Info("loaded datasets", "from", r.from.Name(), "to", r.to.Name(),
		"read", len(src), "existing", len(dst), "missing", added)
	if added == 0 {
		return report, nil
	}

	// The file backend rewrites the whole dataset, so it gets one save.
	if _, whole := r.to.(*store.FileStore); whole {
		report.Batches = 1
		if err := r.to.Save(ctx, merged); err != nil {
			report.Failed = 1
			return report, err
		}
		report.Copied = added
		return report, nil
	}

	missing := merge.NewOnly(dst, merged)
	return r.processBatches(ctx, missing, report)
}

// processBatches saves the missing records in batches in parallel. A failed
// batch does not stop the others; the next run retries it.
func (r *Replicator) processBatches(ctx context.Context, missing []domain.Hackathon, report Report) (Report, error) {
	var batches [][]domain.Hackathon
	for start := 0; start < len(missing); start += r.batchSize {
		end := calculateBatchEnd(start, r.batchSize, len(missing))
		batches = append(batches, missing[start:end])
	}
	report.Batches = len(batches)

	pool := worker.NewPool(r.workers, func(ctx context.Context, batch []domain.Hackathon) (int, error) {
		if err := r.to.Save(ctx, batch); err != nil {
			return 0, err
		}
		return len(batch), nil
	})

	var errs []error
	for _, res := range pool.Run(ctx, batches) {
		if res.Err != nil {
			report.Failed++
			errs = append(errs, fmt.Errorf("batch %d: %w", res.Index, res.Err))
			r.log.Warn("batch failed", "batch", res.Index, "size", len(res.Job), "error", res.Err)
			continue
		}
		report.Copied += res.Value
		r.log.Debug("batch saved", "batch", res.Index, "size", res.Value, "worker", res.WorkerID)
	}

	r.log.Info("replication complete", "copied", report.Copied, "batches", report.Batches, "failed", report.Failed)
	return report, errors.Join(errs...)
}

// calculateBatchEnd calculates the end index for a batch, ensuring it doesn't exceed the total length.
func calculateBatchEnd(start, batchSize, totalLen int) int {
	end := start + batchSize
	if end > totalLen {
		return totalLen
	}
	return end
}
