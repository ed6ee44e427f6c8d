// Package pipeline runs one ingestion pass: load the stored dataset, fetch
// every source, extract raw text, normalize, merge and save.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/extraction"
	"hackathon-radar/pkg/filter"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/merge"
	"hackathon-radar/pkg/normalize"
	"hackathon-radar/pkg/sources"
	"hackathon-radar/pkg/store"
)

// saveTimeout bounds the final write. It is independent of RunTimeout and of
// cancellation of the caller's context.
const saveTimeout = 2 * time.Minute

// Publisher receives the saved dataset after a successful run. Failures are
// logged and never fail the run.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, dataset domain.Dataset) error
}

// Config holds configuration for the Orchestrator
type Config struct {
	Store      store.Store
	Sources    []sources.Source
	Extractor  extraction.Extractor // nil disables extraction
	Normalizer *normalize.Normalizer
	Publishers []Publisher
	Logger     *logger.Logger

	RunTimeout         time.Duration // 0 = no run deadline
	AdapterTimeout     time.Duration // 0 = bounded only by the run
	ExtractTimeout     time.Duration // 0 = bounded only by the run
	AdapterConcurrency int
	ExtractWorkers     int
}

// Summary reports one run.
type Summary struct {
	RunID              string        `json:"run_id"`
	AdaptersRun        int           `json:"adapters_run"`
	AdaptersFailed     int           `json:"adapters_failed"`
	RawInputs          int           `json:"raw_inputs"`
	RawSkipped         int           `json:"raw_skipped"`
	Extracted          int           `json:"extracted"`
	ExtractionFailures int           `json:"extraction_failures"`
	Candidates         int           `json:"candidates"`
	RecordsAdded       int           `json:"records_added"`
	Total              int           `json:"total"`
	Errors             []string      `json:"errors"`
	Duration           time.Duration `json:"duration"`
}

// Orchestrator sequences the stages of a run.
type Orchestrator struct {
	cfg Config
	log *logger.Logger
}

// New creates an Orchestrator. Store and Normalizer are required.
func New(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalize.New(nil)
	}
	if cfg.Extractor == nil {
		cfg.Extractor = extraction.Disabled{Reason: "no extractor configured"}
	}
	if cfg.AdapterConcurrency < 1 {
		cfg.AdapterConcurrency = 1
	}
	if cfg.ExtractWorkers < 1 {
		cfg.ExtractWorkers = 1
	}
	return &Orchestrator{cfg: cfg, log: cfg.Logger.Component("pipeline")}
}

// tagged is a candidate with the provenance of the adapter or raw input it
// came from.
type tagged struct {
	candidate domain.Candidate
	meta      domain.SourceMeta
}

// Run performs one ingestion pass. Source and extraction failures are
// recorded in the Summary and never returned. The returned error is non-nil
// only when loading, merging or saving the dataset failed; in that case
// nothing was written.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	sum := Summary{RunID: uuid.NewString(), Errors: []string{}}
	log := o.log.With("run_id", sum.RunID)

	existing, err := store.LoadOrEmpty(ctx, o.cfg.Store, log)
	if err != nil {
		sum.Duration = time.Since(started)
		return sum, fmt.Errorf("load dataset: %w", err)
	}
	log.Info("loaded dataset", "store", o.cfg.Store.Name(), "records", len(existing))

	// The run deadline bounds fetching and extraction only; whatever they
	// produced before it fired is still merged and saved.
	stageCtx := ctx
	if o.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, o.cfg.RunTimeout)
		defer cancel()
	}

	batches := o.fetchAll(stageCtx, log, &sum)

	var items []tagged
	var raw []domain.RawTextInput
	for i, b := range batches {
		meta := o.cfg.Sources[i].Meta()
		for _, c := range b.Candidates {
			items = append(items, tagged{candidate: c, meta: meta})
		}
		raw = append(raw, b.RawTexts...)
	}

	raw = o.pendingRaw(ctx, existing, raw, &sum)
	items = append(items, o.extractAll(stageCtx, log, raw, &sum)...)
	if errors.Is(stageCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		log.Warn("run deadline reached, saving partial results", "run_timeout", o.cfg.RunTimeout)
	}

	records := make([]domain.Hackathon, 0, len(items))
	for _, t := range items {
		records = append(records, o.cfg.Normalizer.Normalize(t.candidate, t.meta))
	}
	sum.Candidates = len(records)

	updated, added, err := merge.Merge(existing, records)
	if err != nil {
		sum.Duration = time.Since(started)
		return sum, fmt.Errorf("merge: %w", err)
	}

	saveCtx, cancelSave := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancelSave()
	if err := o.cfg.Store.Save(saveCtx, updated); err != nil {
		sum.Duration = time.Since(started)
		return sum, fmt.Errorf("save dataset: %w", err)
	}
	sum.RecordsAdded = added
	sum.Total = len(updated)

	o.publish(ctx, log, updated)

	sum.Duration = time.Since(started)
	log.Info("run complete",
		"adapters_run", sum.AdaptersRun,
		"adapters_failed", sum.AdaptersFailed,
		"raw_inputs", sum.RawInputs,
		"extracted", sum.Extracted,
		"records_added", sum.RecordsAdded,
		"total", sum.Total,
		"duration", sum.Duration)
	return sum, nil
}

// fetchAll runs every source with bounded concurrency. batches[i] belongs to
// Sources[i]; a failed source leaves an empty batch.
func (o *Orchestrator) fetchAll(ctx context.Context, log *logger.Logger, sum *Summary) []sources.Batch {
	batches := make([]sources.Batch, len(o.cfg.Sources))
	errs := make([]error, len(o.cfg.Sources))

	var g errgroup.Group
	g.SetLimit(o.cfg.AdapterConcurrency)
	for i, src := range o.cfg.Sources {
		g.Go(func() error {
			actx := ctx
			if o.cfg.AdapterTimeout > 0 {
				var cancel context.CancelFunc
				actx, cancel = context.WithTimeout(ctx, o.cfg.AdapterTimeout)
				defer cancel()
			}
			started := time.Now()
			b, err := safeFetch(actx, src)
			if err != nil {
				errs[i] = err
				return nil
			}
			batches[i] = b
			log.Debug("source fetched", "source", src.Name(),
				"candidates", len(b.Candidates), "raw_texts", len(b.RawTexts),
				"took", time.Since(started))
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		sum.AdaptersRun++
		if err == nil {
			continue
		}
		sum.AdaptersFailed++
		sum.Errors = append(sum.Errors, err.Error())
		log.Warn("source failed, contributing nothing", "source", o.cfg.Sources[i].Name(), "error", err)
	}
	return batches
}

// safeFetch converts a panicking adapter into a FetchError.
func safeFetch(ctx context.Context, src sources.Source) (b sources.Batch, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = sources.Batch{}
			err = &sources.FetchError{Source: src.Name(), Err: fmt.Errorf("panic: %v\n%s", r, debug.Stack())}
		}
	}()
	b, err = src.Fetch(ctx)
	if err == nil {
		return b, nil
	}
	var fe *sources.FetchError
	if !errors.As(err, &fe) {
		err = &sources.FetchError{Source: src.Name(), Err: err}
	}
	return sources.Batch{}, err
}

// pendingRaw drops empty inputs and inputs whose page already produced a
// stored record of the same source.
func (o *Orchestrator) pendingRaw(ctx context.Context, existing domain.Dataset, raw []domain.RawTextInput, sum *Summary) []domain.RawTextInput {
	known := make(map[string]bool)
	for _, h := range existing {
		if h.SourceURL != "" {
			known[h.Source+" "+h.SourceURL] = true
		}
	}
	stored := filter.NewAlreadyFetchedFilter(known)

	out := make([]domain.RawTextInput, 0, len(raw))
	for _, r := range raw {
		if r.Empty() {
			continue
		}
		sum.RawInputs++
		if r.SourceURL != "" {
			if keep, _ := stored.ShouldKeep(ctx, r.Source+" "+r.SourceURL); !keep {
				sum.RawSkipped++
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
