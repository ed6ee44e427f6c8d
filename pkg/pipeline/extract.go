package pipeline

import (
	"context"
	"fmt"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/extraction"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/worker"
)

// extractAll sends raw inputs through the extractor on a bounded pool. Inputs
// that fail are dropped with a warning.
func (o *Orchestrator) extractAll(ctx context.Context, log *logger.Logger, raw []domain.RawTextInput, sum *Summary) []tagged {
	if len(raw) == 0 {
		return nil
	}

	pool := worker.NewPool(o.cfg.ExtractWorkers, o.extractOne)
	results := pool.Run(ctx, raw)

	var out []tagged
	unavailable := 0
	for _, r := range results {
		if r.Err != nil {
			sum.ExtractionFailures++
			if extraction.IsUnavailable(r.Err) {
				unavailable++
				continue
			}
			sum.Errors = append(sum.Errors, fmt.Sprintf("extract %s: %v", r.Job.Source, r.Err))
			log.Warn("extraction failed, input dropped",
				"source", r.Job.Source, "source_url", r.Job.SourceURL, "error", r.Err)
			continue
		}
		sum.Extracted++
		out = append(out, tagged{
			candidate: r.Value,
			meta: domain.SourceMeta{
				Name: r.Job.Source,
				Type: r.Job.SourceType,
				URL:  r.Job.SourceURL,
			},
		})
	}
	if unavailable > 0 {
		msg := fmt.Sprintf("no extraction available: %d raw inputs skipped", unavailable)
		sum.Errors = append(sum.Errors, msg)
		log.Warn("no extraction available, raw inputs skipped",
			"extractor", o.cfg.Extractor.Name(), "count", unavailable)
	}
	return out
}

func (o *Orchestrator) extractOne(ctx context.Context, in domain.RawTextInput) (c domain.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &extraction.Error{Reason: extraction.ReasonPayload, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if o.cfg.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.ExtractTimeout)
		defer cancel()
	}
	return o.cfg.Extractor.Extract(ctx, in.RawText)
}

// publish hands the saved dataset to every publisher. Failures are logged.
func (o *Orchestrator) publish(ctx context.Context, log *logger.Logger, dataset domain.Dataset) {
	for _, p := range o.cfg.Publishers {
		if err := p.Publish(ctx, dataset); err != nil {
			log.Warn("publish failed", "publisher", p.Name(), "error", err)
			continue
		}
		log.Debug("published", "publisher", p.Name(), "records", len(dataset))
	}
}
