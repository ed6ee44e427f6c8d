package worker

import (
	"context"
	"sync"
)

// Result is the outcome of one job. Index is the job's position in the
// input slice.
type Result[J, R any] struct {
	Index    int
	Job      J
	Value    R
	Err      error
	WorkerID int
}

// Pool runs a fixed number of workers over a job list.
type Pool[J, R any] struct {
	workerCount int
	process     func(ctx context.Context, job J) (R, error)
}

// NewPool creates a pool with workerCount workers (at least one).
func NewPool[J, R any](workerCount int, process func(ctx context.Context, job J) (R, error)) *Pool[J, R] {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool[J, R]{workerCount: workerCount, process: process}
}

// Run distributes jobs to the workers and returns one Result per job in
// input order. A failed job never stops the others. Jobs not yet started
// when ctx is cancelled are reported with ctx.Err().
func (p *Pool[J, R]) Run(ctx context.Context, jobs []J) []Result[J, R] {
	type job struct {
		index int
		value J
	}

	// Create job channel
	jobChan := make(chan job, len(jobs))
	for i, j := range jobs {
		jobChan <- job{index: i, value: j}
	}
	close(jobChan)

	// Results channel to collect outcomes from workers (no contention)
	resultsChan := make(chan Result[J, R], len(jobs))

	var wg sync.WaitGroup
	workers := min(p.workerCount, len(jobs))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobChan {
				res := Result[J, R]{Index: j.index, Job: j.value, WorkerID: workerID}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Value, res.Err = p.process(ctx, j.value)
				}
				resultsChan <- res
			}
		}(i)
	}

	// Close results channel when all workers finish
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Aggregate results (single goroutine reads from channel)
	out := make([]Result[J, R], len(jobs))
	for res := range resultsChan {
		out[res.Index] = res
	}
	return out
}
