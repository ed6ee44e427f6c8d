package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hackathon-radar/pkg/bootstrap"
	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/logger"
)

// main runs one ingestion pass. It is meant for a scheduler: there are no
// arguments, everything comes from the environment, and the exit status is
// 1 only when the dataset could not be loaded or saved.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("ingestion failed", "error", err)
		log.Sync()
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	orch, closeStore, err := bootstrap.Orchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	summary, err := orch.Run(ctx)
	if err != nil {
		return err
	}
	for _, e := range summary.Errors {
		log.Warn("run error", "run_id", summary.RunID, "error", e)
	}
	log.Info("summary",
		"run_id", summary.RunID,
		"adapters_run", summary.AdaptersRun,
		"records_added", summary.RecordsAdded,
		"errors", len(summary.Errors))
	return nil
}
