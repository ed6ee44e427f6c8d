package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"hackathon-radar/pkg/bootstrap"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion pass and print the summary",
	Long: `Run every enabled source, extract raw announcements, merge new records
into the store and print the run summary as JSON.

Source and extraction failures are listed in the summary and do not change
the exit status. The command fails only if the dataset could not be loaded
or saved.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	orch, closeStore, err := bootstrap.Orchestrator(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	summary, err := orch.Run(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
