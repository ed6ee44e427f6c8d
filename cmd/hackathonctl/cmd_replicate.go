package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hackathon-radar/pkg/bootstrap"
	"hackathon-radar/pkg/replication"
)

var (
	replicateFrom      string
	replicateTo        string
	replicateBatchSize int
	replicateWorkers   int
)

var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Copy records missing from one store backend into another",
	Long: `Copy every record of --from that --to does not have yet. Records already
in the destination are never changed, so the command can be re-run safely.

Backends: ` + strings.Join(bootstrap.Backends, ", "),
	Args: cobra.NoArgs,
	RunE: runReplicate,
}

func init() {
	replicateCmd.Flags().StringVar(&replicateFrom, "from", "", "Source backend")
	replicateCmd.Flags().StringVar(&replicateTo, "to", "", "Destination backend")
	replicateCmd.Flags().IntVar(&replicateBatchSize, "batch-size", 100, "Records per destination write")
	replicateCmd.Flags().IntVar(&replicateWorkers, "workers", 5, "Parallel destination writes")
	_ = replicateCmd.MarkFlagRequired("from")
	_ = replicateCmd.MarkFlagRequired("to")
}

func runReplicate(cmd *cobra.Command, args []string) error {
	if strings.EqualFold(replicateFrom, replicateTo) {
		return fmt.Errorf("--from and --to must differ")
	}
	cfg := loadConfig()
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	from, closeFrom, err := bootstrap.OpenStore(ctx, cfg, replicateFrom, log)
	if err != nil {
		return fmt.Errorf("open %s: %w", replicateFrom, err)
	}
	defer closeFrom()
	to, closeTo, err := bootstrap.OpenStore(ctx, cfg, replicateTo, log)
	if err != nil {
		return fmt.Errorf("open %s: %w", replicateTo, err)
	}
	defer closeTo()

	r, err := replication.NewReplicator(replication.Config{
		From:      from,
		To:        to,
		BatchSize: replicateBatchSize,
		Workers:   replicateWorkers,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	report, runErr := r.Run(ctx)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	return runErr
}
