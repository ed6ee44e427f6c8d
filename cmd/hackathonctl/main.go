// Command hackathonctl is the operator CLI for the ingestion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/logger"
)

var (
	logMode     string
	sourcesFile string
)

var rootCmd = &cobra.Command{
	Use:   "hackathonctl",
	Short: "Operate the hackathon ingestion pipeline",
	Long: `hackathonctl runs and inspects the hackathon ingestion pipeline.

Configuration comes from the same environment variables as the scheduled
binary (DATA_PATH, STORE_BACKEND, SOURCES_FILE, OPENAI_API_KEY, ...).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "Log mode: dev or prod (default: LOG_MODE)")
	rootCmd.PersistentFlags().StringVar(&sourcesFile, "sources", "", "Source catalog file (default: SOURCES_FILE or the built-in catalog)")

	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesValidateCmd)

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(replicateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig() config.Config {
	cfg := config.Load()
	if logMode != "" {
		cfg.LogMode = logMode
	}
	if sourcesFile != "" {
		cfg.SourcesFile = sourcesFile
	}
	return cfg
}

func newLogger(cfg config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
