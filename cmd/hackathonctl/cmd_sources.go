package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/sources"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the source catalog",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	Args:  cobra.NoArgs,
	RunE:  runSourcesList,
}

var sourcesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every enabled source can be built",
	Long: `Parse the catalog, validate every entry and build the adapters without
fetching anything. All problems are reported together.`,
	Args: cobra.NoArgs,
	RunE: runSourcesValidate,
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	catalog, err := config.LoadCatalog(loadConfig().SourcesFile)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tSOURCE TYPE\tSTATUS\tTARGET")
	for _, s := range catalog.Sources {
		status := "enabled"
		if s.Disabled {
			status = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Type, s.SourceType, status, target(s))
	}
	return w.Flush()
}

func runSourcesValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, err := config.LoadCatalog(cfg.SourcesFile)
	if err != nil {
		return err
	}
	srcs, err := sources.Build(catalog, cfg.ManualInputsFile, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d sources OK\n", len(srcs))
	return nil
}

func target(s config.SourceConfig) string {
	switch {
	case s.URL != "":
		return s.URL
	case s.Sitemap != "":
		return s.Sitemap
	case len(s.Pages) > 0:
		return fmt.Sprintf("%s (+%d pages)", s.Pages[0], len(s.Pages)-1)
	case s.File != "":
		return s.File
	}
	return fmt.Sprintf("%d records, %d raw inputs", len(s.Records), len(s.RawInputs))
}
