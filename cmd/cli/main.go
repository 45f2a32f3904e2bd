package main

import (
	"fmt"
	"os"

	"sheetcheck/adapters/excel"
	"sheetcheck/adapters/postgres"
	"sheetcheck/adapters/report"
	"sheetcheck/app"
	"sheetcheck/internal"
	"sheetcheck/internal/config"
	"sheetcheck/ports"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetcheck",
		Short: "Validates SDG concept-to-target mapping spreadsheets",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newSyncCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var (
		file         string
		deep         bool
		allSimilar   bool
		threshold    float64
		markdownPath string
		htmlPath     string
		usePostgres  bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the full validation pass over the configured workbook",
		Long: `Run identifier syntax, duplicate, cross-reference, set-difference and
text-similarity checks over the configured workbook and render a report.

Example: sheetcheck validate --file alignment.xlsx --deeply-similar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file != "" {
				cfg.Source.File = file
			}
			if cfg.Source.File == "" {
				return fmt.Errorf("no workbook configured: pass --file or set SHEETCHECK_FILE")
			}

			log := internal.NewDefaultLogger()
			sinks := []ports.ReportSink{report.NewConsoleSink(os.Stdout)}
			if markdownPath != "" || htmlPath != "" {
				sinks = append(sinks, report.NewMarkdownSink(markdownPath, htmlPath))
			}
			if usePostgres {
				if cfg.Database.DSN == "" {
					return fmt.Errorf("--postgres requires DATABASE_URL to be set")
				}
				pg, err := postgres.NewFindingsSink(cfg.Database.DSN)
				if err != nil {
					return err
				}
				defer pg.Close()
				sinks = append(sinks, pg)
			}

			source := excel.NewWorkbookSource(cfg.Source.File)
			service := app.NewValidationService(source, cfg, log, sinks...)

			rep, err := service.Run(cmd.Context(), app.PassOptions{
				Exhaustive: deep,
				AllSimilar: allSimilar,
				Threshold:  threshold,
			})
			if err != nil {
				return err
			}
			if rep.Failed() {
				// Findings are not errors, but operators want a signal
				cmd.SilenceUsage = true
				return fmt.Errorf("validation found problems; see report above")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Workbook to validate (xlsx or csv), overrides SHEETCHECK_FILE")
	cmd.Flags().BoolVar(&deep, "deeply-similar", false, "Perform exhaustive similarity search. Warning: takes a long time")
	cmd.Flags().BoolVar(&allSimilar, "all-similar", false, "Report similar pairs even when every contributing row is marked reviewed")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity threshold override (0 uses configuration)")
	cmd.Flags().StringVar(&markdownPath, "markdown", "", "Also write the report as markdown to this path")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Also write the report as HTML to this path")
	cmd.Flags().BoolVar(&usePostgres, "postgres", false, "Also store findings in the DATABASE_URL Postgres database")

	return cmd
}

func newSyncCmd() *cobra.Command {
	var (
		file string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Export a one-way snapshot of the configured sheets to a local workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file != "" {
				cfg.Source.File = file
			}
			if cfg.Source.File == "" {
				return fmt.Errorf("no workbook configured: pass --file or set SHEETCHECK_FILE")
			}

			log := internal.NewDefaultLogger()
			source := excel.NewWorkbookSource(cfg.Source.File)
			service := app.NewSyncService(source, excel.NewSnapshotWriter(), cfg, log)
			return service.Export(cmd.Context(), out)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Workbook to snapshot (xlsx or csv), overrides SHEETCHECK_FILE")
	cmd.Flags().StringVar(&out, "out", "snapshot.xlsx", "Path of the exported workbook")

	return cmd
}
