package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"crimescope/adapters/chart"
	"crimescope/adapters/datareadiness/coercer"
	"crimescope/adapters/tabular"
	"crimescope/app"
	"crimescope/domain/incident"
	"crimescope/internal"
	"crimescope/internal/config"
	"crimescope/internal/dataset"
	"crimescope/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	rootCmd := newRootCmd(cfg)
	rootCmd.AddCommand(newSampleCmd(cfg))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crimescope",
		Short: "Summarize an incident dataset into monthly and top-category charts",
		Long: `Load a crime or incident table with arbitrary column names, resolve its
date, category and area columns, and write two PNG charts plus a console summary.

Example: crimescope --csv data/nypd_complaints.csv --outdir out --topk 15`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runReport(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Source.Path, "csv", cfg.Source.Path, "Source table (.csv, .tsv, .xlsx, .json); falls back to "+cfg.Source.DefaultPath)
	flags.StringVar(&cfg.Source.Sheet, "sheet", cfg.Source.Sheet, "Worksheet to read from an Excel workbook (default first sheet)")
	flags.StringVar(&cfg.Output.Dir, "outdir", cfg.Output.Dir, "Output directory for charts and reports")
	flags.IntVar(&cfg.Output.TopK, "topk", cfg.Output.TopK, "Number of categories in the top-categories chart")
	flags.StringVar(&cfg.Output.JSONPath, "json", cfg.Output.JSONPath, "Also write the run summary as JSON to this path")
	flags.BoolVar(&cfg.Output.HTMLReport, "html", cfg.Output.HTMLReport, "Also write <outdir>/report.html")
	flags.StringSliceVar(&cfg.Schema.DateColumns, "date-column", cfg.Schema.DateColumns, "Extra date column name, checked before the built-in aliases")
	flags.StringSliceVar(&cfg.Schema.CategoryColumns, "category-column", cfg.Schema.CategoryColumns, "Extra category column name, checked before the built-in aliases")
	flags.StringSliceVar(&cfg.Schema.AreaColumns, "area-column", cfg.Schema.AreaColumns, "Extra area column name, checked before the built-in aliases")
	flags.StringVar(&cfg.Schema.Timezone, "timezone", cfg.Schema.Timezone, "IANA zone for timestamps without an offset")
	cmd.PersistentFlags().BoolVarP(&cfg.Logging.Verbose, "verbose", "v", cfg.Logging.Verbose, "Log progress to stderr")

	return cmd
}

func runReport(ctx context.Context, cfg *config.Config) error {
	internal.SetupLogging(os.Stderr, cfg.Logging.Verbose)

	location, err := cfg.Location()
	if err != nil {
		return err
	}
	coercion := coercer.DefaultCoercionConfig()
	coercion.Location = location

	candidates := incident.DefaultCandidates().WithOverrides(
		cfg.Schema.DateColumns, cfg.Schema.CategoryColumns, cfg.Schema.AreaColumns)

	store := dataset.NewArtifactStore(cfg.Output.Dir)
	service := app.NewReportService(
		tabular.NewLoader(tabular.ReaderConfig{Sheet: cfg.Source.Sheet}),
		dataset.NewNormalizer(candidates, coercer.NewTypeCoercer(coercion)),
		chart.NewRenderer(chart.Config{WidthIn: cfg.Output.ChartWidthIn, HeightIn: cfg.Output.ChartHeightIn}, store),
		store,
		os.Stdout,
	)

	_, err = service.Run(ctx, app.ReportRequest{
		SourcePath:    cfg.Source.Path,
		DefaultSource: cfg.Source.DefaultPath,
		TopK:          cfg.Output.TopK,
		JSONPath:      cfg.Output.JSONPath,
		HTMLReport:    cfg.Output.HTMLReport,
	})
	return err
}

func newSampleCmd(cfg *config.Config) *cobra.Command {
	generatorConfig := testkit.DefaultIncidentConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic incident CSV",
		Long: `Generate a deterministic incident table using common civic-data column names.
The output can serve as the default source.

Example: crimescope sample --rows 5000 --seed 7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			internal.SetupLogging(os.Stderr, cfg.Logging.Verbose)
			if generatorConfig.Rows <= 0 {
				return fmt.Errorf("--rows must be positive, got %d", generatorConfig.Rows)
			}
			if err := testkit.NewIncidentDataGenerator(generatorConfig).WriteToFile(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote: %s (%d rows)\n", out, generatorConfig.Rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", cfg.Source.DefaultPath, "Destination CSV path")
	cmd.Flags().IntVar(&generatorConfig.Rows, "rows", generatorConfig.Rows, "Number of incidents")
	cmd.Flags().Uint64Var(&generatorConfig.Seed, "seed", generatorConfig.Seed, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&generatorConfig.UnparseableRate, "bad-date-rate", generatorConfig.UnparseableRate, "Share of rows with an unparseable date")

	return cmd
}
