// Command tabledict extracts the first-page tables of a fixed set of
// data-dictionary PDFs into CSV files via a schema-constrained vision call,
// optionally repeating each extraction to check output consistency.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tmorell/tabledict/internal/common"
	"github.com/tmorell/tabledict/internal/keyfile"
	"github.com/tmorell/tabledict/internal/llm/openai"
	"github.com/tmorell/tabledict/internal/pipeline"
	"github.com/tmorell/tabledict/internal/render"
	"github.com/tmorell/tabledict/internal/schema"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var testRuns int

	rootCmd := &cobra.Command{
		Use:           "tabledict",
		Short:         "Extract data-dictionary tables from PDF pages into CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, testRuns)
		},
	}
	rootCmd.Flags().IntVar(&testRuns, "test", 0, "repeat each extraction N times and compare output hashes")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, testRuns int) error {
	cfg := common.LoadConfig()
	runs := cfg.Runs
	if testRuns > 0 {
		runs = testRuns
	}
	if runs < 1 {
		runs = 1
	}

	apiKey, err := keyfile.Load(cfg.Paths.KeyPath)
	if err != nil {
		return err
	}

	schemaFormat, err := schema.LoadFormat(cfg.Paths.SchemaPath)
	if err != nil {
		return err
	}

	jobs, err := pipeline.LoadJobs(cfg.Paths.JobsPath)
	if err != nil {
		return err
	}

	client := openai.NewClient(openai.Config{
		APIKey:  apiKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)

	runner := pipeline.NewRunner(logger, pipeline.Config{
		SchemaFormat: schemaFormat,
		PageIndex:    cfg.Render.PageIndex,
		Zoom:         cfg.Render.Zoom,
		WriteXLSX:    cfg.XLSX,
	}, render.NewRenderer(), client)

	fmt.Printf("MODEL: %s\n", cfg.LLM.Model)
	fmt.Printf("API KEY PATH: %s\n", cfg.Paths.KeyPath)
	fmt.Printf("SCHEMA PATH: %s\n", cfg.Paths.SchemaPath)
	fmt.Printf("TEST RUNS PER PDF: %d\n", runs)
	fmt.Println(strings.Repeat("-", 60))

	for _, job := range jobs {
		fmt.Printf("PDF: %s\n", job.PDFPath)

		report, err := runner.Run(ctx, job, runs)
		if err != nil {
			return fmt.Errorf("job %s: %w", job.PDFPath, err)
		}
		printReport(job, report, runs)

		fmt.Println(strings.Repeat("-", 60))
	}

	fmt.Println("Done.")
	return nil
}

func printReport(job pipeline.Job, report pipeline.Report, runs int) {
	last := report.Last()
	if runs == 1 {
		fmt.Printf("  wrote: %s\n", job.OutCSV)
		fmt.Printf("  rows: %d\n", last.Rows)
		fmt.Printf("  sha256: %s...\n", last.SHA256[:16])
		return
	}

	for i, o := range report.Outcomes {
		fmt.Printf("  run %d: rows=%d sha256=%s...\n", i+1, o.Rows, o.SHA256[:16])
	}
	if report.Consistent {
		fmt.Println("  CONSISTENT")
		fmt.Printf("  final saved as: %s\n", job.OutCSV)
	} else {
		fmt.Println("  INCONSISTENT (hashes differ)")
		fmt.Println("  keeping the .run*.csv files for inspection")
	}
}
