package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/graemejk/StA-Slides/internal/batch"
	"github.com/graemejk/StA-Slides/internal/records"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	var providerName string
	var imagesDir string
	var limit int
	var delay time.Duration
	var timeout time.Duration
	var model string
	var temperature float64
	var output string
	var format string
	var defaultsPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Catalogue a directory of slide images",
		Long: `Processes every supported image in a directory through a vision-capable LLM
and writes one catalogue record per slide to a single output file.

Model calls are spaced by a fixed delay (default 12s, five calls per minute)
to stay inside the API quota. A failing slide is recorded with a failure
marker and the run continues; an interrupted run still writes the records
collected so far.`,
		Example: `  # Full run over the default slides directory
  sta-slides batch

  # Validate the pipeline on the first image only
  sta-slides batch --limit 1

  # Export parquet for bulk ingest
  sta-slides batch --format parquet --output slides.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)

			// Missing credentials abort before any processing
			provider, err := newProvider(providerName)
			if err != nil {
				return err
			}
			if model == "" {
				model = defaultModel(providerName)
			}

			defaults := records.BuiltinDefaults()
			if defaultsPath != "" {
				defaults, err = records.LoadDefaults(defaultsPath)
				if err != nil {
					return err
				}
				slog.Info("Loaded defaults override", "path", defaultsPath)
			}

			if output == "" {
				output = defaultOutput(limit, format)
			}

			slog.Info("Starting batch run",
				"dir", imagesDir,
				"provider", providerName,
				"model", model,
				"delay", delay,
				"limit", limit,
				"output", output)

			runner := &batch.Runner{
				Provider:    provider,
				Assembler:   records.NewAssembler(defaults),
				Model:       model,
				Temperature: temperature,
				Prompt:      batch.SlidePrompt,
				Delay:       delay,
				Limit:       limit,
				CallTimeout: timeout,
			}

			results, runErr := runner.Run(cmd.Context(), imagesDir)
			if len(results) == 0 {
				return runErr
			}
			if runErr != nil {
				slog.Warn("Run interrupted, writing partial results", "collected", len(results), "error", runErr)
			}

			if err := batch.WriteResults(output, format, results); err != nil {
				return err
			}

			batch.PrintSummary(results)
			fmt.Printf("\nResults saved to: %s\n", output)

			return runErr
		},
	}

	cmd.Flags().StringVarP(&providerName, "provider", "p", "gemini", "LLM provider (gemini, openai, or ollama)")
	cmd.Flags().StringVarP(&imagesDir, "images-dir", "d", "images/slides", "Directory of slide images to process")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Process only the first N images (0 = all)")
	cmd.Flags().DurationVar(&delay, "delay", 12*time.Second, "Delay between model calls")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Per-call timeout (0 = none)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name (defaults to provider's default)")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", 0.1, "Sampling temperature")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default depends on --limit and --format)")
	cmd.Flags().StringVar(&format, "format", batch.FormatJSON, "Output format: json or parquet")
	cmd.Flags().StringVar(&defaultsPath, "defaults", "", "YAML file overriding the static default field values")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

// defaultOutput keeps the historical output names: test runs and full runs
// write to different files so a validation pass never clobbers real results.
func defaultOutput(limit int, format string) string {
	name := "batch_results"
	if limit > 0 {
		name = "test_results"
	}
	if format == batch.FormatParquet {
		return name + ".parquet"
	}
	return name + ".json"
}
