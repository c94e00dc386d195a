package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mwalden/termlens/internal/pipeline"
	"github.com/mwalden/termlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noFooter is defined in analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple documents from a list file in parallel",
	Long: `Batch processes multiple documents concurrently:
- Read sources from input file (one path or URL per line, # comments allowed)
- Analyze sources in parallel with configurable worker count
- Generate individual JSON and Markdown reports for each document

Example:
  termlens batch contracts.txt
  termlens batch contracts.txt --concurrency 10 --output-dir ./reports
  termlens batch contracts.txt --concurrency 5 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./termlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from analyze command
	batchCmd.Flags().DurationVar(&timeout, "analyze-timeout", 30*time.Second, "timeout for individual documents")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Termlens/0.2 (+https://github.com/mwalden/termlens)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM candidate extraction")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "OpenAI-compatible endpoint override")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Batch input: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "Timeout:     %v\n\n", batchTimeout)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	// Create output directory
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Err)
			continue
		}
		successCount++

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := writeReport(result.Report, cfg, jsonPath, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d definitions, %d undefined usages)\n",
			result.Report.Subject, result.Report.Summary.TotalDefinitions,
			result.Report.Summary.UndefinedUsages)
	}

	fmt.Fprintf(os.Stderr, "\nTotal:    %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "Output:   %s\n", outputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}
