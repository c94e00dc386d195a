package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mwalden/termlens/internal/model"
	"github.com/mwalden/termlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON    string
	outMD      string
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	noCache    bool
	noFooter   bool
	noRobots   bool
	httpProxy  string
	httpsProxy string
	workers    int
	folding    string
	threshold  float64
	noiseWords []string
	llmEnabled bool
	llmModel   string
	llmBaseURL string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-url>",
	Short: "Analyze a contract document for defined-term consistency",
	Long: `Analyze extracts definitions and term usages from a contract and
reconciles them:
- Duplicate and conflicting definitions of the same term
- Casing drift between a term's definition and its usages
- Capitalized terms used but never defined
- Defined terms never used
- Usages that precede every defining paragraph

Example:
  termlens analyze contract.txt
  termlens analyze https://example.com/msa.html --json report.json --md report.md
  termlens analyze nda.txt --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Termlens/0.2 (+https://github.com/mwalden/termlens)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 4_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Analysis flags
	analyzeCmd.Flags().IntVar(&workers, "workers", 4, "classification worker count")
	analyzeCmd.Flags().StringVar(&folding, "fold", string(model.CaseTitleInsensitive), "case folding: sensitive, insensitive, title-insensitive")
	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 0.85, "similarity at or above which duplicate definitions agree")
	analyzeCmd.Flags().StringSliceVar(&noiseWords, "noise", nil, "extra noise words to exclude from classification")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM candidate extraction")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "OpenAI-compatible endpoint override")
}

// buildConfig assembles the effective configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.ClassifyWorkers = workers
	cfg.Canon.Folding = model.CaseFolding(folding)
	cfg.Registry.SimilarityThreshold = threshold
	cfg.Classifier.NoiseWords = append(cfg.Classifier.NoiseWords, noiseWords...)
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	switch cfg.Canon.Folding {
	case model.CaseSensitive, model.CaseInsensitive, model.CaseTitleInsensitive:
	default:
		return nil, fmt.Errorf("unknown folding mode: %q", folding)
	}

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.BaseURL = llmBaseURL
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", source)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	report, err := p.AnalyzeSource(ctx, source)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Indexed %d paragraphs\n", report.Summary.TotalParagraphs)
		fmt.Fprintf(os.Stderr, "✓ Reconciled %d definitions, %d usages\n",
			report.Summary.TotalDefinitions, report.Summary.TotalUsages)
		fmt.Fprintf(os.Stderr, "✓ Undefined usages: %d\n", report.Summary.UndefinedUsages)
		for issue, count := range report.Summary.IssueCounts {
			fmt.Fprintf(os.Stderr, "  %s: %d\n", issue, count)
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeReport(report, cfg, outJSON, outMD)
}

// writeReport renders the report to the requested output paths.
func writeReport(report *model.Report, cfg *model.Config, jsonPath, mdPath string) error {
	renderer := pipeline.NewRenderer(cfg.Output)

	if jsonPath != "" {
		data, err := renderer.JSON(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", jsonPath, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := os.WriteFile(mdPath, []byte(renderer.Markdown(report)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", mdPath, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", mdPath)
		}
	}
	return nil
}
