package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veridex/trustlens/internal/model"
	"github.com/veridex/trustlens/internal/pipeline"
)

var (
	backendURL  string
	textFile    string
	outJSON     string
	outMD       string
	outPDF      string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	proMode     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze a single article and generate a trust report",
	Long: `Analyze submits one article to the analysis backend and builds a
trust report:
- Normalize per-component results across legacy payload shapes
- Aggregate component scores into a single 0-100 trust score
- Render per-component cards with scores and labels
- Optionally generate an LLM summary of the findings

If the backend times out on a URL, the article is fetched locally and
resubmitted as text.

Example:
  trustlens analyze https://example.com/news/story.html
  trustlens analyze https://example.com/story --json report.json --md report.md
  trustlens analyze --text-file article.txt
  trustlens analyze https://example.com/story --llm --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&backendURL, "backend", "", "analysis backend base URL (default: http://localhost:8000)")
	analyzeCmd.Flags().StringVar(&textFile, "text-file", "", "analyze article text from a file instead of a URL")
	analyzeCmd.Flags().BoolVar(&proMode, "pro", false, "request the extended (pro) analysis")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&outPDF, "pdf", "", "output PDF path (optional, rendered by the backend)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force a fresh analysis)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && textFile == "" {
		return fmt.Errorf("provide a URL argument or --text-file")
	}
	if len(args) == 1 && textFile != "" {
		return fmt.Errorf("provide a URL or --text-file, not both")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg)

	var analysis *model.Analysis
	if textFile != "" {
		if verbose {
			fmt.Fprintf(os.Stderr, "Analyzing text from: %s\n\n", textFile)
		}
		text, err := os.ReadFile(textFile)
		if err != nil {
			return fmt.Errorf("read text file: %w", err)
		}
		analysis, err = p.AnalyzeText(ctx, string(text), "")
		if err != nil {
			return fmt.Errorf("analyze failed: %w", err)
		}
	} else {
		url := args[0]
		if verbose {
			fmt.Fprintf(os.Stderr, "Analyzing: %s\n", url)
			fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
			fmt.Fprintf(os.Stderr, "Cache: %v\n\n", !noCache)
		}
		analysis, err = p.AnalyzeURLWithFallback(ctx, url)
		if err != nil {
			return fmt.Errorf("analyze failed: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Trust score: %d/100 (%s)\n", analysis.Trust.Score, analysis.Trust.Label)
		fmt.Fprintf(os.Stderr, "✓ Components used: %d\n", len(analysis.Trust.UsedComponents))
		if analysis.Summary != nil {
			fmt.Fprintf(os.Stderr, "✓ Generated summary using %s/%s\n", analysis.Summary.Provider, analysis.Summary.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(analysis, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if outPDF != "" {
		if err := p.GeneratePDF(ctx, analysis, outPDF); err != nil {
			return fmt.Errorf("PDF failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote PDF: %s\n", outPDF)
		}
	}

	return nil
}

// buildConfig resolves the effective configuration: built-in defaults,
// overridden by the config file and TRUSTLENS_* environment variables
// (both held by viper), overridden by flags set on the command line.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Only flags the user actually set override the file/env layers.
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend.BaseURL = backendURL
	}
	if flags.Changed("timeout") {
		cfg.Backend.Timeout = timeout
	}
	if flags.Changed("pro") {
		cfg.Backend.IsPro = proMode
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	cfg.Output.Verbose = verbose

	if flags.Changed("llm") && !llmEnabled {
		cfg.LLM.Provider = ""
	}
	if llmEnabled || flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}

	if cfg.LLM.Provider != "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		default:
			return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
		}
	}

	return cfg, nil
}
