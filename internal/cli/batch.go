package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/veridex/trustlens/internal/pipeline"
	"github.com/veridex/trustlens/internal/render"
	"github.com/veridex/trustlens/internal/worker"
)

var (
	batchWorkers int
	batchRate    float64
	batchBurst   int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple URLs from a file in parallel",
	Long: `Batch analyzes multiple URLs concurrently:
- Read URLs from input file (one per line, # comments allowed)
- Analyze URLs in parallel with configurable worker count
- Rate-limit requests per host
- Write an individual report for each URL

Example:
  trustlens batch urls.txt
  trustlens batch urls.txt --workers 8 --out-dir ./reports
  trustlens batch urls.txt --rate 0.5 --batch-timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of concurrent workers")
	batchCmd.Flags().Float64Var(&batchRate, "rate", 1, "max requests per second per host")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 2, "rate limiter burst size")
	batchCmd.Flags().StringVar(&outputDir, "out-dir", "./trustlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 15*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "timeout for individual analyses")
	batchCmd.Flags().StringVar(&backendURL, "backend", "", "analysis backend base URL (default: http://localhost:8000)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analyses)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = batchWorkers
	cfg.Concurrency.RequestsPerSecond = batchRate
	cfg.Concurrency.Burst = batchBurst

	urls, err := worker.ReadURLList(file)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", file)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing %d URLs with %d workers...\n\n", len(urls), batchWorkers)

	p := pipeline.New(cfg)
	processor := worker.NewBatchProcessor(p, batchWorkers, batchRate, batchBurst)
	results := processor.Run(ctx, urls)

	renderer := render.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Err)
			continue
		}
		successCount++

		slug := reportSlug(result.Analysis.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")
		if err := renderer.RenderJSON(result.Analysis, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Analysis, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.URL, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (trust: %d/100, %s)\n",
			result.Analysis.Subject, result.Analysis.Trust.Score, result.Analysis.Trust.Label)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)

	return nil
}

// reportSlug derives a safe filename from an analysis subject.
func reportSlug(subject string) string {
	s := strings.ToLower(strings.TrimSpace(subject))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "report"
	}
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}
