package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veridex/trustlens/internal/model"
)

// Analyzer runs a single URL analysis.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*model.Analysis, error)
}

// AnalyzeJob analyzes one URL, respecting the shared rate limiter.
type AnalyzeJob struct {
	URL      string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute runs the analysis for the job's URL.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &AnalyzeResult{URL: j.URL, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}
	a, err := j.Analyzer.AnalyzeURL(ctx, j.URL)
	return &AnalyzeResult{URL: j.URL, Analysis: a, Err: err}
}

// AnalyzeResult is the outcome of one batch entry. Failures stay
// isolated per URL; one bad article never aborts the batch.
type AnalyzeResult struct {
	URL      string
	Analysis *model.Analysis
	Err      error
}

// GetError returns the job's error, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Err
}

// BatchProcessor analyzes many URLs concurrently.
type BatchProcessor struct {
	analyzer Analyzer
	limiter  *Limiter
	workers  int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, workers int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		analyzer: analyzer,
		limiter:  NewLimiter(requestsPerSecond, burst),
		workers:  workers,
	}
}

// Run analyzes all URLs and returns one result per URL.
func (b *BatchProcessor) Run(ctx context.Context, urls []string) []*AnalyzeResult {
	pool := NewPool(b.workers)
	pool.Start()

	go func() {
		<-ctx.Done()
		pool.Shutdown()
	}()

	for _, u := range urls {
		pool.Submit(&AnalyzeJob{URL: u, Analyzer: b.analyzer, Limiter: b.limiter})
	}

	raw := pool.Wait()
	results := make([]*AnalyzeResult, 0, len(raw))
	for _, r := range raw {
		if ar, ok := r.(*AnalyzeResult); ok {
			results = append(results, ar)
		}
	}
	return results
}

// ReadURLList reads one URL per line, skipping blanks, comments and
// duplicates.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open URL list: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL list: %w", err)
	}
	return urls, nil
}
