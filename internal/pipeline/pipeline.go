// Package pipeline orchestrates a complete analysis: cache lookup,
// backend call, normalization, aggregation and view-model build.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/veridex/trustlens/internal/cache"
	"github.com/veridex/trustlens/internal/client"
	"github.com/veridex/trustlens/internal/fetch"
	"github.com/veridex/trustlens/internal/model"
	"github.com/veridex/trustlens/internal/normalize"
	"github.com/veridex/trustlens/internal/render"
	"github.com/veridex/trustlens/internal/score"
	"github.com/veridex/trustlens/internal/summary"
)

// Pipeline runs analyses end to end.
type Pipeline struct {
	client     *client.Client
	fetcher    *fetch.Fetcher
	cache      cache.Cache // nil when caching is disabled
	renderer   *render.Renderer
	summarizer summary.Provider // nil when summaries are disabled
	config     *model.Config
}

// New creates a pipeline from configuration.
func New(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var summarizer summary.Provider
	if cfg.LLM.Provider != "" {
		s, err := summary.NewProvider(summary.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize summary provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		client:     client.New(cfg.Backend, cfg.Input.MinWords),
		fetcher:    fetch.New(cfg.Fetch),
		cache:      c,
		renderer:   render.NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
	}
}

// AnalyzeURL analyzes the article behind a URL.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.Analysis, error) {
	req := client.AnalyzeRequest{URL: rawURL, IsPro: p.config.Backend.IsPro}
	return p.analyze(ctx, req, subjectFromURL(rawURL), rawURL)
}

// AnalyzeText analyzes raw article text.
func (p *Pipeline) AnalyzeText(ctx context.Context, text, subject string) (*model.Analysis, error) {
	if subject == "" {
		subject = "Pasted text"
	}
	req := client.AnalyzeRequest{Text: text, IsPro: p.config.Backend.IsPro}
	return p.analyze(ctx, req, subject, "")
}

// AnalyzeURLWithFallback analyzes a URL and, when the backend times
// out in URL mode, fetches the article locally and retries in text
// mode. Only timeouts trigger the fallback; other failures surface
// unchanged.
func (p *Pipeline) AnalyzeURLWithFallback(ctx context.Context, rawURL string) (*model.Analysis, error) {
	a, err := p.AnalyzeURL(ctx, rawURL)
	if err == nil || !client.IsTimeout(err) {
		return a, err
	}

	article, fetchErr := p.fetcher.Article(ctx, rawURL)
	if fetchErr != nil {
		return nil, fmt.Errorf("%w (local fetch also failed: %v)", err, fetchErr)
	}

	a, textErr := p.AnalyzeText(ctx, article.Text, article.Title)
	if textErr != nil {
		return nil, textErr
	}
	a.SourceURL = article.URL
	return a, nil
}

func (p *Pipeline) analyze(ctx context.Context, req client.AnalyzeRequest, subject, sourceURL string) (*model.Analysis, error) {
	key := cache.Key(req.URL, req.Text, req.IsPro)

	var raw json.RawMessage
	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			raw = cached
		}
	}
	if raw == nil {
		payload, err := p.client.Analyze(ctx, req)
		if err != nil {
			return nil, err
		}
		raw = payload
		if p.cache != nil {
			if err := p.cache.Set(key, raw, 0); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
			}
		}
	}

	components := normalize.Payload(raw)
	a := &model.Analysis{
		Subject:    subject,
		SourceURL:  sourceURL,
		AnalyzedAt: time.Now(),
		Raw:        raw,
		Components: components,
		Trust:      score.Aggregate(components, normalize.ServerScore(raw)),
		Cards:      render.BuildCards(components),
	}

	// Summary generation runs after scoring and never affects it.
	if p.summarizer != nil {
		text, err := p.summarizer.Summarize(ctx, a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: summary generation failed: %v\n", err)
		} else {
			a.Summary = &model.Summary{
				Provider: p.summarizer.Name(),
				Model:    p.config.LLM.Model,
				Text:     text,
			}
		}
	}

	return a, nil
}

// RenderReport writes the requested report outputs and prints the
// stdout summary.
func (p *Pipeline) RenderReport(a *model.Analysis, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(a, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(a, mdPath); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(a)
	return nil
}

// GeneratePDF asks the backend to render the analysis as PDF and
// writes it to path.
func (p *Pipeline) GeneratePDF(ctx context.Context, a *model.Analysis, path string) error {
	pdf, err := p.client.GeneratePDF(ctx, a.Raw)
	if err != nil {
		return fmt.Errorf("generate PDF: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}

// subjectFromURL derives a readable subject from the URL path.
func subjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}
