// Package summary generates an optional plain-language summary of an
// analysis. Summaries are presentation only and never affect scoring.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veridex/trustlens/internal/model"
)

// Provider generates summaries.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize produces a short summary of the analysis.
	Summarize(ctx context.Context, a *model.Analysis) (string, error)
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string // custom endpoint, e.g. a local proxy
	Timeout   time.Duration
	MaxTokens int
}

// NewProvider creates a provider from configuration. An empty provider
// name means summaries are disabled and returns (nil, nil).
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown summary provider: %s (supported: openai)", cfg.Provider)
	}
}

// ConfigFromModel converts the model-level LLM configuration.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt renders the analysis into the summarization prompt. Only
// data already in the report goes in; the model is told not to add
// facts of its own.
func BuildPrompt(a *model.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize this news trust analysis in 3-4 plain sentences for a general reader.\n")
	fmt.Fprintf(&b, "Only restate the findings below. Do not add facts, sources or judgments of your own.\n\n")
	fmt.Fprintf(&b, "Article: %s\n", a.Subject)
	fmt.Fprintf(&b, "Overall trust score: %d/100 (%s)\n", a.Trust.Score, a.Trust.Label)
	if len(a.Trust.UsedComponents) == 0 {
		fmt.Fprintf(&b, "The score comes from the backend; too few component analyses were usable.\n")
	}
	fmt.Fprintf(&b, "\nComponent results:\n")
	for _, card := range a.Cards {
		if !card.Present {
			fmt.Fprintf(&b, "- %s: no data\n", card.Title)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d/100 (%s)\n", card.Title, card.Score, card.Label)
	}
	return b.String()
}
