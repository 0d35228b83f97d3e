package summary

import (
	"strings"
	"testing"

	"github.com/veridex/trustlens/internal/model"
)

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(Config{}); p != nil || err != nil {
		t.Errorf("empty provider must disable summaries, got (%v, %v)", p, err)
	}
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}
	if _, err := NewProvider(Config{Provider: "gemini"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	p, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil || p == nil {
		t.Fatalf("expected provider, got (%v, %v)", p, err)
	}
	if p.Name() != "openai" {
		t.Errorf("unexpected name: %s", p.Name())
	}
}

func TestBuildPrompt(t *testing.T) {
	a := &model.Analysis{
		Subject: "Example Article",
		Trust:   model.TrustResult{Score: 62, Label: "reliable"},
		Cards: []model.Card{
			{Key: model.ComponentSourceCredibility, Title: "Source Credibility", Score: 80, Label: "trusted", Present: true},
			{Key: model.ComponentFactChecker, Title: "Fact Checking", Present: false},
		},
	}

	prompt := BuildPrompt(a)

	for _, want := range []string{
		"Example Article",
		"62/100 (reliable)",
		"Source Credibility: 80/100 (trusted)",
		"Fact Checking: no data",
		"Do not add facts",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
