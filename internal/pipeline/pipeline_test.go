package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veridex/trustlens/internal/model"
)

const backendPayload = `{
	"trust_score": 64,
	"source_credibility": {"credibility_score": 80},
	"author_analyzer": {"credibility_score": 70},
	"bias_detector": {"objectivity_score": 60},
	"fact_checker": {"claims_checked": 4, "verified_count": 3}
}`

func testConfig(backendURL string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Backend.BaseURL = backendURL
	cfg.Backend.Timeout = 5 * time.Second
	cfg.Cache.Enabled = false
	cfg.Fetch.RespectRobots = false
	return cfg
}

func TestAnalyzeURL(t *testing.T) {
	var gotBody struct {
		URL  string `json:"url"`
		Text string `json:"text"`
	}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(backendPayload))
	}))
	defer backend.Close()

	p := New(testConfig(backend.URL))
	a, err := p.AnalyzeURL(context.Background(), "https://example.com/politics/budget-vote-2026.html")
	if err != nil {
		t.Fatalf("AnalyzeURL() error = %v", err)
	}

	if gotBody.URL != "https://example.com/politics/budget-vote-2026.html" {
		t.Errorf("backend received url %q", gotBody.URL)
	}
	if a.Subject != "budget vote 2026" {
		t.Errorf("Subject = %q, want %q", a.Subject, "budget vote 2026")
	}
	// (80*.25 + 70*.20 + 60*.20 + 75*.20) / .85 = 71.76 -> 72
	if a.Trust.Score != 72 {
		t.Errorf("Trust.Score = %d, want 72", a.Trust.Score)
	}
	if a.Trust.Label != "reliable" {
		t.Errorf("Trust.Label = %q, want %q", a.Trust.Label, "reliable")
	}
	if len(a.Cards) != len(model.ComponentKeys()) {
		t.Errorf("got %d cards, want %d", len(a.Cards), len(model.ComponentKeys()))
	}
	if a.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt not set")
	}
}

func TestAnalyzeTextDefaultSubject(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(backendPayload))
	}))
	defer backend.Close()

	p := New(testConfig(backend.URL))
	text := strings.Repeat("word ", 60)
	a, err := p.AnalyzeText(context.Background(), text, "")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if a.Subject != "Pasted text" {
		t.Errorf("Subject = %q, want %q", a.Subject, "Pasted text")
	}
	if a.SourceURL != "" {
		t.Errorf("SourceURL = %q, want empty", a.SourceURL)
	}
}

func TestAnalyzeURLWithFallback(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Slow Site Story</title></head><body><article><p>` +
			strings.Repeat("The report drew on several independent reviews of the filings. ", 12) +
			`</p></article></body></html>`))
	}))
	defer article.Close()

	var textCalls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL  string `json:"url"`
			Text string `json:"text"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.URL != "" {
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`{}`))
			return
		}
		textCalls++
		w.Write([]byte(backendPayload))
	}))
	defer backend.Close()

	cfg := testConfig(backend.URL)
	cfg.Backend.Timeout = 50 * time.Millisecond

	p := New(cfg)
	a, err := p.AnalyzeURLWithFallback(context.Background(), article.URL+"/story")
	if err != nil {
		t.Fatalf("AnalyzeURLWithFallback() error = %v", err)
	}
	if textCalls != 1 {
		t.Errorf("text-mode calls = %d, want 1", textCalls)
	}
	if a.Subject != "Slow Site Story" {
		t.Errorf("Subject = %q, want article title", a.Subject)
	}
	if a.SourceURL == "" {
		t.Error("SourceURL not preserved through fallback")
	}
}

func TestAnalyzeCaching(t *testing.T) {
	var calls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(backendPayload))
	}))
	defer backend.Close()

	cfg := testConfig(backend.URL)
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	p := New(cfg)
	for i := 0; i < 2; i++ {
		if _, err := p.AnalyzeURL(context.Background(), "https://example.com/a"); err != nil {
			t.Fatalf("AnalyzeURL() attempt %d error = %v", i+1, err)
		}
	}
	if calls != 1 {
		t.Errorf("backend calls = %d, want 1 (second hit should be cached)", calls)
	}
}

func TestSubjectFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/news/senate_hearing-day-two.html", "senate hearing day two"},
		{"https://example.com/", "example.com"},
		{"https://example.com/briefing", "briefing"},
	}
	for _, tt := range tests {
		if got := subjectFromURL(tt.url); got != tt.want {
			t.Errorf("subjectFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
