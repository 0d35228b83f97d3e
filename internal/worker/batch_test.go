package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/veridex/trustlens/internal/model"
)

// fakeAnalyzer implements Analyzer.
type fakeAnalyzer struct {
	failOn string
}

func (f *fakeAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.Analysis, error) {
	if url == f.failOn {
		return nil, errors.New("boom")
	}
	return &model.Analysis{Subject: url, SourceURL: url}, nil
}

func TestBatchProcessor_IsolatesFailures(t *testing.T) {
	urls := []string{
		"https://a.example.com/1",
		"https://b.example.com/2",
		"https://c.example.com/3",
	}
	b := NewBatchProcessor(&fakeAnalyzer{failOn: urls[1]}, 2, 100, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := b.Run(ctx, urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}

	byURL := make(map[string]*AnalyzeResult, len(results))
	for _, r := range results {
		byURL[r.URL] = r
	}
	for _, u := range urls {
		r, ok := byURL[u]
		if !ok {
			t.Errorf("missing result for %s", u)
			continue
		}
		if u == urls[1] {
			if r.GetError() == nil {
				t.Errorf("expected failure for %s", u)
			}
		} else if r.GetError() != nil || r.Analysis == nil {
			t.Errorf("unexpected failure for %s: %v", u, r.GetError())
		}
	}
}

func TestLimiter_RejectsHostlessURL(t *testing.T) {
	l := NewLimiter(10, 1)
	if err := l.Wait(context.Background(), "not-a-url"); err == nil {
		t.Error("expected error for URL without host")
	}
	if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := fmt.Sprintln("https://example.com/a") +
		fmt.Sprintln("# comment") +
		fmt.Sprintln("") +
		fmt.Sprintln("https://example.com/b") +
		fmt.Sprintln("https://example.com/a") // duplicate
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLList(path)
	if err != nil {
		t.Fatalf("ReadURLList: %v", err)
	}
	want := []string{"https://example.com/a", "https://example.com/b"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("got %v, want %v", urls, want)
	}
}
