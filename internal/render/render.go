package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/veridex/trustlens/internal/model"
)

// Renderer writes analysis reports.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full analysis as indented JSON.
func (r *Renderer) RenderJSON(a *model.Analysis, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report.
func (r *Renderer) RenderMarkdown(a *model.Analysis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create Markdown report: %w", err)
	}
	defer f.Close()
	return r.WriteMarkdown(f, a)
}

// WriteMarkdown renders the Markdown report to w.
func (r *Renderer) WriteMarkdown(w io.Writer, a *model.Analysis) error {
	md := markdown.NewMarkdown(w)

	md.H1("Trust Report: " + a.Subject)
	md.PlainText("")

	rows := [][]string{
		{"Trust Score", fmt.Sprintf("%d / 100 (%s)", a.Trust.Score, a.Trust.Label)},
		{"Analyzed", a.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if a.SourceURL != "" {
		rows = append(rows, []string{"Source", a.SourceURL})
	}
	if len(a.Trust.UsedComponents) > 0 {
		rows = append(rows, []string{"Signals", strings.Join(a.Trust.UsedComponents, ", ")})
	} else {
		rows = append(rows, []string{"Signals", "backend score (too few components)"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Components")
	componentRows := make([][]string, 0, len(a.Cards))
	for _, card := range a.Cards {
		if !card.Present {
			componentRows = append(componentRows, []string{card.Title, "—", "no data"})
			continue
		}
		componentRows = append(componentRows, []string{card.Title, strconv.Itoa(card.Score), card.Label})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Component", "Score", "Label"},
		Rows:   componentRows,
	})

	if a.Summary != nil && a.Summary.Text != "" {
		md.PlainText("")
		md.H2("Summary")
		md.PlainText(a.Summary.Text)
	}

	if r.includeFooter {
		md.PlainText("")
		md.PlainText("---")
		md.PlainText("Generated by trustlens. Scores summarize backend analyses; they are not a verdict on truth.")
	}

	return md.Build()
}

// RenderSummary prints a short result overview to stdout.
func (r *Renderer) RenderSummary(a *model.Analysis) {
	fmt.Printf("\n%s\n", a.Subject)
	fmt.Printf("Trust score: %d/100 (%s)\n", a.Trust.Score, a.Trust.Label)
	for _, card := range a.Cards {
		if !card.Present {
			fmt.Printf("  %-20s no data\n", card.Title)
			continue
		}
		fmt.Printf("  %-20s %3d (%s)\n", card.Title, card.Score, card.Label)
	}
}
