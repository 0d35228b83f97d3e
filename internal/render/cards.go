// Package render builds the presentation of an analysis: the component
// cards view-model and the JSON/Markdown reports.
package render

import (
	"encoding/json"
	"math"

	"github.com/veridex/trustlens/internal/model"
	"github.com/veridex/trustlens/internal/resolve"
	"github.com/veridex/trustlens/internal/score"
)

var cardTitles = map[string]string{
	model.ComponentSourceCredibility:    "Source Credibility",
	model.ComponentAuthorAnalyzer:       "Author Credibility",
	model.ComponentBiasDetector:         "Bias & Objectivity",
	model.ComponentFactChecker:          "Fact Checking",
	model.ComponentTransparencyAnalyzer: "Transparency",
	model.ComponentManipulationDetector: "Manipulation",
	model.ComponentContentAnalyzer:      "Content Quality",
}

// BuildCards produces one view-model card per canonical component, in
// display order. Components without data render as absent cards rather
// than zero scores.
func BuildCards(c model.Components) []model.Card {
	keys := model.ComponentKeys()
	cards := make([]model.Card, 0, len(keys))
	for _, key := range keys {
		card := model.Card{
			Key:     key,
			Title:   cardTitles[key],
			Present: !c.Empty(key),
		}
		if card.Present {
			card.Score = clampInt(int(math.Round(componentScore(key, c[key]))))
			card.Label = score.Label(card.Score)
		}
		cards = append(cards, card)
	}
	return cards
}

// componentScore resolves the headline score for one component, using
// the same derivations the aggregator applies.
func componentScore(key string, raw json.RawMessage) float64 {
	switch key {
	case model.ComponentSourceCredibility, model.ComponentAuthorAnalyzer:
		return resolve.Number(raw, []string{"credibility_score", "score"}, 0)
	case model.ComponentBiasDetector:
		return score.Objectivity(raw)
	case model.ComponentFactChecker:
		v, ok := score.FactAccuracy(raw)
		if !ok {
			return 0
		}
		return v
	case model.ComponentTransparencyAnalyzer:
		return resolve.Number(raw, []string{"transparency_score", "score"}, 0)
	case model.ComponentManipulationDetector:
		// Displayed as integrity: high manipulation means a low card score.
		return 100 - resolve.Number(raw, []string{"manipulation_score", "persuasion_score", "score"}, 0)
	case model.ComponentContentAnalyzer:
		return resolve.Number(raw, []string{"quality_score", "content_score", "score"}, 0)
	}
	return 0
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
