// Package score aggregates normalized component analyses into a single
// 0-100 trust score.
package score

import (
	"math"

	"github.com/veridex/trustlens/internal/model"
	"github.com/veridex/trustlens/internal/resolve"
)

// Dimension weights. Fixed priors reflecting the assumed relative
// importance of each signal; renormalized over the dimensions that
// actually produced a score so failed analyses do not deflate the
// result. This is the single weight table in the codebase.
const (
	weightSource       = 0.25
	weightAuthor       = 0.20
	weightObjectivity  = 0.20
	weightFactAccuracy = 0.20
)

// Dimension names reported in TrustResult.
const (
	DimensionSourceCredibility = "source_credibility"
	DimensionAuthorCredibility = "author_credibility"
	DimensionObjectivity       = "objectivity"
	DimensionFactAccuracy      = "fact_accuracy"
)

// minDimensions is the floor below which the aggregate defers entirely
// to the backend-supplied score: a number built from a single signal
// would look more confident than it is.
const minDimensions = 2

var credibilityPaths = []string{"credibility_score", "score"}

type dimension struct {
	name   string
	weight float64
	value  float64
}

// Aggregate computes the trust score from the normalized components,
// falling back to serverScore when fewer than minDimensions components
// carry a usable signal. A component that is empty or has no resolvable
// score is skipped, never counted as zero. Pure and never fails.
func Aggregate(c model.Components, serverScore float64) model.TrustResult {
	var dims []dimension

	if !c.Empty(model.ComponentSourceCredibility) {
		if v, ok := resolve.Lookup(c[model.ComponentSourceCredibility], credibilityPaths); ok {
			dims = append(dims, dimension{DimensionSourceCredibility, weightSource, v})
		}
	}
	if !c.Empty(model.ComponentAuthorAnalyzer) {
		if v, ok := resolve.Lookup(c[model.ComponentAuthorAnalyzer], credibilityPaths); ok {
			dims = append(dims, dimension{DimensionAuthorCredibility, weightAuthor, v})
		}
	}
	if !c.Empty(model.ComponentBiasDetector) {
		dims = append(dims, dimension{DimensionObjectivity, weightObjectivity, Objectivity(c[model.ComponentBiasDetector])})
	}
	if !c.Empty(model.ComponentFactChecker) {
		if v, ok := FactAccuracy(c[model.ComponentFactChecker]); ok {
			dims = append(dims, dimension{DimensionFactAccuracy, weightFactAccuracy, v})
		}
	}

	if len(dims) < minDimensions {
		s := clamp(int(math.Round(serverScore)))
		return model.TrustResult{
			Score:             s,
			Label:             Label(s),
			UsedComponents:    []string{},
			MissingComponents: allDimensions(),
		}
	}

	var weightSum float64
	for _, d := range dims {
		weightSum += d.weight
	}

	var total float64
	used := make([]string, 0, len(dims))
	for _, d := range dims {
		total += d.value * (d.weight / weightSum)
		used = append(used, d.name)
	}

	s := clamp(int(math.Round(total)))
	return model.TrustResult{
		Score:             s,
		Label:             Label(s),
		UsedComponents:    used,
		MissingComponents: missingDimensions(used),
	}
}

// Objectivity derives the objectivity score from a bias analysis: the
// direct score when the backend provides one, otherwise the inverted
// bias score (high bias means low objectivity).
func Objectivity(raw []byte) float64 {
	if v, ok := resolve.Lookup(raw, []string{"objectivity_score"}); ok {
		return v
	}
	return 100 - resolve.Number(raw, []string{"overall_bias_score", "bias_score"}, 0)
}

// FactAccuracy derives the fact accuracy percentage from a fact check
// analysis. Reports false when no claims were checked: no claims means
// no signal, not a zero score.
func FactAccuracy(raw []byte) (float64, bool) {
	checked := resolve.Number(raw, []string{"claims_checked", "total_claims", "claims.#"}, 0)
	if checked <= 0 {
		return 0, false
	}
	verified := resolve.Number(raw, []string{"verified_count", "verified_claims", "verified"}, 0)
	return verified / checked * 100, true
}

func allDimensions() []string {
	return []string{
		DimensionSourceCredibility,
		DimensionAuthorCredibility,
		DimensionObjectivity,
		DimensionFactAccuracy,
	}
}

func missingDimensions(used []string) []string {
	seen := make(map[string]bool, len(used))
	for _, name := range used {
		seen[name] = true
	}
	missing := make([]string, 0, 4)
	for _, name := range allDimensions() {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
