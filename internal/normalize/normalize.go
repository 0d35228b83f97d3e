// Package normalize maps raw backend payloads, whose analysis sections
// appear under any of several historical key names, onto the fixed set
// of canonical component keys.
package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/veridex/trustlens/internal/model"
	"github.com/veridex/trustlens/internal/resolve"
)

// serviceAliases declares, per canonical key, the payload keys
// historical backend versions used for that component. Probed in order,
// most specific/modern name first; the first present non-null value wins.
var serviceAliases = []struct {
	key     string
	aliases []string
}{
	{model.ComponentSourceCredibility, []string{"source_credibility", "analysis.source_credibility"}},
	{model.ComponentAuthorAnalyzer, []string{"author_analyzer", "author_analysis"}},
	{model.ComponentBiasDetector, []string{"bias_detector", "bias_analysis", "bias"}},
	{model.ComponentFactChecker, []string{"fact_checker", "fact_checks"}},
	{model.ComponentTransparencyAnalyzer, []string{"transparency_analyzer", "transparency_analysis"}},
	{model.ComponentManipulationDetector, []string{"manipulation_detector", "manipulation_analysis", "persuasion_analysis"}},
	{model.ComponentContentAnalyzer, []string{"content_analyzer", "content_analysis"}},
}

// trustScorePaths locates the backend-supplied overall score.
var trustScorePaths = []string{"trust_score", "analysis.trust_score"}

// Payload maps a raw backend response onto the canonical component
// keys. Every canonical key is present in the result; components with
// no data map to an empty object. The input is never modified.
//
// An explicitly empty alias value ({}) counts as present and stops the
// probe; only null or missing keys fall through to the next alias.
func Payload(raw []byte) model.Components {
	out := model.NewComponents()
	for _, svc := range serviceAliases {
		for _, alias := range svc.aliases {
			v := gjson.GetBytes(raw, alias)
			if !v.Exists() || v.Type == gjson.Null {
				continue
			}
			out[svc.key] = unwrap(v)
			break
		}
	}
	return out
}

// unwrap strips the {success, data} envelope some backend versions put
// around a component. An explicit success=false discards the component
// entirely: a failure signal from the producer overrides partial data.
// Values that are not objects carry no component fields and normalize
// to an empty object.
func unwrap(v gjson.Result) json.RawMessage {
	if !v.IsObject() {
		return json.RawMessage("{}")
	}
	if v.Get("success").Type == gjson.False {
		return json.RawMessage("{}")
	}
	if data := v.Get("data"); data.IsObject() {
		return json.RawMessage(data.Raw)
	}
	return json.RawMessage(v.Raw)
}

// ServerScore extracts the backend-supplied trust score, 0 when absent.
// The aggregator falls back to it when too few components carry a
// usable signal.
func ServerScore(raw []byte) float64 {
	return resolve.Number(raw, trustScorePaths, 0)
}
