package model

import (
	"encoding/json"
	"time"
)

// Canonical component keys. Every backend version labels its analysis
// sections differently; the normalizer maps them all onto these.
const (
	ComponentSourceCredibility    = "source_credibility"
	ComponentAuthorAnalyzer       = "author_analyzer"
	ComponentBiasDetector         = "bias_detector"
	ComponentFactChecker          = "fact_checker"
	ComponentTransparencyAnalyzer = "transparency_analyzer"
	ComponentManipulationDetector = "manipulation_detector"
	ComponentContentAnalyzer      = "content_analyzer"
)

// componentKeys is the fixed display/iteration order.
var componentKeys = []string{
	ComponentSourceCredibility,
	ComponentAuthorAnalyzer,
	ComponentBiasDetector,
	ComponentFactChecker,
	ComponentTransparencyAnalyzer,
	ComponentManipulationDetector,
	ComponentContentAnalyzer,
}

// ComponentKeys returns the canonical component keys in display order.
func ComponentKeys() []string {
	keys := make([]string, len(componentKeys))
	copy(keys, componentKeys)
	return keys
}

// Components maps every canonical component key to its raw analysis
// object. All keys are always present; a component with no backend data
// maps to an empty JSON object, so consumers only ever check emptiness,
// never existence.
type Components map[string]json.RawMessage

// NewComponents returns a Components map with all canonical keys set to
// an empty object.
func NewComponents() Components {
	c := make(Components, len(componentKeys))
	for _, key := range componentKeys {
		c[key] = json.RawMessage("{}")
	}
	return c
}

// Empty reports whether the component carries no data. A malformed or
// non-object value counts as empty.
func (c Components) Empty(key string) bool {
	raw, ok := c[key]
	if !ok {
		return true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return true
	}
	return len(fields) == 0
}

// TrustResult is the aggregated trust score for one analysis.
type TrustResult struct {
	Score             int      `json:"score"`       // 0-100
	Label             string   `json:"label"`       // display label for the score band
	UsedComponents    []string `json:"used_components"`
	MissingComponents []string `json:"missing_components"`
}

// Card is the view-model for one component panel. It replaces the
// per-component renderers the dashboard used to duplicate.
type Card struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Score   int    `json:"score"`
	Label   string `json:"label,omitempty"`
	Present bool   `json:"present"`
}

// Summary is an optional LLM-generated plain-language summary.
// It never affects scoring.
type Summary struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Text     string `json:"text"`
}

// Analysis is the complete result of analyzing one article. It is built
// fresh for every backend response and never mutated afterwards.
type Analysis struct {
	Subject    string          `json:"subject"`
	SourceURL  string          `json:"source_url,omitempty"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
	Raw        json.RawMessage `json:"raw,omitempty"` // backend payload as received
	Components Components      `json:"components"`
	Trust      TrustResult     `json:"trust"`
	Cards      []Card          `json:"cards"`
	Summary    *Summary        `json:"summary,omitempty"`
}
