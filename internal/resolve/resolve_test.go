package resolve

import "testing"

func TestNumber_FallbackOrder(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		paths    []string
		fallback float64
		want     float64
	}{
		{
			name:  "first candidate wins",
			doc:   `{"a": {"b": 5}}`,
			paths: []string{"a.b", "a.c"},
			want:  5,
		},
		{
			name:  "second candidate when first missing",
			doc:   `{"a": {"c": 7}}`,
			paths: []string{"a.b", "a.c"},
			want:  7,
		},
		{
			name:     "fallback when nothing resolves",
			doc:      `{}`,
			paths:    []string{"a.b"},
			fallback: 42,
			want:     42,
		},
		{
			name:  "numeric string coerces",
			doc:   `{"score": "42"}`,
			paths: []string{"score"},
			want:  42,
		},
		{
			name:     "non-numeric string falls through",
			doc:      `{"x": "n/a"}`,
			paths:    []string{"x", "y"},
			fallback: 0,
			want:     0,
		},
		{
			name:     "null falls through",
			doc:      `{"x": null, "y": 3}`,
			paths:    []string{"x", "y"},
			fallback: 0,
			want:     3,
		},
		{
			name:     "object value falls through",
			doc:      `{"x": {"nested": 1}, "y": 9}`,
			paths:    []string{"x", "y"},
			fallback: 0,
			want:     9,
		},
		{
			name:     "boolean falls through",
			doc:      `{"x": true}`,
			paths:    []string{"x"},
			fallback: 11,
			want:     11,
		},
		{
			name:  "array length via count path",
			doc:   `{"claims": [1, 2, 3]}`,
			paths: []string{"claims_checked", "claims.#"},
			want:  3,
		},
		{
			name:  "deep nested path",
			doc:   `{"professional_info": {"years_experience": 12}}`,
			paths: []string{"professional_info.years_experience"},
			want:  12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number([]byte(tt.doc), tt.paths, tt.fallback)
			if got != tt.want {
				t.Errorf("Number(%s, %v, %v) = %v, want %v", tt.doc, tt.paths, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestNumber_NilDocument(t *testing.T) {
	if got := Number(nil, []string{"a"}, 13); got != 13 {
		t.Errorf("expected fallback 13 for nil doc, got %v", got)
	}
}

func TestLookup_ReportsMiss(t *testing.T) {
	if _, ok := Lookup([]byte(`{"a": "nope"}`), []string{"a"}); ok {
		t.Error("expected miss for non-numeric string")
	}
	if n, ok := Lookup([]byte(`{"a": 0}`), []string{"a"}); !ok || n != 0 {
		t.Errorf("expected hit with 0, got (%v, %v)", n, ok)
	}
}
