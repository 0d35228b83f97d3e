// Package resolve looks up numeric fields across the inconsistently
// shaped payloads produced by different backend versions. Callers
// declare an ordered list of candidate paths instead of chaining
// field-name guesses at every use site.
package resolve

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Lookup walks candidate paths in priority order and returns the first
// value that resolves to a finite number. Paths are dot-separated and
// may reach into nested objects (e.g. "professional_info.years_experience")
// or count array elements (e.g. "claims.#").
//
// A JSON number or a numeric string (such as "42") satisfies a
// candidate; null, missing keys, non-numeric strings, booleans, objects
// and arrays fall through to the next candidate.
func Lookup(doc []byte, paths []string) (float64, bool) {
	if len(doc) == 0 {
		return 0, false
	}
	for _, path := range paths {
		if n, ok := number(gjson.GetBytes(doc, path)); ok {
			return n, true
		}
	}
	return 0, false
}

// Number is Lookup with a fallback: it always returns a number and
// never panics, whatever the document looks like.
func Number(doc []byte, paths []string, fallback float64) float64 {
	if n, ok := Lookup(doc, paths); ok {
		return n
	}
	return fallback
}

func number(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return v.Num, true
	case gjson.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
