// Package metrics reduces raw agent output into structured agreement and
// approval signals. Every function is total: malformed input degrades to an
// empty set or an undefined score, never an error.
package metrics

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// FeatureSet is a set of normalized feature names extracted from one round
// of agent output.
type FeatureSet map[string]struct{}

// NewFeatureSet builds a set from already-normalized members, mostly for tests.
func NewFeatureSet(members ...string) FeatureSet {
	set := make(FeatureSet, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set
}

// ExtractFeatures parses text as a JSON object with a list-valued "features"
// key and returns the scalar entries as a normalized set: lowercased,
// whitespace-collapsed, blanks dropped. Any parse failure, non-object
// payload, or missing/non-list key yields an empty set.
func ExtractFeatures(text string) FeatureSet {
	set := FeatureSet{}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return set
	}
	raw, ok := payload["features"].([]any)
	if !ok {
		return set
	}
	for _, entry := range raw {
		name, ok := scalarString(entry)
		if !ok {
			continue
		}
		name = normalize(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// scalarString renders string, numeric, and boolean JSON values; objects and
// arrays are not feature names.
func scalarString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(value), true
	default:
		return "", false
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Union returns the union of two sets.
func Union(a, b FeatureSet) FeatureSet {
	out := make(FeatureSet, len(a)+len(b))
	for m := range a {
		out[m] = struct{}{}
	}
	for m := range b {
		out[m] = struct{}{}
	}
	return out
}

// Difference returns the members of a that are not in b.
func Difference(a, b FeatureSet) FeatureSet {
	out := FeatureSet{}
	for m := range a {
		if _, ok := b[m]; !ok {
			out[m] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s FeatureSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
