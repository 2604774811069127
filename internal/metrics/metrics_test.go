package metrics

import (
	"math"
	"reflect"
	"testing"
)

// TestExtractFeaturesNormalizes verifies case folding, whitespace collapsing,
// and deduplication.
func TestExtractFeaturesNormalizes(t *testing.T) {
	got := ExtractFeatures(`{"features":["A","a"," a "]}`)
	want := NewFeatureSet("a")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestExtractFeaturesCollapsesInnerWhitespace verifies multi-word entries.
func TestExtractFeaturesCollapsesInnerWhitespace(t *testing.T) {
	got := ExtractFeatures(`{"features":["Flow   Bytes", "flow bytes"]}`)
	want := NewFeatureSet("flow bytes")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestExtractFeaturesMalformedInput verifies degraded inputs yield empty sets.
func TestExtractFeaturesMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"not json", "not json at all"},
		{"empty", ""},
		{"array payload", `[1,2,3]`},
		{"missing key", `{"other":["a"]}`},
		{"non-list features", `{"features":"a"}`},
		{"blank entries", `{"features":["", "   "]}`},
		{"nested entries", `{"features":[["a"],{"b":1}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractFeatures(c.text)
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty set, got %v", got)
			}
		})
	}
}

// TestExtractFeaturesScalars verifies numeric and boolean entries are kept.
func TestExtractFeaturesScalars(t *testing.T) {
	got := ExtractFeatures(`{"features":["entropy", 3, true]}`)
	want := NewFeatureSet("entropy", "3", "true")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestExtractDecision verifies verdict parsing and its failure modes.
func TestExtractDecision(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Decision
	}{
		{"lowercase approve", `{"decision":"approve"}`, DecisionApprove},
		{"padded revise", `{"decision":"  Revise "}`, DecisionRevise},
		{"empty object", `{}`, DecisionUndefined},
		{"not json", `not json`, DecisionUndefined},
		{"non-string decision", `{"decision":1}`, DecisionUndefined},
		{"unknown verdict", `{"decision":"MAYBE"}`, DecisionUndefined},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractDecision(c.text); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

// TestJaccard verifies the score and its undefined case.
func TestJaccard(t *testing.T) {
	if _, ok := Jaccard(FeatureSet{}, FeatureSet{}); ok {
		t.Fatalf("expected both-empty Jaccard to be undefined")
	}
	if got, ok := Jaccard(NewFeatureSet("a"), NewFeatureSet("a")); !ok || got != 1.0 {
		t.Fatalf("expected 1.0, got %v (ok=%v)", got, ok)
	}
	if got, ok := Jaccard(NewFeatureSet("a"), NewFeatureSet("b")); !ok || got != 0.0 {
		t.Fatalf("expected 0.0, got %v (ok=%v)", got, ok)
	}
	if got, ok := Jaccard(NewFeatureSet("a", "b"), NewFeatureSet("b", "c")); !ok || math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("expected 1/3, got %v (ok=%v)", got, ok)
	}
	if got, ok := Jaccard(NewFeatureSet("a"), FeatureSet{}); !ok || got != 0.0 {
		t.Fatalf("expected one-empty Jaccard to be 0, got %v (ok=%v)", got, ok)
	}
}

// TestCanonicalOverlap verifies token filtering against the fixed vocabulary.
func TestCanonicalOverlap(t *testing.T) {
	got, ok := CanonicalOverlap("entropy tls flow", "entropy http flow")
	if !ok {
		t.Fatalf("expected defined overlap")
	}
	// Intersection {entropy}, union {entropy, tls, http}; "flow" is not in
	// the vocabulary ("flow_count" is).
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("expected 1/3, got %v", got)
	}
}

// TestCanonicalOverlapUndefined verifies texts with no canonical tokens.
func TestCanonicalOverlapUndefined(t *testing.T) {
	if _, ok := CanonicalOverlap("nothing relevant", "still nothing"); ok {
		t.Fatalf("expected undefined overlap for vocabulary-free texts")
	}
}

// TestCanonicalOverlapCompoundTokens verifies underscore tokens match whole.
func TestCanonicalOverlapCompoundTokens(t *testing.T) {
	got, ok := CanonicalOverlap("src_ip dst_ip payload_len", "SRC_IP rate")
	if !ok {
		t.Fatalf("expected defined overlap")
	}
	if math.Abs(got-1.0/4.0) > 1e-9 {
		t.Fatalf("expected 1/4, got %v", got)
	}
}

// TestUnionDifference verifies the set helpers used for revision depth.
func TestUnionDifference(t *testing.T) {
	a := NewFeatureSet("a", "b")
	b := NewFeatureSet("b", "c")
	if got := Union(a, b); len(got) != 3 {
		t.Fatalf("expected union of size 3, got %v", got)
	}
	diff := Difference(b, a)
	if !reflect.DeepEqual(diff, NewFeatureSet("c")) {
		t.Fatalf("expected {c}, got %v", diff)
	}
}
