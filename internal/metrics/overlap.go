package metrics

import (
	"regexp"
	"strings"
)

// canonicalTags is the fixed vocabulary of network-flow concept names used to
// score topical overlap independent of exact feature-name matching.
var canonicalTags = map[string]struct{}{
	"duration": {}, "bytes": {}, "packets": {}, "src_ip": {}, "dst_ip": {},
	"src_port": {}, "dst_port": {}, "protocol": {}, "flags": {}, "entropy": {},
	"dns": {}, "http": {}, "tls": {}, "ja3": {}, "user_agent": {},
	"flow_count": {}, "rate": {}, "iat": {}, "window": {}, "payload_len": {},
}

var wordPattern = regexp.MustCompile(`[a-z0-9_]+`)

// Jaccard computes |a∩b| / |a∪b|. The score is undefined (ok=false) iff both
// sets are empty; an empty union otherwise scores 0 defensively.
func Jaccard(a, b FeatureSet) (float64, bool) {
	if len(a) == 0 && len(b) == 0 {
		return 0.0, false
	}
	intersection := 0
	for m := range a {
		if _, ok := b[m]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0, true
	}
	return float64(intersection) / float64(union), true
}

// CanonicalOverlap tokenizes both texts, keeps only tokens from the canonical
// vocabulary, and returns the Jaccard score of the filtered token sets.
func CanonicalOverlap(textA, textB string) (float64, bool) {
	return Jaccard(canonicalTokens(textA), canonicalTokens(textB))
}

func canonicalTokens(text string) FeatureSet {
	set := FeatureSet{}
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := canonicalTags[token]; ok {
			set[token] = struct{}{}
		}
	}
	return set
}
