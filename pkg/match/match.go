// Package match provides approximate equality over free-text names. It is
// used wherever a typed or extracted name must be matched against existing
// known names rather than by identifier: entity dedup before a merge, and
// picker/search flows in callers.
//
// Matching is case- and whitespace-insensitive containment. This is
// deliberately permissive (it catches "Hilton" against "Hilton Garden Inn")
// and deliberately not a token-set or edit-distance match; callers relying
// on it for deduplication accept the false-positive risk and must offer a
// manual override path to correct a wrong match.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalize trims surrounding whitespace and applies Unicode case folding.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Names reports whether two names refer to the same thing. Empty or absent
// names never match anything. Otherwise both are trimmed and case-folded and
// match when equal or when either contains the other.
func Names(a, b string) bool {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// First returns the first candidate matching the target name.
func First(target string, candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		if Names(target, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// All returns every candidate matching the target name, in input order.
func All(target string, candidates ...string) []string {
	matched := make([]string, 0)
	for _, candidate := range candidates {
		if Names(target, candidate) {
			matched = append(matched, candidate)
		}
	}
	return matched
}

// Any reports whether any candidate matches the target name.
func Any(target string, candidates ...string) bool {
	_, ok := First(target, candidates...)
	return ok
}
