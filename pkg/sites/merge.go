package sites

import "strings"

// MergeObserved folds observed hierarchy nodes into a canonical country
// subtree. Observed nodes come from untrusted extraction and often report
// places at the wrong depth ("Country → City" when the canonical tree has
// "Country → Region → City"); the fold finds the existing node wherever it
// lives and never duplicates it.
//
// Only observed nodes that are themselves country-typed and name the given
// country (case-insensitively) participate. When none do, the canonical node
// is returned as-is with no copy made. Otherwise the merge operates on a
// deep copy; the canonical input is never mutated. Merging the same observed
// nodes twice is idempotent.
func MergeObserved(canonical *Site, observed []*Site, country string) *Site {
	var matched []*Site
	for _, node := range observed {
		if node != nil && node.Type == SiteTypeCountry && strings.EqualFold(node.Name, country) {
			matched = append(matched, node)
		}
	}
	if len(matched) == 0 {
		return canonical
	}

	merged := canonical.Copy()
	for _, node := range matched {
		foldChildren(merged, node.Children)
	}
	return merged
}

// foldChildren merges candidate children into parent. For each candidate:
// a same-named direct child of parent absorbs the candidate's children; with
// no direct match, the whole subtree under parent is searched (pre-order
// depth-first, first match wins) so an under-specified observation folds
// into the node at its canonical depth; only a candidate with no match
// anywhere in the subtree is appended as a new direct child.
func foldChildren(parent *Site, candidates []*Site) {
	for _, candidate := range candidates {
		if candidate == nil || strings.TrimSpace(candidate.Name) == "" {
			continue
		}
		if existing := parent.Child(candidate.Name); existing != nil {
			foldChildren(existing, candidate.Children)
			continue
		}
		if existing := parent.Find(candidate.Name); existing != nil {
			foldChildren(existing, candidate.Children)
			continue
		}
		parent.Children = append(parent.Children, candidate.Copy())
	}
}
