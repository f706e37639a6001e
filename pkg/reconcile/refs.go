package reconcile

// RefCategory names a class of provenance reference. Each category is merged
// independently of the others.
type RefCategory string

// Provenance reference categories.
const (
	// RefEmails links an entity to the source emails that contributed to it.
	RefEmails RefCategory = "emails"
	// RefRecommendations links an entity to extracted recommendations.
	RefRecommendations RefCategory = "recommendations"
)

// RefSet maps reference categories to the opaque identifiers of the source
// documents that contributed to an entity. Identifiers are unique within a
// category; ordering carries no meaning but unions are deterministic.
type RefSet map[RefCategory][]string

// Copy returns an independent copy of the set. A nil set copies to nil.
func (s RefSet) Copy() RefSet {
	if s == nil {
		return nil
	}
	out := make(RefSet, len(s))
	for category, ids := range s {
		out[category] = append([]string(nil), ids...)
	}
	return out
}

// Has reports whether the category already contains the identifier.
// Identifier equality is case-sensitive.
func (s RefSet) Has(category RefCategory, id string) bool {
	for _, existing := range s[category] {
		if existing == id {
			return true
		}
	}
	return false
}

// Add appends the identifiers to the category, skipping duplicates.
func (s RefSet) Add(category RefCategory, ids ...string) {
	for _, id := range ids {
		if id == "" || s.Has(category, id) {
			continue
		}
		s[category] = append(s[category], id)
	}
}

// Union merges two reference sets. For each category independently the
// result is the deduplicated union of both sides, first-seen order, with a
// missing category on either side treated as empty. Neither input is
// modified.
func (s RefSet) Union(other RefSet) RefSet {
	if len(s) == 0 && len(other) == 0 {
		return RefSet{}
	}
	out := make(RefSet, len(s)+len(other))
	for category, ids := range s {
		out.Add(category, ids...)
	}
	for category, ids := range other {
		out.Add(category, ids...)
	}
	return out
}
