// Package sites models the canonical world location hierarchy and the
// recursive merge that folds externally observed, possibly under-specified
// place trees into it without creating duplicate nodes.
package sites

import "strings"

// SiteType tags a site with its depth class in the geographic hierarchy.
type SiteType string

// Site types, roughly outermost to innermost.
const (
	SiteTypeCountry      SiteType = "country"
	SiteTypeRegion       SiteType = "region"
	SiteTypeCity         SiteType = "city"
	SiteTypeNeighborhood SiteType = "neighborhood"
	SiteTypeLandmark     SiteType = "landmark"
)

// Site is a named node of a geographic hierarchy. Root nodes of the
// canonical forest are always country-typed. No two children of the same
// parent share a case-insensitive name; the merge preserves this.
type Site struct {
	Name     string   `json:"name" yaml:"name"`
	Type     SiteType `json:"site_type" yaml:"site_type"`
	Children []*Site  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Copy returns a structural deep copy of the subtree rooted at s.
func (s *Site) Copy() *Site {
	if s == nil {
		return nil
	}
	out := &Site{Name: s.Name, Type: s.Type}
	if len(s.Children) > 0 {
		out.Children = make([]*Site, len(s.Children))
		for i, child := range s.Children {
			out.Children[i] = child.Copy()
		}
	}
	return out
}

// Equal reports deep structural equality, including child order.
func (s *Site) Equal(other *Site) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Name != other.Name || s.Type != other.Type || len(s.Children) != len(other.Children) {
		return false
	}
	for i, child := range s.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Child returns the direct child whose name matches case-insensitively,
// or nil.
func (s *Site) Child(name string) *Site {
	for _, child := range s.Children {
		if strings.EqualFold(child.Name, name) {
			return child
		}
	}
	return nil
}

// Find searches the subtree rooted at s, including s itself, for a node
// whose name matches case-insensitively. Traversal is pre-order depth-first
// and the first match wins.
func (s *Site) Find(name string) *Site {
	if s == nil {
		return nil
	}
	if strings.EqualFold(s.Name, name) {
		return s
	}
	for _, child := range s.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindCountry searches a forest for a country node with the given name,
// case-insensitively, at any depth. The canonical dataset may nest a country
// under a larger grouping, so the search is not limited to roots.
func FindCountry(forest []*Site, name string) *Site {
	for _, root := range forest {
		if found := findCountry(root, name); found != nil {
			return found
		}
	}
	return nil
}

func findCountry(s *Site, name string) *Site {
	if s == nil {
		return nil
	}
	if s.Type == SiteTypeCountry && strings.EqualFold(s.Name, name) {
		return s
	}
	for _, child := range s.Children {
		if found := findCountry(child, name); found != nil {
			return found
		}
	}
	return nil
}
