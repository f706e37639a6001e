package sites

import "strings"

// FlatSite is a breadcrumb-path projection of a hierarchy node, used for
// display and selection. It is recomputed on demand and never persisted.
type FlatSite struct {
	Name string
	Type SiteType
	// Path holds the ancestor chain from the root down to and including
	// this site.
	Path []string
}

// Breadcrumb renders the site innermost-first, e.g. "Jaffa, Tel Aviv, Israel".
func (f FlatSite) Breadcrumb() string {
	parts := make([]string, len(f.Path))
	for i, name := range f.Path {
		parts[len(f.Path)-1-i] = name
	}
	return strings.Join(parts, ", ")
}

// Flatten projects the subtree rooted at root into breadcrumb rows,
// pre-order.
func Flatten(root *Site) []FlatSite {
	if root == nil {
		return nil
	}
	var out []FlatSite
	flatten(root, nil, &out)
	return out
}

// FlattenForest projects every tree of the forest.
func FlattenForest(forest []*Site) []FlatSite {
	var out []FlatSite
	for _, root := range forest {
		out = append(out, Flatten(root)...)
	}
	return out
}

func flatten(s *Site, ancestors []string, out *[]FlatSite) {
	path := make([]string, 0, len(ancestors)+1)
	path = append(path, ancestors...)
	path = append(path, s.Name)

	*out = append(*out, FlatSite{Name: s.Name, Type: s.Type, Path: path})
	for _, child := range s.Children {
		flatten(child, path, out)
	}
}
