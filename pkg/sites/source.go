package sites

import (
	"context"
	"io/fs"

	"github.com/goccy/go-yaml"

	"github.com/waymarkhq/waymark/pkg/errors"
)

// document is the canonical hierarchy file shape: a single field holding the
// country-rooted trees.
type document struct {
	Sites []*Site `json:"sites" yaml:"sites"`
}

// DocumentSource reads the canonical forest from a YAML document on a
// filesystem. YAML is a superset of the JSON form the dataset is also
// published in, so both parse.
type DocumentSource struct {
	fsys fs.FS
	path string
}

// NewDocumentSource creates a source reading path from fsys.
func NewDocumentSource(fsys fs.FS, path string) *DocumentSource {
	return &DocumentSource{fsys: fsys, path: path}
}

// Load reads and parses the document. An empty or missing sites field yields
// an empty forest with no error; callers treat that as "fall back to manual
// entry".
func (s *DocumentSource) Load(ctx context.Context) ([]*Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", s.path, err)
	}
	return doc.Sites, nil
}
