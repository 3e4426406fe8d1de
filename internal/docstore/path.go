package docstore

import (
	"fmt"
	"strings"
)

// Path addresses a document or a collection in the tree. Segments alternate
// collection/id, so document paths have an even number of segments
// ("users/u1/plants/p1") and collection paths an odd number ("users/u1/plants").
type Path string

// NewPath joins segments into a Path. Empty segments and segments containing "/" are
// rejected.
func NewPath(segments ...string) (Path, error) {
	for _, s := range segments {
		if s == "" {
			return "", fmt.Errorf("path segment cannot be empty")
		}
		if strings.Contains(s, "/") {
			return "", fmt.Errorf("path segment %q cannot contain '/'", s)
		}
	}
	return Path(strings.Join(segments, "/")), nil
}

// MustPath is NewPath for segments known to be valid.
func MustPath(segments ...string) Path {
	p, err := NewPath(segments...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string { return string(p) }

// Segments splits the path.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), "/")
}

// IsDocument reports whether p addresses a document.
func (p Path) IsDocument() bool {
	n := len(p.Segments())
	return n > 0 && n%2 == 0
}

// Doc returns the document with id inside collection p.
func (p Path) Doc(id string) Path {
	return Path(string(p) + "/" + id)
}

// Collection returns the named sub-collection of document p.
func (p Path) Collection(name string) Path {
	return Path(string(p) + "/" + name)
}

// Parent returns the enclosing path (collection for a document, document for a
// sub-collection). The parent of a single segment path is "".
func (p Path) Parent() Path {
	i := strings.LastIndex(string(p), "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// ID returns the last segment.
func (p Path) ID() string {
	i := strings.LastIndex(string(p), "/")
	return string(p[i+1:])
}

// HasPrefix reports whether p is prefix or lies beneath it, matching whole segments.
func (p Path) HasPrefix(prefix Path) bool {
	if p == prefix {
		return true
	}
	return strings.HasPrefix(string(p), string(prefix)+"/")
}

// Rebase moves p from under old to under new. p must have old as prefix.
func (p Path) Rebase(old, new Path) (Path, error) {
	if !p.HasPrefix(old) {
		return "", fmt.Errorf("path %s is not under %s", p, old)
	}
	return new + p[len(old):], nil
}
