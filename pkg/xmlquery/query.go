package xmlquery

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadPath is returned by Compile for an empty segment or name.
var ErrBadPath = errors.New("invalid query path")

// Alt is one alternative tag name of a segment.
type Alt struct {
	Name    string
	Collect bool
}

// Segment matches a child element whose name is one of its alternatives.
type Segment []Alt

// Path is a compiled query path.
type Path []Segment

// Func is called for each collected match with the matched tag name.
// Returning an error stops the walk.
type Func func(tag string, n *Node) error

// Compile parses path segments such as "+model", "resources" or "+mesh|+components".
func Compile(segments ...string) (Path, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrBadPath)
	}

	path := make(Path, 0, len(segments))
	for i, s := range segments {
		var seg Segment
		for _, key := range strings.Split(s, "|") {
			key = strings.TrimSpace(key)
			collect := strings.HasPrefix(key, "+")
			key = strings.TrimPrefix(key, "+")
			if key == "" {
				return nil, fmt.Errorf("%w: empty name in segment %d %q", ErrBadPath, i, s)
			}
			seg = seg.add(key, collect)
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(segments ...string) Path {
	p, err := Compile(segments...)
	if err != nil {
		panic(err)
	}
	return p
}

// add merges duplicate names; a name is collected if any spelling collects it.
func (s Segment) add(name string, collect bool) Segment {
	for i := range s {
		if s[i].Name == name {
			s[i].Collect = s[i].Collect || collect
			return s
		}
	}
	return append(s, Alt{Name: name, Collect: collect})
}

func (s Segment) match(name string) (Alt, bool) {
	for _, a := range s {
		if a.Name == name {
			return a, true
		}
	}
	return Alt{}, false
}

// String returns the path in its compact form, segments joined by "/".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		names := make([]string, len(seg))
		for j, a := range seg {
			if a.Collect {
				names[j] = "+" + a.Name
			} else {
				names[j] = a.Name
			}
		}
		parts[i] = strings.Join(names, "|")
	}
	return strings.Join(parts, "/")
}

// Query walks the children of node depth-first in document order.
// Children matching the first segment are reported to fn when collected,
// then searched with the rest of the path.
func Query(node *Node, path Path, fn Func) error {
	if node == nil || len(path) == 0 {
		return nil
	}

	seg := path[0]
	for _, child := range node.Children {
		alt, ok := seg.match(child.Name)
		if !ok {
			continue
		}
		if alt.Collect {
			if err := fn(child.Name, child); err != nil {
				return err
			}
		}
		if len(path) > 1 {
			if err := Query(child, path[1:], fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Collect returns every collected match of path under node, in walk order.
func Collect(node *Node, path Path) []*Node {
	var out []*Node
	_ = Query(node, path, func(_ string, n *Node) error {
		out = append(out, n)
		return nil
	})
	return out
}
