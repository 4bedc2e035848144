// Package xmlquery parses XML into a small element tree and selects
// descendants with compact tag paths.
//
// Paths are not XPath: a path is a list of segments, each segment one or
// more alternative tag names separated by "|". A leading "+" on a name marks
// matches of that name as collected. Every match is descended into for the
// remaining segments; only collected matches are reported.
//
//	xmlquery.MustCompile("+model", "resources", "+object")
//
// Names are compared by local name; namespace prefixes and URIs are ignored.
package xmlquery

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/tmfkit/pkg/encoding"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("xml syntax error")

// SyntaxError reports malformed input.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

// Error returns the error string.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("xml syntax error on line %d: %s", e.Line, e.Msg)
	}
	return "xml syntax error: " + e.Msg
}

// Unwrap returns the decoder error, if any.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Attr is an attribute of an element.
type Attr struct {
	Name  string
	Value string
}

// Node is an element. The node returned by Parse is a document node with
// an empty Name whose children are the top-level elements.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Attr returns the value of the named attribute.
// Unprefixed attributes are preferred over prefixed ones with the same local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Child returns the first child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Root returns the first top-level element of a document node.
func (n *Node) Root() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Parse reads an XML document into a tree.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = encoding.CharsetReader

	doc := &Node{}
	stack := []*Node{doc}
	text := []*strings.Builder{{}}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newSyntaxError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 1 && len(doc.Children) > 0 {
				line, _ := dec.InputPos()
				return nil, &SyntaxError{Line: line, Msg: "multiple root elements"}
			}
			node := &Node{Name: t.Name.Local}
			node.Attrs = collectAttrs(t.Attr)
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			top := len(stack) - 1
			stack[top].Text = strings.TrimSpace(text[top].String())
			stack = stack[:top]
			text = text[:top]
		case xml.CharData:
			text[len(text)-1].Write(t)
		}
	}

	if len(doc.Children) == 0 {
		return nil, &SyntaxError{Msg: "no root element"}
	}
	return doc, nil
}

func collectAttrs(attrs []xml.Attr) []Attr {
	out := make([]Attr, 0, len(attrs))
	// Unprefixed attributes first so Attr prefers them.
	for _, a := range attrs {
		if a.Name.Space == "" {
			out = append(out, Attr{Name: a.Name.Local, Value: a.Value})
		}
	}
	for _, a := range attrs {
		if a.Name.Space != "" && a.Name.Space != "xmlns" {
			out = append(out, Attr{Name: a.Name.Local, Value: a.Value})
		}
	}
	return out
}

func newSyntaxError(err error) *SyntaxError {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{Line: se.Line, Msg: se.Msg, Err: err}
	}
	return &SyntaxError{Msg: err.Error(), Err: err}
}
