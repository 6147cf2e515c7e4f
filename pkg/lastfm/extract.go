package lastfm

import (
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Node is a read-only view of one element of a parsed response.
//
// Lookups come in two flavours. Extract, ExtractAll and NodesNamed search
// every descendant and pick matches by occurrence index, which is how most
// list responses are read. Child, ChildText and Path only look at direct
// children and should be used whenever the same field name appears at
// more than one depth (a <name> for an album and a <name> inside its
// <artist>, for example).
type Node struct {
	x *xmlquery.Node
}

// ParseDocument parses an XML document and returns its root element.
func ParseDocument(r io.Reader) (Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return Node{}, err
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return Node{x: c}, nil
		}
	}
	return Node{}, &NotFoundError{Field: "root element"}
}

// ParseString is ParseDocument for an in-memory document.
func ParseString(s string) (Node, error) {
	return ParseDocument(strings.NewReader(s))
}

// IsZero reports whether n refers to no element.
func (n Node) IsZero() bool {
	return n.x == nil
}

// Name returns the element's local name.
func (n Node) Name() string {
	if n.x == nil {
		return ""
	}
	return n.x.Data
}

// Text returns the element's text content with surrounding space trimmed.
func (n Node) Text() string {
	if n.x == nil {
		return ""
	}
	return strings.TrimSpace(n.x.InnerText())
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, error) {
	if n.x != nil {
		for _, a := range n.x.Attr {
			if a.Name.Local == name {
				return a.Value, nil
			}
		}
	}
	return "", &NotFoundError{Field: "@" + name}
}

// AttrInt returns the named attribute parsed as an integer.
func (n Node) AttrInt(name string) (int, error) {
	s, err := n.Attr(name)
	if err != nil {
		return 0, err
	}
	return parseCount(s)
}

// Extract returns the text of the occurrence-th element named field found
// anywhere under n, in document order. occurrence is zero-based.
func (n Node) Extract(field string, occurrence int) (string, error) {
	matches := n.NodesNamed(field)
	if occurrence < 0 || occurrence >= len(matches) {
		return "", &NotFoundError{Field: field, Occurrence: occurrence}
	}
	return matches[occurrence].Text(), nil
}

// ExtractInt is Extract followed by integer parsing.
func (n Node) ExtractInt(field string, occurrence int) (int, error) {
	s, err := n.Extract(field, occurrence)
	if err != nil {
		return 0, err
	}
	return parseCount(s)
}

// ExtractAll returns, for every element under n (n included) that has a
// direct child named field, the text of the occurrence-th such child. The
// parents are visited in document order, so an outer parent comes before
// the parents nested inside it. It fails if any parent has fewer than
// occurrence+1 such children.
func (n Node) ExtractAll(field string, occurrence int) ([]string, error) {
	out := []string{}
	if n.x == nil {
		return out, nil
	}
	var walkErr error
	var walk func(*xmlquery.Node)
	walk = func(x *xmlquery.Node) {
		if walkErr != nil {
			return
		}
		if children := (Node{x: x}).Children(field); len(children) > 0 {
			if occurrence < 0 || occurrence >= len(children) {
				walkErr = &NotFoundError{Field: field, Occurrence: occurrence}
				return
			}
			out = append(out, children[occurrence].Text())
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				walk(c)
			}
		}
	}
	walk(n.x)
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// NodesNamed returns every element named name under n, in document order.
func (n Node) NodesNamed(name string) []Node {
	var out []Node
	if n.x == nil {
		return out
	}
	var walk func(*xmlquery.Node)
	walk = func(x *xmlquery.Node) {
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if c.Data == name {
				out = append(out, Node{x: c})
			}
			walk(c)
		}
	}
	walk(n.x)
	return out
}

// Find returns the first element named name under n.
func (n Node) Find(name string) (Node, error) {
	matches := n.NodesNamed(name)
	if len(matches) == 0 {
		return Node{}, &NotFoundError{Field: name}
	}
	return matches[0], nil
}

// Children returns the direct child elements of n named name.
func (n Node) Children(name string) []Node {
	var out []Node
	if n.x == nil {
		return out
	}
	for c := n.x.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			out = append(out, Node{x: c})
		}
	}
	return out
}

// Child returns the first direct child element of n named name.
func (n Node) Child(name string) (Node, error) {
	children := n.Children(name)
	if len(children) == 0 {
		return Node{}, &NotFoundError{Field: name}
	}
	return children[0], nil
}

// ChildText returns the text of the occurrence-th direct child named name.
func (n Node) ChildText(name string, occurrence int) (string, error) {
	children := n.Children(name)
	if occurrence < 0 || occurrence >= len(children) {
		return "", &NotFoundError{Field: name, Occurrence: occurrence}
	}
	return children[occurrence].Text(), nil
}

// ChildInt returns the first direct child named name parsed as an integer.
func (n Node) ChildInt(name string) (int, error) {
	s, err := n.ChildText(name, 0)
	if err != nil {
		return 0, err
	}
	return parseCount(s)
}

// OptionalChildText returns the first direct child's text, or "" when the
// child is absent.
func (n Node) OptionalChildText(name string) string {
	s, err := n.ChildText(name, 0)
	if err != nil {
		return ""
	}
	return s
}

// Path follows a chain of direct children, e.g. Path("artist", "name").
func (n Node) Path(names ...string) (Node, error) {
	cur := n
	for _, name := range names {
		next, err := cur.Child(name)
		if err != nil {
			return Node{}, err
		}
		cur = next
	}
	return cur, nil
}

// PathText returns the text at the end of Path(names...).
func (n Node) PathText(names ...string) (string, error) {
	end, err := n.Path(names...)
	if err != nil {
		return "", err
	}
	return end.Text(), nil
}

// parseCount parses integer counts. The service sometimes renders them
// with a fractional part ("100.0").
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("invalid number %q", s)
	}
	return int(f), nil
}
