package ast

import (
	"bytes"
	"fmt"
	"sort"
)

// Node represents a node in the HTML document tree.
type Node interface {
	node()
	String() string
}

func (_ *Element) node() {}
func (_ *Text) node()    {}
func (_ *Comment) node() {}

// Element represents a single element and the subtree below it. The
// element exclusively owns its children; the tree is acyclic and built
// once during parsing.
//
// Attributes are an order-losing, duplicate-collapsing mapping: when the
// parser folds the token layer's ordered attribute list into the map, a
// later duplicate name overwrites an earlier one.
type Element struct {
	TagName    string
	Attributes map[string]string
	Children   []Node
}

// String renders the subtree as source-like markup. Attributes are
// emitted in name order so the rendering is deterministic.
func (e *Element) String() string {
	var buf bytes.Buffer

	names := make([]string, 0, len(e.Attributes))
	for name := range e.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	buf.WriteString("<" + e.TagName)
	for _, name := range names {
		fmt.Fprintf(&buf, " %s=%q", name, e.Attributes[name])
	}
	if len(e.Children) == 0 {
		buf.WriteString(" />")
		return buf.String()
	}
	buf.WriteString(">")
	for _, child := range e.Children {
		buf.WriteString(child.String())
	}
	buf.WriteString("</" + e.TagName + ">")
	return buf.String()
}

// Text represents trimmed, non-empty character data.
type Text struct {
	Value string
}

func (t *Text) String() string {
	return t.Value
}

// Comment represents a comment node, content taken verbatim.
type Comment struct {
	Value string
}

func (c *Comment) String() string {
	return "<!--" + c.Value + "-->"
}
