package ast

import (
	"bytes"
	"strings"
)

// Selector represents one selector of a rule's comma-separated selector
// group.
type Selector interface {
	selector()
	String() string
}

func (_ *Type) selector()           {}
func (_ *Class) selector()          {}
func (_ *ID) selector()             {}
func (_ *Universal) selector()      {}
func (_ *Descendant) selector()     {}
func (_ *Child) selector()          {}
func (_ *Adjacent) selector()       {}
func (_ *GeneralSibling) selector() {}

// Type matches elements by tag name.
type Type struct {
	Name string
}

func (s *Type) String() string { return s.Name }

// Class matches elements carrying a class name.
type Class struct {
	Name string
}

func (s *Class) String() string { return "." + s.Name }

// ID matches the element carrying an id.
type ID struct {
	Name string
}

func (s *ID) String() string { return "#" + s.Name }

// Universal matches every element.
type Universal struct{}

func (s *Universal) String() string { return "*" }

// The four combinator selectors below are part of the data model but are
// never constructed by the parser, which emits simple selectors only.

// Descendant matches Right anywhere below Left.
type Descendant struct {
	Left  Selector
	Right Selector
}

func (s *Descendant) String() string { return s.Left.String() + " " + s.Right.String() }

// Child matches Right directly below Left.
type Child struct {
	Left  Selector
	Right Selector
}

func (s *Child) String() string { return s.Left.String() + " > " + s.Right.String() }

// Adjacent matches Right immediately following Left.
type Adjacent struct {
	Left  Selector
	Right Selector
}

func (s *Adjacent) String() string { return s.Left.String() + " + " + s.Right.String() }

// GeneralSibling matches Right anywhere after Left under the same parent.
type GeneralSibling struct {
	Left  Selector
	Right Selector
}

func (s *GeneralSibling) String() string { return s.Left.String() + " ~ " + s.Right.String() }

// Declaration represents a single property/value pair, optionally flagged
// important. The value text never contains the "!important" marker.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

func (d *Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important;"
	}
	return d.Property + ": " + d.Value + ";"
}

// Rule represents one style rule: a non-empty selector group and the
// declarations of its block, both in source order with duplicates kept.
type Rule struct {
	Selectors    []Selector
	Declarations []*Declaration
}

func (r *Rule) String() string {
	var buf bytes.Buffer
	selectors := make([]string, len(r.Selectors))
	for i, s := range r.Selectors {
		selectors[i] = s.String()
	}
	buf.WriteString(strings.Join(selectors, ", "))
	buf.WriteString(" {")
	for _, d := range r.Declarations {
		buf.WriteString(" " + d.String())
	}
	buf.WriteString(" }")
	return buf.String()
}

// Rules represents an ordered list of rules.
type Rules []*Rule

func (a Rules) String() string {
	var buf bytes.Buffer
	for i, r := range a {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(r.String())
	}
	return buf.String()
}
