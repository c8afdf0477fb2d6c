package token

import (
	"bytes"
	"fmt"
)

// Token represents a lexical HTML token.
type Token interface {
	token()
	String() string
}

func (_ *StartTag) token() {}
func (_ *EndTag) token()   {}
func (_ *Text) token()     {}
func (_ *Comment) token()  {}
func (_ *Doctype) token()  {}
func (_ *EOF) token()      {}

// Attribute is a single name/value pair as written in a start tag.
// The attribute list on a StartTag preserves source order and keeps
// duplicates; collapsing duplicates is the parser's job, not the
// tokenizer's.
type Attribute struct {
	Name  string
	Value string
}

// StartTag represents an opening tag, e.g. `<div class="box">`.
type StartTag struct {
	Name        string
	Attributes  []Attribute
	SelfClosing bool
	Pos         Pos
}

func (t *StartTag) String() string {
	var buf bytes.Buffer
	buf.WriteString("<" + t.Name)
	for _, a := range t.Attributes {
		fmt.Fprintf(&buf, " %s=%q", a.Name, a.Value)
	}
	if t.SelfClosing {
		buf.WriteString(" /")
	}
	buf.WriteString(">")
	return buf.String()
}

// EndTag represents a closing tag, e.g. `</div>`.
type EndTag struct {
	Name string
	Pos  Pos
}

func (t *EndTag) String() string {
	return "</" + t.Name + ">"
}

// Text represents a run of character data between tags. The value is
// raw: trailing whitespace is preserved, only the whitespace between the
// previous token and the first non-space character has been consumed.
type Text struct {
	Value string
	Pos   Pos
}

func (t *Text) String() string {
	return t.Value
}

// Comment represents the content between `<!--` and `-->`.
type Comment struct {
	Value string
	Pos   Pos
}

func (t *Comment) String() string {
	return "<!--" + t.Value + "-->"
}

// Doctype represents the raw content between `<!` and `>`, including the
// literal keyword found, e.g. "DOCTYPE html".
type Doctype struct {
	Value string
	Pos   Pos
}

func (t *Doctype) String() string {
	return "<!" + t.Value + ">"
}

// EOF marks the end of the token stream.
type EOF struct{}

func (t *EOF) String() string {
	return "EOF"
}

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}
