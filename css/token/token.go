package token

import "strconv"

// Token represents a lexical CSS token.
//
// String returns the token's textual rendering as it appears inside a
// declaration value: strings are re-quoted with double quotes, hashes get
// their "#" back, numeric tokens use the shortest decimal form.
type Token interface {
	token()
	String() string
	Position() Pos
}

func (t *Ident) Position() Pos      { return t.Pos }
func (t *String) Position() Pos     { return t.Pos }
func (t *Number) Position() Pos     { return t.Pos }
func (t *Dimension) Position() Pos  { return t.Pos }
func (t *Percentage) Position() Pos { return t.Pos }
func (t *Hash) Position() Pos       { return t.Pos }
func (t *Delim) Position() Pos      { return t.Pos }
func (t *AtKeyword) Position() Pos  { return t.Pos }
func (t *Whitespace) Position() Pos { return t.Pos }
func (t *Comment) Position() Pos    { return t.Pos }
func (t *LParen) Position() Pos     { return t.Pos }
func (t *RParen) Position() Pos     { return t.Pos }
func (t *LBrace) Position() Pos     { return t.Pos }
func (t *RBrace) Position() Pos     { return t.Pos }
func (t *LBrack) Position() Pos     { return t.Pos }
func (t *RBrack) Position() Pos     { return t.Pos }
func (t *Comma) Position() Pos      { return t.Pos }
func (t *Colon) Position() Pos      { return t.Pos }
func (t *Semicolon) Position() Pos  { return t.Pos }
func (t *EOF) Position() Pos        { return Pos{} }

func (_ *Ident) token()      {}
func (_ *String) token()     {}
func (_ *Number) token()     {}
func (_ *Dimension) token()  {}
func (_ *Percentage) token() {}
func (_ *Hash) token()       {}
func (_ *Delim) token()      {}
func (_ *AtKeyword) token()  {}
func (_ *Whitespace) token() {}
func (_ *Comment) token()    {}
func (_ *LParen) token()     {}
func (_ *RParen) token()     {}
func (_ *LBrace) token()     {}
func (_ *RBrace) token()     {}
func (_ *LBrack) token()     {}
func (_ *RBrack) token()     {}
func (_ *Comma) token()      {}
func (_ *Colon) token()      {}
func (_ *Semicolon) token()  {}
func (_ *EOF) token()        {}

// Ident is an identifier run.
type Ident struct {
	Value string
	Pos   Pos
}

func (t *Ident) String() string { return t.Value }

// String is a quoted string with the quotes stripped and each
// backslash-escaped character resolved to the character itself.
type String struct {
	Value string
	Pos   Pos
}

func (t *String) String() string { return `"` + t.Value + `"` }

// Number is a plain numeric value.
type Number struct {
	Value float64
	Pos   Pos
}

func (t *Number) String() string { return formatNumber(t.Value) }

// Dimension is a numeric value with a unit, e.g. "14px".
type Dimension struct {
	Value float64
	Unit  string
	Pos   Pos
}

func (t *Dimension) String() string { return formatNumber(t.Value) + t.Unit }

// Percentage is a numeric value followed by "%".
type Percentage struct {
	Value float64
	Pos   Pos
}

func (t *Percentage) String() string { return formatNumber(t.Value) + "%" }

// Hash is a "#" followed by an identifier run, the "#" stripped.
type Hash struct {
	Value string
	Pos   Pos
}

func (t *Hash) String() string { return "#" + t.Value }

// Delim is any single character not otherwise classified.
type Delim struct {
	Value rune
	Pos   Pos
}

func (t *Delim) String() string { return string(t.Value) }

// AtKeyword is an "@" followed by an identifier run, the "@" stripped.
type AtKeyword struct {
	Value string
	Pos   Pos
}

func (t *AtKeyword) String() string { return "@" + t.Value }

// Whitespace is one run of whitespace; the content is discarded but the
// token itself is retained so parsers that care about adjacency can
// filter it explicitly.
type Whitespace struct {
	Pos Pos
}

func (t *Whitespace) String() string { return " " }

// Comment is the content between "/*" and "*/".
type Comment struct {
	Value string
	Pos   Pos
}

func (t *Comment) String() string { return "/*" + t.Value + "*/" }

type LParen struct{ Pos Pos }

func (t *LParen) String() string { return "(" }

type RParen struct{ Pos Pos }

func (t *RParen) String() string { return ")" }

type LBrace struct{ Pos Pos }

func (t *LBrace) String() string { return "{" }

type RBrace struct{ Pos Pos }

func (t *RBrace) String() string { return "}" }

type LBrack struct{ Pos Pos }

func (t *LBrack) String() string { return "[" }

type RBrack struct{ Pos Pos }

func (t *RBrack) String() string { return "]" }

type Comma struct{ Pos Pos }

func (t *Comma) String() string { return "," }

type Colon struct{ Pos Pos }

func (t *Colon) String() string { return ":" }

type Semicolon struct{ Pos Pos }

func (t *Semicolon) String() string { return ";" }

// EOF marks the end of the token stream.
type EOF struct{}

func (t *EOF) String() string { return "EOF" }

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}

// formatNumber renders a numeric value in its shortest decimal form,
// without an exponent: 14 not "14.000000", 0.5 not "5e-01".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
