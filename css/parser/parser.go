package parser

import (
	"fmt"
	"strings"

	"github.com/markupkit/markup/css/ast"
	"github.com/markupkit/markup/css/token"
)

// parser represents a CSS parser over a whitespace-filtered token buffer.
// Selectors and declarations are defined purely structurally, so the
// whitespace tokens are dropped up front; comments stay in the buffer and
// are skipped wherever they appear.
type parser struct {
	errors ErrorList
	tokens []token.Token
	pos    int
}

func newParser(s Scanner) *parser {
	p := &parser{}
	for {
		switch tok := s.Scan().(type) {
		case *token.EOF:
			return p
		case *token.Whitespace:
			// dropped
		default:
			p.tokens = append(p.tokens, tok)
		}
	}
}

// Parse consumes the scanner's token stream and returns the style rules
// in source order. Malformed constructs are dropped and parsing resumes
// at the next token; the returned error, if not nil, is an ErrorList
// naming each recovery taken, and the rule list is complete either way.
func Parse(s Scanner) (ast.Rules, error) {
	p := newParser(s)
	var rules ast.Rules
	for p.pos < len(p.tokens) {
		if r := p.parseRule(); r != nil {
			rules = append(rules, r)
		} else {
			p.advance()
		}
	}
	return rules, p.error()
}

// ParseRule parses a single style rule.
func ParseRule(s Scanner) (*ast.Rule, error) {
	p := newParser(s)
	r := p.parseRule()
	if r == nil {
		p.errors = append(p.errors, &Error{Message: "expected rule"})
	}
	return r, p.error()
}

// ParseDeclaration parses a single property/value declaration.
func ParseDeclaration(s Scanner) (*ast.Declaration, error) {
	p := newParser(s)
	d := p.parseDeclaration()
	if d == nil {
		p.errors = append(p.errors, &Error{Message: "expected declaration"})
	}
	return d, p.error()
}

// parseRule parses one selector list and its declaration block. A rule
// attempt that fails returns nil with the attempt's tokens consumed; the
// caller's top-level loop advances one token and retries.
func (p *parser) parseRule() *ast.Rule {
	selectors := p.parseSelectorList()
	if len(selectors) == 0 {
		return nil
	}

	if _, ok := p.current().(*token.LBrace); !ok {
		p.errors = append(p.errors, &Error{Message: "expected '{' after selector list", Pos: p.currentPos()})
		return nil
	}
	p.advance()

	r := &ast.Rule{Selectors: selectors}
	for p.pos < len(p.tokens) {
		if _, ok := p.current().(*token.RBrace); ok {
			break
		}
		if d := p.parseDeclaration(); d != nil {
			r.Declarations = append(r.Declarations, d)
		} else {
			p.advance()
		}
	}

	if _, ok := p.current().(*token.RBrace); ok {
		p.advance()
	} else {
		p.errors = append(p.errors, &Error{Message: "unclosed block at end of input"})
	}
	return r
}

// parseSelectorList parses comma-separated simple selectors until a token
// that cannot continue the list.
func (p *parser) parseSelectorList() []ast.Selector {
	var selectors []ast.Selector
	for {
		sel := p.parseSelector()
		if sel == nil {
			return selectors
		}
		selectors = append(selectors, sel)

		if _, ok := p.current().(*token.Comma); !ok {
			return selectors
		}
		p.advance()
	}
}

// parseSelector parses one simple selector: type, id, class, or
// universal. A "." not followed by an identifier consumes the "." and
// yields nothing.
func (p *parser) parseSelector() ast.Selector {
	switch tok := p.current().(type) {
	case *token.Ident:
		p.advance()
		return &ast.Type{Name: tok.Value}
	case *token.Hash:
		p.advance()
		return &ast.ID{Name: tok.Value}
	case *token.Delim:
		switch tok.Value {
		case '.':
			p.advance()
			if ident, ok := p.current().(*token.Ident); ok {
				p.advance()
				return &ast.Class{Name: ident.Value}
			}
			return nil
		case '*':
			p.advance()
			return &ast.Universal{}
		}
	}
	return nil
}

// parseDeclaration parses one "property: value" pair up to, but not
// consuming, the "}" that would close the block. A trailing ";" is
// consumed when present. A missing colon fails the whole declaration.
func (p *parser) parseDeclaration() *ast.Declaration {
	prop, ok := p.current().(*token.Ident)
	if !ok {
		return nil
	}
	p.advance()

	if _, ok := p.current().(*token.Colon); !ok {
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("expected ':' after %q", prop.Value), Pos: p.currentPos()})
		return nil
	}
	p.advance()

	var parts []string
	var important bool
loop:
	for p.pos < len(p.tokens) {
		switch tok := p.current().(type) {
		case *token.Semicolon, *token.RBrace:
			break loop
		case *token.Delim:
			p.advance()
			if tok.Value != '!' {
				parts = append(parts, tok.String())
				continue
			}
			// "!" followed by the ident "important" sets the flag and
			// contributes nothing to the value text.
			if ident, ok := p.current().(*token.Ident); ok && ident.Value == "important" {
				important = true
				p.advance()
			}
		case *token.Ident, *token.String, *token.Number, *token.Dimension, *token.Percentage, *token.Hash:
			parts = append(parts, tok.String())
			p.advance()
		default:
			// Everything else is silently skipped.
			p.advance()
		}
	}

	// A single value token is used verbatim; multiple tokens are joined
	// with single spaces and trimmed.
	var value string
	if len(parts) == 1 {
		value = parts[0]
	} else {
		value = strings.TrimSpace(strings.Join(parts, " "))
	}

	if _, ok := p.current().(*token.Semicolon); ok {
		p.advance()
	}
	return &ast.Declaration{Property: prop.Value, Value: value, Important: important}
}

// current returns the token at the cursor, or nil once the buffer is
// exhausted.
func (p *parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return p.tokens[p.pos]
}

func (p *parser) currentPos() token.Pos {
	if tok := p.current(); tok != nil {
		return tok.Position()
	}
	return token.Pos{}
}

// advance moves past the current token.
func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Errors returns the error on the parser.
// Returns nil if there are no errors.
func (p *parser) error() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors
}

// Scanner represents a type that can retrieve the next token.
type Scanner interface {
	Scan() token.Token
}

// TokenScanner represents a scanner for a fixed list of tokens.
type TokenScanner struct {
	i      int
	tokens []token.Token
}

// NewTokenScanner returns a new instance of TokenScanner.
func NewTokenScanner(tokens []token.Token) *TokenScanner {
	return &TokenScanner{tokens: tokens}
}

// Scan returns the next token, or EOF once the list is exhausted.
func (s *TokenScanner) Scan() token.Token {
	if s.i >= len(s.tokens) {
		return &token.EOF{}
	}
	tok := s.tokens[s.i]
	s.i++
	return tok
}

// Error represents a syntax error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// ErrorList represents a list of syntax errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}
