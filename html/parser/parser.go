package parser

import (
	"fmt"
	"strings"

	"github.com/markupkit/markup/html/ast"
	"github.com/markupkit/markup/html/token"
)

// voidElements are the element types that can never have children and are
// self-terminating by tag name alone.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

func isVoid(name string) bool {
	return voidElements[strings.ToLower(name)]
}

// parser represents an HTML parser over a fully materialized token buffer.
type parser struct {
	errors ErrorList
	tokens []token.Token
	pos    int
}

func newParser(s Scanner) *parser {
	p := &parser{}
	for {
		tok := s.Scan()
		if _, ok := tok.(*token.EOF); ok {
			return p
		}
		p.tokens = append(p.tokens, tok)
	}
}

// Parse consumes the scanner's token stream and returns the top-level
// nodes in source order. Structurally unbalanced markup never aborts
// parsing; the returned error, if not nil, is an ErrorList naming each
// lenient recovery taken, and the node list is complete either way.
func Parse(s Scanner) ([]ast.Node, error) {
	p := newParser(s)
	nodes := p.parseNodes()
	return nodes, p.error()
}

// ParseDocument parses the token stream and selects the document root:
// the first top-level element case-insensitively named "html", else the
// first top-level element of any name, else nil.
func ParseDocument(s Scanner) (*ast.Element, error) {
	p := newParser(s)
	nodes := p.parseNodes()

	var first *ast.Element
	for _, n := range nodes {
		e, ok := n.(*ast.Element)
		if !ok {
			continue
		}
		if strings.EqualFold(e.TagName, "html") {
			return e, p.error()
		}
		if first == nil {
			first = e
		}
	}
	return first, p.error()
}

func (p *parser) parseNodes() []ast.Node {
	var nodes []ast.Node
	for p.pos < len(p.tokens) {
		if n := p.parseNode(); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// parseNode consumes one top-level node. Whitespace-only text produces
// nothing, stray doctypes are skipped, and a stray end tag with no open
// element is dropped.
func (p *parser) parseNode() ast.Node {
	for p.pos < len(p.tokens) {
		switch tok := p.tokens[p.pos].(type) {
		case *token.StartTag:
			p.pos++
			return p.parseElement(tok)
		case *token.Text:
			p.pos++
			if v := strings.TrimSpace(tok.Value); v != "" {
				return &ast.Text{Value: v}
			}
		case *token.Comment:
			p.pos++
			return &ast.Comment{Value: tok.Value}
		case *token.EndTag:
			p.pos++
			p.errors = append(p.errors, &Error{Message: fmt.Sprintf("stray end tag </%s>", tok.Name), Pos: tok.Pos})
		case *token.Doctype:
			p.pos++
		}
	}
	return nil
}

// parseElement builds the element opened by tag and its subtree. Nesting
// state lives on an explicit open-element stack rather than the call
// stack, so adversarial nesting depth cannot grow native stack frames.
func (p *parser) parseElement(tag *token.StartTag) *ast.Element {
	root := newElement(tag)
	if tag.SelfClosing || isVoid(tag.Name) {
		return root
	}

	stack := []*ast.Element{root}
	for len(stack) > 0 && p.pos < len(p.tokens) {
		top := stack[len(stack)-1]
		switch tok := p.tokens[p.pos].(type) {
		case *token.StartTag:
			p.pos++
			child := newElement(tok)
			top.Children = append(top.Children, child)
			if !tok.SelfClosing && !isVoid(tok.Name) {
				stack = append(stack, child)
			}
		case *token.Text:
			p.pos++
			if v := strings.TrimSpace(tok.Value); v != "" {
				top.Children = append(top.Children, &ast.Text{Value: v})
			}
		case *token.Comment:
			p.pos++
			top.Children = append(top.Children, &ast.Comment{Value: tok.Value})
		case *token.Doctype:
			// Not valid here, but tolerated.
			p.pos++
			p.errors = append(p.errors, &Error{Message: "doctype inside element", Pos: tok.Pos})
		case *token.EndTag:
			// The end tag must match the open element exactly,
			// case-sensitively.
			if tok.Name == top.TagName {
				p.pos++
				stack = stack[:len(stack)-1]
			} else {
				// A mismatched end tag implicitly closes the current
				// element; the token is left for the enclosing frame.
				p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unexpected </%s> inside <%s>", tok.Name, top.TagName), Pos: tok.Pos})
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("unclosed <%s> at end of input", stack[len(stack)-1].TagName)})
	}
	return root
}

// newElement folds the token layer's ordered attribute list into the
// element's mapping; a later duplicate name overwrites an earlier one.
func newElement(tag *token.StartTag) *ast.Element {
	attrs := make(map[string]string, len(tag.Attributes))
	for _, a := range tag.Attributes {
		attrs[a.Name] = a.Value
	}
	return &ast.Element{TagName: tag.Name, Attributes: attrs}
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
