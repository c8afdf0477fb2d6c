package markup

import (
	"strings"

	cssast "github.com/markupkit/markup/css/ast"
	cssparser "github.com/markupkit/markup/css/parser"
	cssscanner "github.com/markupkit/markup/css/scanner"
	csstoken "github.com/markupkit/markup/css/token"
	htmlast "github.com/markupkit/markup/html/ast"
	htmlparser "github.com/markupkit/markup/html/parser"
	htmlscanner "github.com/markupkit/markup/html/scanner"
	htmltoken "github.com/markupkit/markup/html/token"
)

// TokenizeHTML returns the lexical tokens of the markup text, in source
// order. Re-tokenizing the same input yields a structurally equal
// sequence; the scanners keep no state between invocations.
func TokenizeHTML(input string) []htmltoken.Token {
	s := htmlscanner.New(strings.NewReader(input))
	var tokens []htmltoken.Token
	for {
		tok := s.Scan()
		if _, ok := tok.(*htmltoken.EOF); ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// ParseHTML returns the top-level nodes of the markup text in source
// order, discarding diagnostics.
func ParseHTML(input string) []htmlast.Node {
	nodes, _ := htmlparser.Parse(htmlscanner.New(strings.NewReader(input)))
	return nodes
}

// ParseHTMLDocument parses the markup text and returns the document
// root: the first top-level <html> element, else the first top-level
// element of any name, else nil.
func ParseHTMLDocument(input string) *htmlast.Element {
	doc, _ := htmlparser.ParseDocument(htmlscanner.New(strings.NewReader(input)))
	return doc
}

// TokenizeCSS returns the lexical tokens of the stylesheet text, in
// source order, whitespace tokens included.
func TokenizeCSS(input string) []csstoken.Token {
	s := cssscanner.New(strings.NewReader(input))
	var tokens []csstoken.Token
	for {
		tok := s.Scan()
		if _, ok := tok.(*csstoken.EOF); ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// ParseCSS returns the style rules of the stylesheet text in source
// order, discarding diagnostics.
func ParseCSS(input string) cssast.Rules {
	rules, _ := cssparser.Parse(cssscanner.New(strings.NewReader(input)))
	return rules
}

// ExtractStyles collects the text under every <style> element of the
// parsed document, ready to be handed to ParseCSS. Multiple style blocks
// are joined with newlines.
func ExtractStyles(input string) string {
	var parts []string
	var walk func(n htmlast.Node)
	walk = func(n htmlast.Node) {
		e, ok := n.(*htmlast.Element)
		if !ok {
			return
		}
		if strings.EqualFold(e.TagName, "style") {
			for _, child := range e.Children {
				if t, ok := child.(*htmlast.Text); ok {
					parts = append(parts, t.Value)
				}
			}
			return
		}
		for _, child := range e.Children {
			walk(child)
		}
	}
	for _, n := range ParseHTML(input) {
		walk(n)
	}
	return strings.Join(parts, "\n")
}
