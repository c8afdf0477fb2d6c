package parser_test

import (
	"flag"
	"reflect"
	"strings"
	"testing"

	"github.com/markupkit/markup/css/ast"
	"github.com/markupkit/markup/css/parser"
	"github.com/markupkit/markup/css/scanner"
	"github.com/markupkit/markup/css/token"
)

// testiter sets the table test iteration to run in isolation.
var testiter = flag.Int("test.iter", -1, "table test number")

// Ensure that stylesheets parse into the expected rules and that
// malformed constructs are recovered from without losing later rules.
func TestParse(t *testing.T) {
	var tests = []struct {
		s     string
		rules ast.Rules
		err   string
	}{
		// 0. Class selector with multiple declarations.
		{
			s: `.box { color: red; font-size: 14px; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Class{Name: "box"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red"},
						{Property: "font-size", Value: "14px"},
					},
				},
			},
		},

		// 1. Comma-separated selector list.
		{
			s: `h1, h2 { font-weight: bold; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "h1"}, &ast.Type{Name: "h2"}},
					Declarations: []*ast.Declaration{
						{Property: "font-weight", Value: "bold"},
					},
				},
			},
		},

		// 2. ID and universal selectors.
		{
			s: `#app { padding: 0 auto; }` + "\n" + `* { margin: 0; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.ID{Name: "app"}},
					Declarations: []*ast.Declaration{
						{Property: "padding", Value: "0 auto"},
					},
				},
				{
					Selectors: []ast.Selector{&ast.Universal{}},
					Declarations: []*ast.Declaration{
						{Property: "margin", Value: "0"},
					},
				},
			},
		},

		// 3. "!important" sets the flag and stays out of the value.
		{
			s: `p { color: red !important; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "p"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red", Important: true},
					},
				},
			},
		},

		// 4. The important keyword is matched case-sensitively.
		{
			s: `p { color: red !IMPORTANT; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "p"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red IMPORTANT"},
					},
				},
			},
		},

		// 5. A single value token is kept verbatim.
		{
			s: `a { content: " padded "; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "content", Value: `" padded "`},
					},
				},
			},
		},

		// 6. Commas between value tokens do not survive into the value.
		{
			s: `body { font-family: "Fira Sans", serif; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "body"}},
					Declarations: []*ast.Declaration{
						{Property: "font-family", Value: `"Fira Sans" serif`},
					},
				},
			},
		},

		// 7. Hash token values render with the leading "#".
		{
			s: `a { color: #fff; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "#fff"},
					},
				},
			},
		},

		// 8. Comments are ignored wherever they appear.
		{
			s: `/* note */ a { color: /* x */ red; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red"},
					},
				},
			},
		},

		// 9. Missing colon drops the declaration but not the rule.
		{
			s: `a { color red; background: blue; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "background", Value: "blue"},
					},
				},
			},
			err: `expected ':' after "color"`,
		},

		// 10. Trailing semicolon is optional.
		{
			s: `a { color: red }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red"},
					},
				},
			},
		},

		// 11. Unclosed block keeps its declarations.
		{
			s: `a { color: red`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red"},
					},
				},
			},
			err: "unclosed block at end of input",
		},

		// 12. Empty declaration block.
		{
			s: `a { }`,
			rules: ast.Rules{
				{Selectors: []ast.Selector{&ast.Type{Name: "a"}}},
			},
		},

		// 13. Duplicate properties are kept in order.
		{
			s: `a { color: red; color: blue; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "a"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red"},
						{Property: "color", Value: "blue"},
					},
				},
			},
		},

		// 14. Unsupported at-rule syntax is stepped over; later rules
		// still parse, and the inner block surfaces as its own rule.
		{
			s: `@media print { a { color: red } } h1 { color: blue; }`,
			rules: ast.Rules{
				{
					Selectors: []ast.Selector{&ast.Type{Name: "print"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "red"},
					},
				},
				{
					Selectors: []ast.Selector{&ast.Type{Name: "h1"}},
					Declarations: []*ast.Declaration{
						{Property: "color", Value: "blue"},
					},
				},
			},
			err: `expected ':' after "a"`,
		},

		// 15. Selectors separated by whitespace alone never form a rule.
		{
			s:   `h1 h2 { color: red; }`,
			err: `expected '{' after selector list (and 2 more errors)`,
		},

		// 16. A "." without an identifier yields no selector.
		{
			s:   `. { x: y; }`,
			err: `expected '{' after selector list (and 1 more errors)`,
		},
	}

	for i, tt := range tests {
		// Skips over tests if test.iter is set.
		if *testiter > -1 && *testiter != i {
			continue
		}

		rules, err := parser.Parse(scanner.New(strings.NewReader(tt.s)))
		if errstring(err) != tt.err {
			t.Errorf("%d. <%q> error: got %q, want %q", i, tt.s, errstring(err), tt.err)
		} else if !reflect.DeepEqual(rules, tt.rules) {
			t.Errorf("%d. <%q> rules:\n\ngot:  %s\n\nwant: %s", i, tt.s, rules.String(), tt.rules.String())
		}
	}
}

// Ensure that a single rule can be parsed on its own.
func TestParseRule(t *testing.T) {
	r, err := parser.ParseRule(scanner.New(strings.NewReader(`h1 { color: blue }`)))
	if err != nil {
		t.Fatal(err)
	}
	exp := &ast.Rule{
		Selectors: []ast.Selector{&ast.Type{Name: "h1"}},
		Declarations: []*ast.Declaration{
			{Property: "color", Value: "blue"},
		},
	}
	if !reflect.DeepEqual(r, exp) {
		t.Errorf("rule: got %s, want %s", r.String(), exp.String())
	}
}

// Ensure that a single declaration can be parsed on its own.
func TestParseDeclaration(t *testing.T) {
	d, err := parser.ParseDeclaration(scanner.New(strings.NewReader(`margin: 0 auto;`)))
	if err != nil {
		t.Fatal(err)
	}
	exp := &ast.Declaration{Property: "margin", Value: "0 auto"}
	if !reflect.DeepEqual(d, exp) {
		t.Errorf("declaration: got %s, want %s", d.String(), exp.String())
	}
}

// Ensure that a declaration without a colon reports an error.
func TestParseDeclaration_MissingColon(t *testing.T) {
	d, err := parser.ParseDeclaration(scanner.New(strings.NewReader(`color red`)))
	if d != nil {
		t.Errorf("unexpected declaration: %s", d.String())
	}
	if err == nil {
		t.Fatal("error expected")
	}
}

// Ensure that a pre-built token list can be parsed directly.
func TestTokenScanner(t *testing.T) {
	s := parser.NewTokenScanner([]token.Token{
		&token.Ident{Value: "margin"},
		&token.Colon{},
		&token.Number{Value: 0},
	})
	d, err := parser.ParseDeclaration(s)
	if err != nil {
		t.Fatal(err)
	}
	exp := &ast.Declaration{Property: "margin", Value: "0"}
	if !reflect.DeepEqual(d, exp) {
		t.Errorf("declaration: got %s, want %s", d.String(), exp.String())
	}
}

// errstring converts an error into its string representation.
func errstring(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
