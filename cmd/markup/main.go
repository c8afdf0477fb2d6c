package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/markupkit/markup"
	cssast "github.com/markupkit/markup/css/ast"
	htmlast "github.com/markupkit/markup/html/ast"
)

func main() {
	args := os.Args[1:]
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	if command == "demo" {
		runDemo()
		return
	}
	if len(args) < 2 {
		printUsage()
		os.Exit(1)
	}

	content, err := os.ReadFile(args[1])
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "html-tokenize":
		tokenizeHTML(string(content))
	case "html-parse":
		parseHTML(string(content))
	case "css-tokenize":
		tokenizeCSS(string(content))
	case "css-parse":
		parseCSS(string(content))
	case "style":
		parseCSS(markup.ExtractStyles(string(content)))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "HTML & CSS parser CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  markup <command> <file>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  html-tokenize <file>  Tokenize an HTML file")
	fmt.Fprintln(os.Stderr, "  html-parse <file>     Parse an HTML file into a tree")
	fmt.Fprintln(os.Stderr, "  css-tokenize <file>   Tokenize a CSS file")
	fmt.Fprintln(os.Stderr, "  css-parse <file>      Parse a CSS file into rules")
	fmt.Fprintln(os.Stderr, "  style <file>          Parse the <style> blocks of an HTML file")
	fmt.Fprintln(os.Stderr, "  demo                  Run the built-in demo (no file needed)")
}

func tokenizeHTML(content string) {
	fmt.Println("=== HTML Tokenization ===")
	tokens := markup.TokenizeHTML(content)
	for i, tok := range tokens {
		fmt.Printf("%d: %s\n", i+1, tok)
	}
	fmt.Printf("\nTotal tokens: %d\n", len(tokens))
}

func parseHTML(content string) {
	fmt.Println("=== HTML Parsing ===")
	if doc := markup.ParseHTMLDocument(content); doc != nil {
		printNode(doc, 0)
		return
	}

	fmt.Println("No document root found")
	nodes := markup.ParseHTML(content)
	if len(nodes) > 0 {
		fmt.Printf("Found %d top-level nodes:\n", len(nodes))
		for _, n := range nodes {
			printNode(n, 0)
		}
	}
}

func tokenizeCSS(content string) {
	fmt.Println("=== CSS Tokenization ===")
	tokens := markup.TokenizeCSS(content)
	for i, tok := range tokens {
		fmt.Printf("%d: %s\n", i+1, tok)
	}
	fmt.Printf("\nTotal tokens: %d\n", len(tokens))
}

func parseCSS(content string) {
	fmt.Println("=== CSS Parsing ===")
	rules := markup.ParseCSS(content)
	fmt.Printf("Parsed %d CSS rules:\n", len(rules))

	for i, rule := range rules {
		fmt.Printf("\nRule #%d: %d selector(s)\n", i+1, len(rule.Selectors))
		for _, sel := range rule.Selectors {
			switch sel := sel.(type) {
			case *cssast.Type:
				fmt.Printf("  Type: %s\n", sel.Name)
			case *cssast.Class:
				fmt.Printf("  Class: .%s\n", sel.Name)
			case *cssast.ID:
				fmt.Printf("  ID: #%s\n", sel.Name)
			case *cssast.Universal:
				fmt.Println("  Universal: *")
			default:
				fmt.Println("  Complex selector")
			}
		}

		fmt.Printf("  %d declaration(s):\n", len(rule.Declarations))
		for _, d := range rule.Declarations {
			important := ""
			if d.Important {
				important = " !important"
			}
			fmt.Printf("    %s: %s%s\n", d.Property, d.Value, important)
		}
	}
}

func printNode(n htmlast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *htmlast.Element:
		fmt.Printf("%s<%s", indent, n.TagName)
		names := make([]string, 0, len(n.Attributes))
		for name := range n.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf(" %s=%q", name, n.Attributes[name])
		}
		if len(n.Children) == 0 {
			fmt.Println(" />")
			return
		}
		fmt.Println(">")
		for _, child := range n.Children {
			printNode(child, depth+1)
		}
		fmt.Printf("%s</%s>\n", indent, n.TagName)
	case *htmlast.Text:
		fmt.Printf("%s%s\n", indent, n.Value)
	case *htmlast.Comment:
		fmt.Printf("%s<!-- %s -->\n", indent, n.Value)
	}
}

const demoHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Demo Page</title>
    <style>
        #title { color: #333; }
    </style>
</head>
<body>
    <div class="container">
        <h1 id="title">Hello World</h1>
        <p>This is a <strong>demo</strong> page.</p>
    </div>
</body>
</html>`

const demoCSS = `body {
    font-family: Arial, sans-serif;
    margin: 0;
}

.container {
    max-width: 800px;
    margin: 0 auto;
    padding: 20px;
}

#title {
    color: #333;
    font-size: 2em;
}`

func runDemo() {
	fmt.Println("=== HTML & CSS Parser Demo ===")
	fmt.Println()

	fmt.Println("HTML Demo:")
	parseHTML(demoHTML)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Println("CSS Demo:")
	parseCSS(demoCSS)

	fmt.Println()
	fmt.Println("Inline style demo:")
	parseCSS(markup.ExtractStyles(demoHTML))
}
