package parser_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/markupkit/markup/html/parser"
	"github.com/markupkit/markup/html/scanner"
	"github.com/markupkit/markup/html/token"
)

const benchDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Release notes</title>
<link rel="stylesheet" href="/main.css">
</head>
<body>
<div id="app" class="container">
<header class="row">
<h1>Release notes</h1>
<nav><a href="/">Home</a> <a href="/archive">Archive</a></nav>
</header>
<!-- rendered from release.json -->
<div class="card">
<h2 class="card-title">v1.4.0</h2>
<p>This release adds <b>incremental</b> rebuilds and fixes a
crash when the watch list was empty.</p>
<ul>
<li>Incremental rebuilds</li>
<li>Watcher crash fix</li>
<li>Smaller binaries</li>
</ul>
<img src="/chart.png" alt="build times">
</div>
<div class="card">
<h2 class="card-title">v1.3.2</h2>
<p>Maintenance release.</p>
</div>
<footer>
<p>Generated nightly.</p>
</footer>
</div>
</body>
</html>
`

func BenchmarkScan(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	for i := 0; i < b.N; i++ {
		s := scanner.New(strings.NewReader(benchDocument))
		for {
			if _, ok := s.Scan().(*token.EOF); ok {
				break
			}
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(scanner.New(strings.NewReader(benchDocument))); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseReference parses the same document with the spec-complete
// parser from golang.org/x/net/html, as a point of comparison.
func BenchmarkParseReference(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	for i := 0; i < b.N; i++ {
		if _, err := html.Parse(strings.NewReader(benchDocument)); err != nil {
			b.Fatal(err)
		}
	}
}
