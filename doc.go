/*
Package markup implements tokenizers and parsers for HTML and CSS text.
This is meant to be a low-level library for extracting structure from raw
markup without depending on a full browser engine.

This package can be used for building tools to inspect, analyze and
transform HTML documents and stylesheets.


Basics

Each language is handled by the same two-step pipeline. First a scanner
breaks the stream of code points (runes) into tokens, the most basic
units of the syntax: tags, text and comments on the HTML side; idents,
strings, numbers and punctuation on the CSS side. The second step feeds
those tokens into a parser which builds the structured result: an element
tree for HTML, an ordered list of style rules for CSS.

The pipelines live in parallel subpackage trees, html/... and css/...,
each split into token, scanner, ast and parser packages. This package
ties them together behind a small string-in convenience API:

	nodes := markup.ParseHTML(`<div>Hello</div>`)
	rules := markup.ParseCSS(`.box { color: red; }`)

The two pipelines are independent; the only conventional wiring between
them is ExtractStyles, which collects the text under <style> elements so
it can be handed to the CSS side.


Leniency

Nothing in this library fails. Unterminated comments, strings and tags
consume to end of input, unparseable numbers become zero, malformed
declarations are dropped and parsing resumes at the next token, and a
mismatched end tag implicitly closes the current element. The worst a
caller can observe is a shallower or emptier result than strict grammar
would produce. The lower-level packages still name every such recovery:
scanners accumulate them on their Errors field and parsers return them as
a secondary ErrorList value, so stricter tools can surface diagnostics
the convenience API deliberately discards.
*/
package markup
