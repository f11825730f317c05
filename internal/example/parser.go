// Package example parses <example> elements out of example text.
//
//	<example name="basic" lang="js">
//	  add(1, 2) // 3
//	</example>
//
// Each element becomes a structured [docdata.Example]
// whose attributes are recorded verbatim
// and whose content has its common indentation removed.
package example

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/andybalholm/cascadia"
	"go.abhg.dev/docpack/internal/docdata"
	"golang.org/x/net/html"
)

// DefaultSelector matches example elements
// when a Parser doesn't specify its own.
const DefaultSelector = "example"

var _defaultSelector = cascadia.MustCompile(DefaultSelector)

// Parser parses examples out of text.
//
// The zero value is ready to use,
// and matches <example> elements.
type Parser struct {
	// DetectLang guesses the language of examples
	// that don't specify a "lang" attribute.
	DetectLang bool

	sel cascadia.Selector
}

// New builds a Parser that matches elements with the given CSS selector.
func New(selector string) (*Parser, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Parser{sel: sel}, nil
}

func (p *Parser) selector() cascadia.Selector {
	if p.sel != nil {
		return p.sel
	}
	return _defaultSelector
}

// Parse returns the examples found in text in document order.
// It returns an empty slice if text has no example elements.
//
// Markup inside an example is kept as written,
// with character references decoded.
func (p *Parser) Parse(text string) []*docdata.Example {
	if !strings.Contains(text, "<") {
		return nil
	}

	doc := parseTree(text)
	var examples []*docdata.Example
	for _, n := range p.selector().MatchAll(doc.root) {
		el := doc.elements[n]
		content := dedent(html.UnescapeString(text[el.start:el.end]))
		lang := canonicalLang(attrValue(n, "lang"))
		if lang == "" && p.DetectLang {
			lang = detectLang(content)
		}

		examples = append(examples, docdata.StructuredExample(content, lang, el.attrs))
	}
	return examples
}

// attrValue returns the value of the attribute of n named key.
// key must be lowercase.
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// dedent drops leading and trailing blank lines from s,
// and removes the indentation shared by all remaining lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	var (
		indent string
		found  bool
	)
	for _, l := range lines {
		if isBlank(l) {
			continue
		}
		ind := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !found {
			indent, found = ind, true
			continue
		}
		indent = commonPrefix(indent, ind)
	}

	for i, l := range lines {
		if isBlank(l) {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimRight(strings.TrimPrefix(l, indent), " \t\r")
	}
	return strings.Join(lines, "\n")
}

func isBlank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
