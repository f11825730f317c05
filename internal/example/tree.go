package example

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// element is an element found by parseTree.
type element struct {
	// Attributes with names as written.
	attrs map[string]string

	// Byte offsets of the element's content in the source text.
	start, end int
}

// tree is the result of parseTree.
type tree struct {
	root     *html.Node
	elements map[*html.Node]*element
}

// parseTree tokenizes text and builds a node tree from it.
//
// Unlike html.Parse, elements nest exactly as written:
// no elements are implied, moved, or dropped.
// Node names are lowercased so that selectors match them,
// but element.attrs keeps attribute names as written.
func parseTree(text string) *tree {
	t := tree{
		root:     &html.Node{Type: html.DocumentNode},
		elements: make(map[*html.Node]*element),
	}
	stack := []*html.Node{t.root}

	z := html.NewTokenizer(strings.NewReader(text))
	var offset int
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		start := offset
		offset += len(raw)

		parent := stack[len(stack)-1]
		switch tt {
		case html.TextToken:
			parent.AppendChild(&html.Node{
				Type: html.TextNode,
				Data: html.UnescapeString(raw),
			})

		case html.StartTagToken, html.SelfClosingTagToken:
			n, el := newElement(z, raw)
			el.start, el.end = offset, offset
			parent.AppendChild(n)
			t.elements[n] = el
			if tt == html.StartTagToken && !isVoid(n.DataAtom) {
				el.end = len(text)
				stack = append(stack, n)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Data != string(name) {
					continue
				}
				// Close this element and any left open inside it.
				for _, n := range stack[i:] {
					t.elements[n].end = start
				}
				stack = stack[:i]
				break
			}
		}
	}

	return &t
}

// newElement builds a node for the start tag that z just read.
// raw is the text of the tag.
func newElement(z *html.Tokenizer, raw string) (*html.Node, *element) {
	name, more := z.TagName()
	n := html.Node{
		Type:     html.ElementNode,
		Data:     string(name),
		DataAtom: atom.Lookup(name),
	}
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		n.Attr = append(n.Attr, html.Attribute{
			Key: string(key),
			Val: string(val),
		})
	}

	var el element
	if len(n.Attr) == 0 {
		return &n, &el
	}

	keys := attrKeys(raw)
	if len(keys) != len(n.Attr) {
		keys = nil
	}
	el.attrs = make(map[string]string, len(n.Attr))
	for i, a := range n.Attr {
		key := a.Key
		if keys != nil && strings.EqualFold(keys[i], key) {
			key = keys[i]
		}
		el.attrs[key] = a.Val
	}
	return &n, &el
}

const _whitespace = " \t\n\f\r"

// attrKeys returns the names of the attributes in the start tag raw
// as written, in order.
// It separates attributes the same way the tokenizer does.
func attrKeys(raw string) []string {
	s := strings.TrimPrefix(raw, "<")
	idx := strings.IndexAny(s, _whitespace+"/>")
	if idx < 0 {
		return nil
	}
	s = s[idx:]

	var keys []string
	for {
		s = strings.TrimLeft(s, _whitespace+"/")
		if len(s) == 0 || s[0] == '>' {
			return keys
		}

		// A leading '=' is part of the name.
		end := strings.IndexAny(s[1:], _whitespace+"/>=")
		if end < 0 {
			end = len(s)
		} else {
			end++
		}
		keys = append(keys, s[:end])

		s = strings.TrimLeft(s[end:], _whitespace)
		if !strings.HasPrefix(s, "=") {
			continue
		}
		s = strings.TrimLeft(s[1:], _whitespace)
		switch {
		case len(s) == 0:
			return keys
		case s[0] == '"' || s[0] == '\'':
			if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
				s = s[end+2:]
			} else {
				s = ""
			}
		default:
			if end := strings.IndexAny(s, _whitespace+">"); end >= 0 {
				s = s[end:]
			} else {
				s = ""
			}
		}
	}
}

func isVoid(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	default:
		return false
	}
}
