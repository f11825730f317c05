package jsdoc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	_gutterRx    = regexp.MustCompile(`^[ \t]*\* ?`)
	_paragraphRx = regexp.MustCompile(`\n[ \t]*\n`)
)

// Parser extracts doc comments from source text.
//
// The zero value is ready to use.
// A Parser is safe for concurrent use.
type Parser struct {
	once sync.Once
	md   goldmark.Markdown
}

func (p *Parser) init() {
	p.once.Do(func() {
		p.md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		)
	})
}

// Parse finds all doc comments in src and parses them.
// Comments are returned in the order they appear.
//
// Parse fails if src contains an unterminated comment
// or a tag without a name.
func (p *Parser) Parse(src string, opts Options) ([]*Comment, error) {
	p.init()

	raws, err := scan(src, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	var comments []*Comment
	for i, rc := range raws {
		if rc.skip {
			continue
		}

		c, err := p.parseComment(rc, opts)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		// Code runs until the next comment, skipped or not.
		codeEnd := len(src)
		if i+1 < len(raws) {
			codeEnd = raws[i+1].start
		}
		c.Code = strings.TrimSpace(src[rc.end:codeEnd])

		comments = append(comments, c)
	}
	return comments, nil
}

func (p *Parser) parseComment(rc rawComment, opts Options) (*Comment, error) {
	lines := strings.Split(rc.body, "\n")
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\r")
		lines[i] = _gutterRx.ReplaceAllLiteralString(l, "")
	}

	var (
		descLines []string
		tagLines  [][]string // first entry of each is "@name"
	)
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " \t")
		if strings.HasPrefix(trimmed, "@") {
			name := trimmed[1:]
			if idx := strings.IndexAny(name, " \t"); idx >= 0 {
				name = name[:idx]
			}
			if len(name) == 0 {
				return nil, fmt.Errorf("line %d: tag name expected after '@'", rc.line+i)
			}
			rest := strings.TrimLeft(trimmed[1+len(name):], " \t")
			tagLines = append(tagLines, []string{name, rest})
			continue
		}

		if n := len(tagLines); n > 0 {
			tagLines[n-1] = append(tagLines[n-1], l)
		} else {
			descLines = append(descLines, l)
		}
	}

	c := Comment{Line: rc.line}

	if full := strings.TrimSpace(strings.Join(descLines, "\n")); len(full) > 0 {
		rendered, err := p.render(full, opts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rc.line, err)
		}
		desc := Description{
			Full:    full,
			Summary: full,
			HTML:    rendered,
		}
		if idx := _paragraphRx.FindStringIndex(full); idx != nil {
			desc.Summary = full[:idx[0]]
			desc.Body = strings.TrimSpace(full[idx[1]:])
		}
		c.Description = &desc
	}

	if len(tagLines) > 0 {
		c.Tags = make([]*Tag, 0, len(tagLines))
	}
	for _, tl := range tagLines {
		tag := Tag{
			Type:   tl[0],
			String: strings.TrimSpace(strings.Join(tl[1:], "\n")),
		}
		if tag.Type == "description" {
			rendered, err := p.render(tag.String, opts)
			if err != nil {
				return nil, fmt.Errorf("line %d: @description: %w", rc.line, err)
			}
			tag.Full = tag.String
			tag.HTML = rendered
		}
		c.Tags = append(c.Tags, &tag)
	}

	return &c, nil
}

func (p *Parser) render(text string, opts Options) (string, error) {
	if opts.Raw {
		return text, nil
	}

	var buff bytes.Buffer
	if err := p.md.Convert([]byte(text), &buff); err != nil {
		return "", errtrace.Wrap(err)
	}
	return buff.String(), nil
}
