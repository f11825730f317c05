package jsdoc

import (
	"fmt"
	"strings"
)

// rawComment is a block comment located in the source
// but not yet parsed.
type rawComment struct {
	body string // text between the opener and "*/"
	line int    // line of the opener

	// Byte offsets of the opener and just past the closing "*/".
	start, end int

	// Comments that bound the code of the preceding comment
	// but do not produce a Comment themselves.
	skip bool
}

// scan locates block comments in src.
// Comment openers inside string literals and line comments are ignored.
func scan(src string, opts Options) ([]rawComment, error) {
	var (
		comments []rawComment
		line     = 1
	)
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\n':
			line++

		case c == '"', c == '\'', c == '`':
			end, lines := skipString(src, i)
			i, line = end, line+lines

		case c == '/' && strings.HasPrefix(src[i:], "//"):
			idx := strings.IndexByte(src[i:], '\n')
			if idx < 0 {
				return comments, nil
			}
			i += idx - 1 // stop before the newline so it's counted

		case c == '/' && strings.HasPrefix(src[i:], "/*"):
			idx := strings.Index(src[i+2:], "*/")
			if idx < 0 {
				return nil, fmt.Errorf("line %d: unterminated comment", line)
			}
			end := i + 2 + idx + 2
			text := src[i:end]

			if rc, ok := classify(text, opts); ok {
				rc.line = line
				rc.start = i
				rc.end = end
				comments = append(comments, rc)
			}

			line += strings.Count(text, "\n")
			i = end - 1
		}
	}
	return comments, nil
}

// classify decides what to do with the block comment in text,
// which includes its "/*" and "*/" delimiters.
// It reports false for comments that should be treated as code.
func classify(text string, opts Options) (rawComment, bool) {
	var rc rawComment
	switch {
	case strings.HasPrefix(text, "/*!"):
		// License banners.
		rc.skip = true
		return rc, true

	case strings.HasPrefix(text, "/**") && len(text) > len("/**/"):
		rc.body = text[3 : len(text)-2]

	case opts.SingleStar:
		rc.body = text[2 : len(text)-2]

	default:
		return rc, false
	}

	for _, p := range opts.SkipPrefixes {
		if strings.HasPrefix(rc.body, p) {
			rc.skip = true
			break
		}
	}
	return rc, true
}

// skipString skips past the string literal starting at src[start],
// returning the offset of its closing quote
// and the number of newlines consumed.
//
// Single and double quoted strings end at an unescaped newline,
// in which case the returned offset is just before the newline.
// Template literals may nest inside "${...}" substitutions.
func skipString(src string, start int) (end, lines int) {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			if i+1 < len(src) && src[i+1] == '\n' {
				lines++
			}
			i++
		case '\n':
			if quote != '`' {
				return i - 1, lines
			}
			lines++
		case '$':
			if quote == '`' && strings.HasPrefix(src[i:], "${") {
				end, n := skipSubstitution(src, i+2)
				i, lines = end, lines+n
			}
		case quote:
			return i, lines
		}
	}
	return len(src), lines
}

// skipSubstitution skips past the expression of a template literal
// substitution that starts at src[start], just after the "${".
// It returns the offset of the closing "}"
// and the number of newlines consumed.
func skipSubstitution(src string, start int) (end, lines int) {
	var depth int
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '\n':
			lines++
		case '"', '\'', '`':
			end, n := skipString(src, i)
			i, lines = end, lines+n
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i, lines
			}
			depth--
		}
	}
	return len(src), lines
}
