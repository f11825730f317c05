package jsdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Comment is a single doc comment found in a file.
type Comment struct {
	// Code following the comment, trimmed.
	Code string

	// Description is the free text before the first tag.
	// This is nil if the comment has no free text.
	Description *Description

	// Tags in the order they appear in the comment.
	Tags []*Tag

	// Line on which the comment starts, 1-indexed.
	Line int
}

// Description is the free text portion of a doc comment.
type Description struct {
	Full    string // entire description
	Summary string // first paragraph
	Body    string // everything after the first paragraph
	HTML    string // Markdown rendering of Full
}

// Tag is a single "@name value" annotation.
type Tag struct {
	// Type is the name of the tag without the leading "@".
	Type string

	// String is the value of the tag.
	// Continuation lines are joined with newlines.
	String string

	// Full and HTML are set only for "description" tags.
	// Full is the tag's text, and HTML its Markdown rendering.
	Full string
	HTML string
}

// Options configures a [Parser].
// The zero value is ready to use.
type Options struct {
	// Raw disables Markdown rendering.
	// HTML fields will hold the same text as their raw counterparts.
	Raw bool

	// SingleStar also treats "/* ... */" comments as doc comments.
	SingleStar bool

	// SkipPrefixes lists text prefixes which,
	// when found at the start of a comment's body,
	// cause that comment to be skipped.
	SkipPrefixes []string
}

// Set sets the option with the given name from a string.
// This allows options to be passed through from the command line.
//
// Recognized keys are "raw", "singleStar", and "skipPrefixes".
// skipPrefixes accepts a comma-separated list.
func (o *Options) Set(key, value string) error {
	switch key {
	case "raw", "singleStar":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
		if key == "raw" {
			o.Raw = b
		} else {
			o.SingleStar = b
		}

	case "skipPrefixes":
		o.SkipPrefixes = nil
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); len(p) > 0 {
				o.SkipPrefixes = append(o.SkipPrefixes, p)
			}
		}

	default:
		return fmt.Errorf("unknown option %q", key)
	}
	return nil
}
