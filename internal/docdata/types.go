// Package docdata defines the documentation tree produced by docpack:
// a [Source] per input file, holding a [CodeBlock] per doc comment,
// each of which holds zero or more [Example]s.
package docdata

import "maps"

// Source is a single input file under documentation.
type Source struct {
	// Path to the file, relative to the directory docpack runs in.
	// Used in messages.
	Path string `json:"path"`

	// AbsolutePath is the absolute path to the file on disk.
	// Relative example-file references resolve against its directory.
	AbsolutePath string `json:"absolutePath"`

	// Content is the raw text of the file.
	Content string `json:"-"`

	// Attrs holds the tags found on the first doc comment of the file.
	Attrs map[string]string `json:"attrs,omitempty"`

	// Blocks holds a block per doc comment in source order.
	//
	// Blocks is nil if the file has no doc comments,
	// and non-nil otherwise.
	Blocks []*CodeBlock `json:"blocks,omitempty"`
}

// Clone returns a shallow copy of the Source
// with its own Attrs map.
// Blocks are shared with the original.
func (s *Source) Clone() *Source {
	out := *s
	out.Attrs = make(map[string]string, len(s.Attrs))
	maps.Copy(out.Attrs, s.Attrs)
	return &out
}

// CodeBlock is a single doc comment and the code that follows it.
type CodeBlock struct {
	// Content is the code following the comment.
	Content string `json:"content"`

	// Description is the free text of the comment, if any.
	Description string `json:"description,omitempty"`

	// Attrs maps tag names to their values.
	// If a tag is repeated, the last value wins.
	Attrs map[string]string `json:"attrs"`

	// Examples attached to this block in the order they were declared.
	Examples []*Example `json:"examples"`
}

// NewCodeBlock builds an empty CodeBlock for the given code.
func NewCodeBlock(content string) *CodeBlock {
	return &CodeBlock{
		Content:  content,
		Attrs:    make(map[string]string),
		Examples: []*Example{},
	}
}

// Example is an illustrative snippet attached to a CodeBlock.
//
// Literal examples hold only Content.
// Structured examples, parsed from <example> elements,
// also record the element's attributes.
type Example struct {
	Content string            `json:"content"`
	Lang    string            `json:"lang,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`

	structured bool
}

// LiteralExample builds an Example holding the given text verbatim.
func LiteralExample(content string) *Example {
	return &Example{Content: content}
}

// StructuredExample builds an Example parsed from markup.
// attrs may be nil.
func StructuredExample(content, lang string, attrs map[string]string) *Example {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Example{
		Content:    content,
		Lang:       lang,
		Attrs:      attrs,
		structured: true,
	}
}

// IsLiteral reports whether this example holds raw, unparsed text.
func (e *Example) IsLiteral() bool {
	return !e.structured
}
