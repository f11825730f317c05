package extract

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/docpack/internal/docdata"
	"go.abhg.dev/docpack/internal/example"
	"go.abhg.dev/docpack/internal/fsread"
	"go.abhg.dev/docpack/internal/jsdoc"
	"golang.org/x/sync/errgroup"
)

// Tags with special handling.
const (
	DescriptionTag = "description"
	ExampleTag     = "example"
	ExampleFileTag = "example-file"
)

// CommentParser finds doc comments in source text.
type CommentParser interface {
	Parse(src string, opts jsdoc.Options) ([]*jsdoc.Comment, error)
}

var _ CommentParser = (*jsdoc.Parser)(nil)

// ExampleParser parses examples out of text.
// It returns an empty slice if the text holds no examples.
type ExampleParser interface {
	Parse(text string) []*docdata.Example
}

var _ ExampleParser = (*example.Parser)(nil)

// FileReader reads example files.
//
// If a file does not exist,
// the returned error must match [fs.ErrNotExist].
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

var _ FileReader = (*fsread.Reader)(nil)

// DependencyTracker is told about files that a Source depends on.
type DependencyTracker interface {
	AddDependency(path string)
}

// Extractor extracts documentation from the doc comments of a Source.
//
// The zero value is ready to use.
// An Extractor may be used for multiple Sources concurrently
// if its collaborators allow it.
// Those shipped with docpack do.
type Extractor struct {
	// Comments finds doc comments.
	// Defaults to a [jsdoc.Parser].
	Comments CommentParser

	// Examples parses @example tags and example files.
	// Defaults to an [example.Parser].
	Examples ExampleParser

	// Files reads @example-file targets.
	// Defaults to an [fsread.Reader].
	Files FileReader

	// Deps is told about every example file that was read.
	// Optional.
	Deps DependencyTracker

	// Raw keeps @description tags as written
	// instead of rendering them to HTML.
	// Setting ParserOptions.Raw has the same effect.
	Raw bool

	// ParserOptions are passed to the CommentParser.
	// Raw is set if either it or the field above is set.
	ParserOptions jsdoc.Options

	// Log receives debug messages.
	// Optional.
	Log *log.Logger
}

// Extract extracts documentation from src.
//
// It returns a copy of src with Attrs and Blocks filled.
// src itself is not modified.
// If src has no content, it is returned as-is.
//
// All @example-file targets are read concurrently.
// The first failure aborts extraction.
// Failures to parse comments are reported as [*InvalidDocError],
// and missing example files as [*ExampleFileNotFoundError].
func (e *Extractor) Extract(ctx context.Context, src *docdata.Source) (*docdata.Source, error) {
	if len(strings.TrimSpace(src.Content)) == 0 {
		return src, nil
	}

	opts := e.ParserOptions
	opts.Raw = opts.Raw || e.Raw
	comments, err := e.comments().Parse(src.Content, opts)
	if err != nil {
		return nil, errtrace.Wrap(&InvalidDocError{Path: src.Path, Err: err})
	}
	e.logger().Printf("[%v] Found %d doc comments", src.Path, len(comments))

	out := src.Clone()
	if len(comments) == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	x := extraction{
		Extractor: e,
		ctx:       ctx,
		group:     g,
		src:       out,
		raw:       opts.Raw,
	}

	out.Blocks = make([]*docdata.CodeBlock, 0, len(comments))
	builders := make([]*blockBuilder, len(comments))
	for i, c := range comments {
		b := x.buildBlock(c, i == 0)
		builders[i] = b
		out.Blocks = append(out.Blocks, b.block)
	}

	if err := g.Wait(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	for _, b := range builders {
		b.flatten()
	}
	return out, nil
}

func (e *Extractor) comments() CommentParser {
	if e.Comments != nil {
		return e.Comments
	}
	return _defaultCommentParser
}

func (e *Extractor) examples() ExampleParser {
	if e.Examples != nil {
		return e.Examples
	}
	return _defaultExampleParser
}

func (e *Extractor) files() FileReader {
	if e.Files != nil {
		return e.Files
	}
	return _defaultFileReader
}

func (e *Extractor) deps() DependencyTracker {
	if e.Deps != nil {
		return e.Deps
	}
	return nopTracker{}
}

func (e *Extractor) logger() *log.Logger {
	if e.Log != nil {
		return e.Log
	}
	return _discardLog
}

var (
	_defaultCommentParser = new(jsdoc.Parser)
	_defaultExampleParser = new(example.Parser)
	_defaultFileReader    = new(fsread.Reader)
	_discardLog           = log.New(io.Discard, "", 0)
)

// extraction holds the state of a single Extract call.
type extraction struct {
	*Extractor

	ctx   context.Context // cancelled on first failure
	group *errgroup.Group // pending example file reads
	src   *docdata.Source
	raw   bool
}

func (x *extraction) buildBlock(c *jsdoc.Comment, first bool) *blockBuilder {
	b := blockBuilder{block: docdata.NewCodeBlock(c.Code)}
	if c.Description != nil {
		b.block.Description = c.Description.Full
	}

	for _, tag := range c.Tags {
		if first {
			x.src.Attrs[tag.Type] = tag.String
		}

		switch tag.Type {
		case DescriptionTag:
			if x.raw {
				b.block.Attrs[DescriptionTag] = tag.Full
			} else {
				b.block.Attrs[DescriptionTag] = tag.HTML
			}

		case ExampleTag:
			examples := x.examples().Parse(tag.String)
			if len(examples) == 0 {
				examples = []*docdata.Example{docdata.LiteralExample(tag.String)}
			}
			b.add(examples)

		case ExampleFileTag:
			x.readExampleFile(c, tag.String, b.reserve())

		default:
			b.block.Attrs[tag.Type] = tag.String
		}
	}

	return &b
}

// readExampleFile schedules a read of the example file named by an
// @example-file tag on comment c.
// The parsed examples are stored in slot.
func (x *extraction) readExampleFile(c *jsdoc.Comment, name string, slot *exampleSlot) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(x.src.AbsolutePath), path)
	}
	path = filepath.Clean(path)

	x.group.Go(func() error {
		bs, err := x.files().ReadFile(x.ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errtrace.Wrap(&ExampleFileNotFoundError{
					Tag:  name,
					File: path,
					Path: x.src.Path,
					Line: c.Line,
					Err:  err,
				})
			}
			return errtrace.Wrap(err)
		}

		x.deps().AddDependency(path)
		slot.examples = x.examples().Parse(string(bs))
		x.logger().Printf("[%v] Read %d examples from %v", x.src.Path, len(slot.examples), path)
		return nil
	})
}

// blockBuilder builds a CodeBlock.
//
// Examples are collected into slots, one per @example or @example-file tag,
// so that example files read concurrently
// keep the position of the tag that referenced them.
type blockBuilder struct {
	block *docdata.CodeBlock
	slots []*exampleSlot
}

type exampleSlot struct {
	// Written at most once, by the goroutine that owns the slot,
	// and read only after all goroutines have finished.
	examples []*docdata.Example
}

func (b *blockBuilder) add(examples []*docdata.Example) {
	b.slots = append(b.slots, &exampleSlot{examples: examples})
}

func (b *blockBuilder) reserve() *exampleSlot {
	s := new(exampleSlot)
	b.slots = append(b.slots, s)
	return s
}

// flatten moves the examples from all slots into the CodeBlock, in order.
func (b *blockBuilder) flatten() {
	for _, s := range b.slots {
		b.block.Examples = append(b.block.Examples, s.examples...)
	}
	b.slots = nil
}
