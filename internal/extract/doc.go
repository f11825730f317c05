// Package extract is the core of docpack.
// It turns the doc comments of a [docdata.Source]
// into [docdata.CodeBlock]s with attributes and examples.
//
// The [Extractor] relies on four collaborators:
//
//   - a [CommentParser] to find doc comments in the source text
//   - an [ExampleParser] to parse <example> elements
//   - a [FileReader] to load files referenced by @example-file tags
//   - a [DependencyTracker] told about every example file that was read
//
// Each of these defaults to the implementation shipped with docpack.
//
// Most tags on a comment are recorded in the block's Attrs.
// Three tags are special:
//
//	@description  block description, rendered to HTML unless Raw is set
//	@example      inline example text
//	@example-file path to a file holding examples,
//	              relative to the directory of the source file
//
// Tags on the first comment of a file are also recorded
// on the Source itself.
package extract
