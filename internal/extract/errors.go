package extract

import "fmt"

// InvalidDocError indicates that the doc comments of a file
// could not be parsed.
type InvalidDocError struct {
	Path string // file that failed to parse
	Err  error  // parser error
}

func (e *InvalidDocError) Error() string {
	return fmt.Sprintf("invalid doc comment in %s: %v", e.Path, e.Err)
}

func (e *InvalidDocError) Unwrap() error {
	return e.Err
}

// ExampleFileNotFoundError indicates that the file referenced
// by an @example-file tag does not exist.
type ExampleFileNotFoundError struct {
	Tag  string // value of the @example-file tag
	File string // absolute path the tag resolved to
	Path string // file containing the tag
	Line int    // line of the comment containing the tag

	Err error // matches fs.ErrNotExist
}

func (e *ExampleFileNotFoundError) Error() string {
	return fmt.Sprintf("example file %q not found in %s (line %d)", e.Tag, e.Path, e.Line)
}

func (e *ExampleFileNotFoundError) Unwrap() error {
	return e.Err
}
