// Package fsread reads source and example files.
//
// Files are decoded to UTF-8 if they start with a UTF-8 or UTF-16
// byte order mark, and returned unchanged otherwise.
package fsread

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/docpack/internal/errdefer"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader reads files from the local filesystem.
//
// The zero value is ready to use.
type Reader struct {
	// FS, if set, is used instead of the local filesystem.
	// Absolute paths are looked up relative to the root of FS.
	FS fs.FS
}

// ReadFile reads the file at path.
//
// If the file does not exist, the returned error matches [fs.ErrNotExist].
func (r *Reader) ReadFile(ctx context.Context, path string) (_ []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	f, err := r.open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	dec := unicode.BOMOverride(transform.Nop)
	bs, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return nil, errtrace.Wrap(&fs.PathError{Op: "read", Path: path, Err: err})
	}
	return bs, nil
}

func (r *Reader) open(path string) (io.ReadCloser, error) {
	if r.FS == nil {
		return os.Open(path)
	}

	name := strings.TrimPrefix(filepath.ToSlash(path), "/")
	return r.FS.Open(name)
}
