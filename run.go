package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"braces.dev/errtrace"
	"go.abhg.dev/docpack/internal/docdata"
	"go.abhg.dev/docpack/internal/extract"
	"go.abhg.dev/docpack/internal/fsread"
	"golang.org/x/sync/errgroup"
)

// Extractor extracts documentation from a source file.
type Extractor interface {
	Extract(context.Context, *docdata.Source) (*docdata.Source, error)
}

var _ Extractor = (*extract.Extractor)(nil)

// FileReader reads source files.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

var _ FileReader = (*fsread.Reader)(nil)

// Runner extracts documentation from a list of files.
//
// In terms of code organization,
// Runner's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Runner struct {
	Log       *log.Logger
	Files     FileReader
	Extractor Extractor

	// Maximum number of files to process at the same time.
	// Values less than 1 mean one at a time.
	Jobs int

	// Directory that displayed paths are relative to.
	WorkDir string
}

// Run reads and extracts documentation from the given files.
// Results are returned in the same order as the paths.
func (r *Runner) Run(ctx context.Context, paths []string) ([]*docdata.Source, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Jobs, 1))

	sources := make([]*docdata.Source, len(paths))
	for i, abs := range r.AbsPaths(paths) {
		g.Go(func() error {
			src, err := r.extract(ctx, abs)
			if err != nil {
				return errtrace.Wrap(err)
			}
			sources[i] = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return sources, nil
}

// AbsPaths resolves paths against the working directory.
func (r *Runner) AbsPaths(paths []string) []string {
	abs := make([]string, len(paths))
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(r.WorkDir, p)
		}
		abs[i] = filepath.Clean(p)
	}
	return abs
}

func (r *Runner) extract(ctx context.Context, abs string) (*docdata.Source, error) {
	display, err := filepath.Rel(r.WorkDir, abs)
	if err != nil {
		display = abs
	}

	r.Log.Printf("Extracting %v", display)
	bs, err := r.Files.ReadFile(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", display, err)
	}

	return errtrace.Wrap2(r.Extractor.Extract(ctx, &docdata.Source{
		Path:         filepath.ToSlash(display),
		AbsolutePath: abs,
		Content:      string(bs),
		Attrs:        make(map[string]string),
	}))
}
