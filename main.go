// docpack extracts documentation from the doc comments of source files.
//
// For each file, docpack finds JSDoc-style comments,
// records their tags, expands @example and @example-file tags
// into examples, and writes the result as JSON.
//
// Run 'docpack -h' for usage.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"braces.dev/errtrace"
	"go.abhg.dev/docpack/internal/docdata"
	"go.abhg.dev/docpack/internal/errdefer"
	"go.abhg.dev/docpack/internal/example"
	"go.abhg.dev/docpack/internal/extract"
	"go.abhg.dev/docpack/internal/fsread"
	"go.abhg.dev/docpack/internal/jsdoc"
	"go.abhg.dev/docpack/internal/watch"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	// Getwd reports the directory that displayed paths are relative to.
	// Defaults to os.Getwd.
	Getwd func() (string, error)

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("docpack: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return fmt.Errorf("create debug log: %w", err)
	}
	defer errdefer.Run(&err, closeDebug)
	debugLog := log.New(debugw, "", 0)

	getwd := cmd.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	workDir, err := getwd()
	if err != nil {
		return errtrace.Wrap(err)
	}

	examples := new(example.Parser)
	if opts.Selector != example.DefaultSelector {
		examples, err = example.New(opts.Selector)
		if err != nil {
			return fmt.Errorf("bad example selector %q: %w", opts.Selector, err)
		}
	}
	examples.DetectLang = opts.DetectLang

	parserOpts, err := opts.parserOptions()
	if err != nil {
		return errtrace.Wrap(err)
	}

	files := new(fsread.Reader)
	pass := func(ctx context.Context) ([]string, error) {
		deps := new(extract.DependencySet)
		runner := Runner{
			Log:   debugLog,
			Files: files,
			Extractor: &extract.Extractor{
				Comments:      new(jsdoc.Parser),
				Examples:      examples,
				Files:         files,
				Deps:          deps,
				Raw:           opts.Raw,
				ParserOptions: parserOpts,
				Log:           debugLog,
			},
			Jobs:    opts.Jobs,
			WorkDir: workDir,
		}

		sources, err := runner.Run(ctx, opts.Files)
		watched := watchedPaths(runner.AbsPaths(opts.Files), deps, err)
		if err != nil {
			return watched, errtrace.Wrap(err)
		}
		return watched, cmd.writeOutput(opts.Out, sources)
	}

	if !opts.Watch {
		_, err := pass(context.Background())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := watch.Watcher{Log: cmd.log}
	return errtrace.Wrap(w.Watch(ctx, pass))
}

// watchedPaths lists the files a run depends on:
// the inputs, the example files that were read,
// and the example file that could not be found, if that failed the run.
func watchedPaths(inputs []string, deps *extract.DependencySet, runErr error) []string {
	watched := append(inputs, deps.Paths()...)

	var notFound *extract.ExampleFileNotFoundError
	if errors.As(runErr, &notFound) {
		watched = append(watched, notFound.File)
	}
	return watched
}

func (cmd *mainCmd) writeOutput(out string, sources []*docdata.Source) (err error) {
	w := cmd.Stdout
	if out != "-" {
		f, createErr := os.Create(out)
		if createErr != nil {
			return errtrace.Wrap(createErr)
		}
		defer errdefer.Close(&err, f)
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sources); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
