package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/docpack/internal/extract"
	"go.abhg.dev/docpack/internal/iotest"
)

func TestMainCmd_help(t *testing.T) {
	t.Parallel()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"-h"})
	assert.Zero(t, exitCode, "-h should have zero status code")
}

func TestMainCmd_version(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: &buff,
		Stderr: iotest.Writer(t),
	}).Run([]string{"-version"})
	assert.Zero(t, exitCode, "-version should have zero status code")

	assert.Contains(t, buff.String(), "docpack")
	assert.Contains(t, buff.String(), _version)
}

func TestMainCmd_unknownFlag(t *testing.T) {
	t.Parallel()

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"--this-flag-does-not-exist"})
	assert.NotZero(t, exitCode, "unknown flag should have non-zero status code")
}

// writeFiles writes the given files relative to dir.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

func TestMainCmd_extract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/add.js": "/**\n" +
			" * Math helpers.\n" +
			" * @module math\n" +
			" */\n" +
			"\n" +
			"/**\n" +
			" * Adds numbers.\n" +
			" * @example-file ../examples/add.html\n" +
			" */\n" +
			"function add(a, b) { return a + b; }\n",
		"src/empty.js":       "\n",
		"examples/add.html": `<example name="basic" lang="js">add(1, 2)</example>`,
	})

	var stdout bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: &stdout,
		Stderr: iotest.Writer(t),
		Getwd:  func() (string, error) { return dir, nil },
	}).Run([]string{"-debug", "src/add.js", "src/empty.js"})
	require.Zero(t, exitCode, "expected success")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got), "invalid JSON:\n%s", stdout.String())
	require.Len(t, got, 2)

	assert.Equal(t, "src/add.js", got[0]["path"])
	assert.Equal(t, filepath.Join(dir, "src", "add.js"), got[0]["absolutePath"])
	assert.Equal(t, map[string]any{"module": "math"}, got[0]["attrs"])
	assert.Equal(t, []any{
		map[string]any{
			"content":     "",
			"description": "Math helpers.",
			"attrs":       map[string]any{"module": "math"},
			"examples":    []any{},
		},
		map[string]any{
			"content":     "function add(a, b) { return a + b; }",
			"description": "Adds numbers.",
			"attrs":       map[string]any{},
			"examples": []any{
				map[string]any{
					"content": "add(1, 2)",
					"lang":    "JavaScript",
					"attrs": map[string]any{
						"name": "basic",
						"lang": "js",
					},
				},
			},
		},
	}, got[0]["blocks"])

	assert.Equal(t, "src/empty.js", got[1]["path"])
	assert.NotContains(t, got[1], "blocks")
}

func TestMainCmd_outFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"foo.js": "/** @since 1.0 */\nfoo();\n",
	})
	out := filepath.Join(dir, "out.json")

	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
		Getwd:  func() (string, error) { return dir, nil },
	}).Run([]string{"-out", out, "-raw", "foo.js"})
	require.Zero(t, exitCode, "expected success")

	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"since": "1.0"`)
}

func TestMainCmd_missingExampleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"foo.js": "foo();\n/**\n * @example-file ./missing.txt\n */\n",
	})

	var stderr bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &stderr,
		Getwd:  func() (string, error) { return dir, nil },
	}).Run([]string{"foo.js"})
	assert.NotZero(t, exitCode)
	assert.Contains(t, stderr.String(),
		`docpack: example file "./missing.txt" not found in foo.js (line 2)`)
}

func TestMainCmd_invalidDoc(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"foo.js": "/** unterminated",
	})

	var stderr bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &stderr,
		Getwd:  func() (string, error) { return dir, nil },
	}).Run([]string{"foo.js"})
	assert.NotZero(t, exitCode)
	assert.Contains(t, stderr.String(), "invalid doc comment in foo.js")
}

func TestMainCmd_badSelector(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: &stderr,
	}).Run([]string{"-selector", "[[[", "foo.js"})
	assert.NotZero(t, exitCode)
	assert.Contains(t, stderr.String(), "bad example selector")
}

func TestWatchedPaths(t *testing.T) {
	t.Parallel()

	deps := new(extract.DependencySet)
	deps.AddDependency("/src/ex.html")

	notFound := fmt.Errorf("extract: %w", &extract.ExampleFileNotFoundError{
		Tag:  "missing.html",
		File: "/src/missing.html",
		Path: "foo.js",
		Line: 1,
	})

	tests := []struct {
		desc string
		err  error
		want []string
	}{
		{
			desc: "success",
			want: []string{"/src/foo.js", "/src/ex.html"},
		},
		{
			desc: "other error",
			err:  errors.New("great sadness"),
			want: []string{"/src/foo.js", "/src/ex.html"},
		},
		{
			desc: "missing example file",
			err:  notFound,
			want: []string{"/src/foo.js", "/src/ex.html", "/src/missing.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got := watchedPaths([]string{"/src/foo.js"}, deps, tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}
