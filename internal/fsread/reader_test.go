package fsread

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []byte
		want string
	}{
		{desc: "empty", give: []byte{}, want: ""},
		{desc: "plain", give: []byte("hello"), want: "hello"},
		{
			desc: "utf8 bom",
			give: []byte("\xef\xbb\xbfhello"),
			want: "hello",
		},
		{
			desc: "utf16le bom",
			give: []byte{0xff, 0xfe, 'h', 0, 'i', 0},
			want: "hi",
		},
		{
			desc: "utf16be bom",
			give: []byte{0xfe, 0xff, 0, 'h', 0, 'i'},
			want: "hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "file.txt")
			require.NoError(t, os.WriteFile(path, tt.give, 0o644))

			got, err := new(Reader).ReadFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReader_ReadFile_notExist(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := new(Reader).ReadFile(context.Background(), path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReader_ReadFile_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := new(Reader).ReadFile(ctx, "reader_test.go")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_ReadFile_fs(t *testing.T) {
	t.Parallel()

	r := Reader{
		FS: fstest.MapFS{
			"src/foo.js": {Data: []byte("foo();")},
		},
	}

	got, err := r.ReadFile(context.Background(), "/src/foo.js")
	require.NoError(t, err)
	assert.Equal(t, "foo();", string(got))

	_, err = r.ReadFile(context.Background(), "/src/bar.js")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
