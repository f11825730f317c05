package iotest

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeT struct {
	*testing.T

	Buffer bytes.Buffer
}

func (t *fakeT) Logf(msg string, args ...interface{}) {
	// println to make sure it ends with a newline
	fmt.Fprintln(&t.Buffer, fmt.Sprintf(msg, args...))
}

func TestWriter(t *testing.T) {
	t.Parallel()

	fakeT := fakeT{T: t}
	w := Writer(&fakeT)
	n, err := io.WriteString(w, "foo\n")
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "foo\n", fakeT.Buffer.String())
}

func TestLogger(t *testing.T) {
	t.Parallel()

	fakeT := fakeT{T: t}
	Logger(&fakeT).Printf("hello %v", "world")
	assert.Equal(t, "hello world\n", fakeT.Buffer.String())
}
