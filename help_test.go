package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    Help
		wantErr string
	}{
		{give: "usage"},
		{give: "default"},
		{give: "config"},
		{give: "parser"},
		{give: "examples"},
		{
			give:    "not-a-topic",
			wantErr: `unknown help topic "not-a-topic": valid values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.give.Write(io.Discard)
			if len(tt.wantErr) > 0 {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHelp_Set(t *testing.T) {
	t.Parallel()

	var h Help
	require.NoError(t, h.Set("true"))
	assert.Equal(t, DefaultHelp, h)

	require.NoError(t, h.Set(" Parser "))
	assert.Equal(t, Help("parser"), h)

	assert.ErrorContains(t, h.Set("nope"), "valid values")
	assert.Equal(t, Help("parser"), h, "unchanged on error")
}

func TestHelp_usageIsFirstLine(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, UsageHelp.Write(&buff))
	assert.Equal(t, "USAGE: docpack [OPTIONS] FILE ...\n", buff.String())
}
