package errdefer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc     string
		giveErr  error
		giveStub error
	}{
		{desc: "nil"},
		{
			desc:     "close fails",
			giveStub: errors.New("sadness"),
		},
		{
			desc:    "already failed",
			giveErr: errors.New("great sadness"),
		},
		{
			desc:     "both fail",
			giveErr:  errors.New("great sadness"),
			giveStub: errors.New("sadness"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			err := tt.giveErr
			Close(&err, stubCloser{err: tt.giveStub})
			if tt.giveErr == nil && tt.giveStub == nil {
				assert.NoError(t, err)
				return
			}
			if tt.giveErr != nil {
				assert.ErrorIs(t, err, tt.giveErr)
			}
			if tt.giveStub != nil {
				assert.ErrorIs(t, err, tt.giveStub)
			}
		})
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	var called bool
	var err error
	Run(&err, func() error {
		called = true
		return nil
	})
	assert.True(t, called)
	assert.NoError(t, err)
}

type stubCloser struct {
	err error
}

func (s stubCloser) Close() error {
	return s.err
}
