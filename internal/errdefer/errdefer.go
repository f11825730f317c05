// Package errdefer runs cleanup that must happen at the end of a function
// but whose failure must still reach the caller.
//
// Both helpers are meant for defer statements in functions
// with a named error return.
package errdefer

import (
	"errors"
	"io"
)

// Close closes closer and joins its error into *err.
func Close(err *error, closer io.Closer) {
	Run(err, closer.Close)
}

// Run calls fn and joins its error into *err.
func Run(err *error, fn func() error) {
	*err = errors.Join(*err, fn())
}
