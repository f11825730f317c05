// Package flagvalue provides flag.Value implementations
// for docpack's command line.
package flagvalue

import (
	"flag"
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// Getter is a constraint satisfied by pointers to types
// which implement flag.Getter.
type Getter[T any] interface {
	*T
	flag.Getter
}

// List is a flag.Getter that accepts a flag any number of times,
// collecting the values in order.
// Each value is parsed by the element type's Set method.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice to accept repeated instances of a flag.
//
//	flag.Var(flagvalue.ListOf(&opts), "parser", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the values recorded so far
// as a slice of the underlying type.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String returns a semicolon separated list of the values in this list.
func (lv *List[T, PT]) String() string {
	var sb strings.Builder
	for i, v := range *lv {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprint(&sb, PT(&v))
	}
	return sb.String()
}

// Set parses a single flag argument and appends it to the list.
// The list is left unchanged if the argument is invalid.
func (lv *List[T, PT]) Set(s string) error {
	var v T
	if err := PT(&v).Set(s); err != nil {
		return errtrace.Wrap(err)
	}
	*lv = append(*lv, v)
	return nil
}
