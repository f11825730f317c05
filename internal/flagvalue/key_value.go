package flagvalue

import (
	"errors"
	"flag"
	"strings"
)

// KeyValue is a flag value in the form key=value.
// Everything after the first '=' is the value.
//
// Combine with [ListOf] for flags that may be repeated:
//
//	-parser raw=true -parser skipPrefixes=#
type KeyValue struct {
	Key   string
	Value string
}

var _ flag.Getter = (*KeyValue)(nil)

// Get returns a copy of the pair.
func (kv *KeyValue) Get() any { return *kv }

// String returns the pair in the form key=value,
// or an empty string if it hasn't been set.
func (kv *KeyValue) String() string {
	if len(kv.Key) == 0 {
		return ""
	}
	return kv.Key + "=" + kv.Value
}

// Set parses a key=value pair.
// The key must not be empty.
func (kv *KeyValue) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || len(key) == 0 {
		return errors.New("expected form 'key=value'")
	}
	kv.Key = key
	kv.Value = value
	return nil
}
