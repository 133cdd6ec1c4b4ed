// Package registry maps stable names to capability constructors.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

var (
	ErrExists      = errors.New("name already registered")
	ErrNil         = errors.New("registered value is nil")
	ErrInvalidName = errors.New("invalid registry name")
)

// Registry stores values by stable name. It is filled at startup and read
// afterwards; it is not safe for concurrent registration.
type Registry[T any] struct {
	kind  string
	items map[string]T
}

// New creates an empty registry. kind labels errors ("backend", "mitigator").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Register adds value under name.
func (r *Registry[T]) Register(name string, value T) error {
	if isNil(value) {
		return fmt.Errorf("%w: %s %q", ErrNil, r.kind, name)
	}
	if !ValidName(name) {
		return fmt.Errorf("%w: %s %q", ErrInvalidName, r.kind, name)
	}
	if _, ok := r.items[name]; ok {
		return fmt.Errorf("%w: %s %q", ErrExists, r.kind, name)
	}
	r.items[name] = value
	return nil
}

// Resolve returns the value registered under name.
func (r *Registry[T]) Resolve(name string) (T, bool) {
	v, ok := r.items[name]
	return v, ok
}

// Names returns registered names in ascending order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kind returns the label given to New.
func (r *Registry[T]) Kind() string {
	return r.kind
}

// ValidName accepts lowercase letters, digits and single '.', '-', '_'
// separators that neither lead nor trail.
func ValidName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}
	lastSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if (i == 0 || i == len(name)-1) && isSep {
			return false
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
