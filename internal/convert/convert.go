// Package convert turns raw argument text into typed values.
//
// Conversion is driven by a Type (a tagged variant over string, int, float,
// bool, list-of-T and user-named types) and a Registry holding one converter
// per scalar or named type. Lists are handled by the registry itself: the
// bracketed text is split at top-level commas and every element is converted
// against the list's element type, recursively.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Func converts a single raw value.
type Func func(text string) (any, error)

// Registry maps scalar and named types to their converters.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry holding the built-in converters.
func NewRegistry() *Registry {
	return &Registry{
		funcs: map[string]Func{
			KindString.String(): parseString,
			KindInt.String():    parseInt,
			KindFloat.String():  parseFloat,
			KindBool.String():   parseBool,
		},
	}
}

// Register adds a converter for a named type. Names are case-insensitive and
// may not shadow a built-in or an already registered converter.
func (r *Registry) Register(name string, fn Func) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return errors.New("converter name is empty")
	}
	if fn == nil {
		return fmt.Errorf("converter %q is nil", name)
	}
	if key == KindList.String() {
		return fmt.Errorf("converter name %q is reserved", name)
	}
	if _, ok := r.funcs[key]; ok {
		return fmt.Errorf("converter %q already registered", name)
	}
	r.funcs[key] = fn
	return nil
}

// Has reports whether values of t can be converted.
func (r *Registry) Has(t Type) bool {
	if t.Kind == KindList {
		return r.Has(t.Element())
	}
	_, ok := r.funcs[t.key()]
	return ok
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	funcs := make(map[string]Func, len(r.funcs))
	for k, v := range r.funcs {
		funcs[k] = v
	}
	return &Registry{funcs: funcs}
}

// Convert converts text to a value of type t.
func (r *Registry) Convert(text string, t Type) (any, error) {
	if t.Kind == KindList {
		return r.convertList(text, t)
	}

	fn, ok := r.funcs[t.key()]
	if !ok {
		return nil, newError(t, text, "no converter registered")
	}

	v, err := fn(text)
	if err != nil {
		var convErr *Error
		if errors.As(err, &convErr) {
			return nil, convErr
		}
		return nil, newError(t, text, err.Error())
	}
	return v, nil
}

func (r *Registry) convertList(text string, t Type) (any, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return nil, newError(t, text, "expected a list such as [1, 2, 3]")
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return []any{}, nil
	}

	elems := splitTopLevel(inner)
	out := make([]any, 0, len(elems))
	for _, elem := range elems {
		v, err := r.Convert(strings.TrimSpace(elem), t.Element())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// splitTopLevel splits s on commas that are not nested inside brackets or
// double quotes.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	quoted := false
	start := 0

	for i, c := range s {
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[' || c == '(' || c == '{':
			depth++
		case c == ']' || c == ')' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func parseString(text string) (any, error) {
	opens := strings.HasPrefix(text, `"`)
	closes := strings.HasSuffix(text, `"`)
	switch {
	case opens && closes && len(text) >= 2:
		return text[1 : len(text)-1], nil
	case !opens && !closes:
		return text, nil
	default:
		return nil, newError(String, text, "mixed quoting")
	}
}

func parseInt(text string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, newError(Int, text, "")
	}
	return n, nil
}

func parseFloat(text string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, newError(Float, text, "")
	}
	return f, nil
}

func parseBool(text string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, newError(Bool, text, "")
	}
}
