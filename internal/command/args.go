package command

import "fmt"

// Args is the set of bound arguments handed to a handler, keyed by
// parameter name. Values are already converted to their declared types.
type Args map[string]any

// Value returns the raw bound value.
func (a Args) Value(name string) any {
	return a[name]
}

// String returns a string argument, or "" if absent or of another type.
func (a Args) String(name string) string {
	switch v := a[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int returns an int argument, or 0 if absent or of another type.
func (a Args) Int(name string) int {
	switch v := a[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Float returns a float argument, or 0 if absent or of another type.
func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Bool returns a bool argument, or false if absent or of another type.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// List returns a list argument, or nil if absent or of another type.
func (a Args) List(name string) []any {
	v, _ := a[name].([]any)
	return v
}

// Replier returns the context value bound under name when it can reply.
func (a Args) Replier(name string) (Replier, bool) {
	r, ok := a[name].(Replier)
	return r, ok
}
