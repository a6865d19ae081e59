package convert

import "fmt"

// Error reports text that could not be converted to the requested type.
type Error struct {
	Type   Type
	Text   string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot parse %q as %s value: %s", e.Text, e.Type, e.Reason)
	}
	return fmt.Sprintf("cannot parse %q as %s value", e.Text, e.Type)
}

func newError(t Type, text, reason string) *Error {
	return &Error{Type: t, Text: text, Reason: reason}
}
