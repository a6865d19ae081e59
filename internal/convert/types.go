package convert

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a declared parameter type.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
	KindNamed
)

// String returns the declarative spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Type is a declared parameter type. Lists carry their element type in Elem
// (nil means string). Named types refer to a converter registered under Name.
type Type struct {
	Kind Kind
	Elem *Type
	Name string
}

// Scalar type values.
var (
	String = Type{Kind: KindString}
	Int    = Type{Kind: KindInt}
	Float  = Type{Kind: KindFloat}
	Bool   = Type{Kind: KindBool}
)

// ListOf returns the type "list of elem".
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// List returns a list type with unspecified (string) elements.
func List() Type {
	return Type{Kind: KindList}
}

// Named returns a type resolved through the converter registered as name.
func Named(name string) Type {
	return Type{Kind: KindNamed, Name: name}
}

// Element returns the element type of a list, defaulting to String.
func (t Type) Element() Type {
	if t.Elem == nil {
		return String
	}
	return *t.Elem
}

// key is the converter table key for scalar and named types.
func (t Type) key() string {
	if t.Kind == KindNamed {
		return strings.ToLower(t.Name)
	}
	return t.Kind.String()
}

// String renders the type the same way ParseType reads it.
func (t Type) String() string {
	switch t.Kind {
	case KindList:
		if t.Elem == nil {
			return "list"
		}
		return "list[" + t.Elem.String() + "]"
	case KindNamed:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// ParseType reads a declarative type such as "int", "list", "list[int]" or
// "list[list[float]]". An empty string means string. Any other bare word is
// taken as a named converter; whether it exists is checked when converting.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "string", "str":
		return String, nil
	case "int", "integer":
		return Int, nil
	case "float", "number":
		return Float, nil
	case "bool", "boolean":
		return Bool, nil
	case "list":
		return List(), nil
	}

	if strings.HasPrefix(s, "list[") {
		if !strings.HasSuffix(s, "]") {
			return Type{}, fmt.Errorf("invalid type %q: missing closing bracket", s)
		}
		elem, err := ParseType(s[len("list[") : len(s)-1])
		if err != nil {
			return Type{}, err
		}
		return ListOf(elem), nil
	}

	if strings.ContainsAny(s, "[] \t") {
		return Type{}, fmt.Errorf("invalid type %q", s)
	}
	return Named(s), nil
}
