package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/pikachuaaaa/RPGBot/internal/convert"
)

// DefaultContextParam is the name the context value is bound under unless a
// command asks for another one.
const DefaultContextParam = "ctx"

// Handler runs a command with its bound arguments. The context value passed
// to the parser is available under the command's ContextParam.
type Handler func(ctx context.Context, args Args) error

// Replier is implemented by context values that can answer the message a
// command was parsed from.
type Replier interface {
	Reply(ctx context.Context, text string) error
}

// Param describes one declared command parameter.
type Param struct {
	Name       string
	Type       convert.Type
	HasDefault bool
	Default    any
}

// Required returns a parameter without a default.
func Required(name string, t convert.Type) Param {
	return Param{Name: name, Type: t}
}

// Optional returns a parameter that falls back to def when not supplied.
func Optional(name string, t convert.Type, def any) Param {
	return Param{Name: name, Type: t, HasDefault: true, Default: def}
}

// Command is a registered chat command. It is immutable once created.
type Command struct {
	Prefix       string
	Name         string
	Description  string
	ContextParam string
	Params       []Param
	Handler      Handler
}

// Option configures a command at creation time.
type Option func(*Command)

// WithParams declares the command's parameters in positional order.
func WithParams(params ...Param) Option {
	return func(c *Command) {
		c.Params = append(c.Params, params...)
	}
}

// WithContextParam changes the name the context value is bound under.
func WithContextParam(name string) Option {
	return func(c *Command) {
		c.ContextParam = name
	}
}

// WithDescription sets the help text shown in command listings.
func WithDescription(desc string) Option {
	return func(c *Command) {
		c.Description = desc
	}
}

// New creates a command. Parameters follow the rules of a function
// signature: names are unique, and required parameters come first.
func New(prefix, name string, handler Handler, opts ...Option) (*Command, error) {
	c := &Command{
		Prefix:       prefix,
		Name:         name,
		ContextParam: DefaultContextParam,
		Handler:      handler,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on an invalid declaration. It is meant for
// commands declared in package-level tables.
func MustNew(prefix, name string, handler Handler, opts ...Option) *Command {
	c, err := New(prefix, name, handler, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Clone returns a copy of c. Changing the copy's fields or parameters does
// not affect c.
func (c *Command) Clone() *Command {
	out := *c
	out.Params = slices.Clone(c.Params)
	return &out
}

// Validate checks the declaration. New calls it; commands built as struct
// literals are checked when a parser is built from them.
func (c *Command) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("command %q: %w", c.FullName(), err)
	}
	return nil
}

func (c *Command) validate() error {
	if c.Prefix == "" {
		return errors.New("prefix is empty")
	}
	if strings.IndexFunc(c.Prefix, unicode.IsSpace) >= 0 {
		return errors.New("prefix contains whitespace")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is empty")
	}
	if c.Handler == nil {
		return errors.New("handler is nil")
	}
	if c.ContextParam == "" {
		return errors.New("context parameter name is empty")
	}

	seen := map[string]bool{c.ContextParam: true}
	sawOptional := false
	for _, p := range c.Params {
		if p.Name == "" {
			return errors.New("parameter name is empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true

		if p.HasDefault {
			sawOptional = true
		} else if sawOptional {
			return fmt.Errorf("required parameter %q follows an optional one", p.Name)
		}
	}
	return nil
}

// FullName returns the prefix and name as typed in chat.
func (c *Command) FullName() string {
	return c.Prefix + " " + c.Name
}

// RequiredCount is the number of parameters without a default.
func (c *Command) RequiredCount() int {
	n := 0
	for _, p := range c.Params {
		if !p.HasDefault {
			n++
		}
	}
	return n
}

// OptionalCount is the number of parameters with a default.
func (c *Command) OptionalCount() int {
	return len(c.Params) - c.RequiredCount()
}

// Param returns the parameter declared under name.
func (c *Command) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Usage renders a one-line usage string, e.g. "!rpg roll <dice> [times=1]".
func (c *Command) Usage() string {
	var sb strings.Builder
	sb.WriteString(c.FullName())
	for _, p := range c.Params {
		if p.HasDefault {
			fmt.Fprintf(&sb, " [%s=%v]", p.Name, p.Default)
		} else {
			fmt.Fprintf(&sb, " <%s>", p.Name)
		}
	}
	return sb.String()
}

// Invoke runs the handler with the given bound arguments.
func (c *Command) Invoke(ctx context.Context, args Args) error {
	return c.Handler(ctx, args)
}
