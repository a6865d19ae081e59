package command

import (
	"context"
	"fmt"
)

// Registry collects commands before a parser is built from them. It does not
// check for name collisions; that happens once, when the parser is built.
type Registry struct {
	commands []*Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a command.
func (r *Registry) Add(cmd *Command) {
	r.commands = append(r.commands, cmd)
}

// Register creates and registers a command in one step.
func (r *Registry) Register(prefix, name string, handler Handler, opts ...Option) (*Command, error) {
	cmd, err := New(prefix, name, handler, opts...)
	if err != nil {
		return nil, err
	}
	r.Add(cmd)
	return cmd, nil
}

// Merge appends every command of other, keeping its order.
func (r *Registry) Merge(other *Registry) {
	r.commands = append(r.commands, other.commands...)
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Reply answers through the context value bound under the command's context
// parameter. It fails when that value cannot reply.
func Reply(ctx context.Context, args Args, contextParam, text string) error {
	r, ok := args.Replier(contextParam)
	if !ok {
		return fmt.Errorf("context value %q cannot reply", contextParam)
	}
	return r.Reply(ctx, text)
}
