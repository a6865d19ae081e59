package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/pikachuaaaa/RPGBot/internal/command"
	"github.com/pikachuaaaa/RPGBot/internal/convert"
)

// entry is a command plus the key its name is matched under.
type entry struct {
	cmd *command.Command
	key string
}

// table holds commands grouped by prefix, in registration order.
type table struct {
	byPrefix map[string][]entry
	prefixes []string
	commands []*command.Command
}

// buildTable groups commands by prefix and rejects same-prefix name
// collisions under the configured case rule. The first collision found in
// registration order is reported.
func buildTable(cmds []*command.Command, caseSensitive bool, converters *convert.Registry) (*table, error) {
	t := &table{byPrefix: make(map[string][]entry)}

	for _, cmd := range cmds {
		if cmd == nil {
			return nil, errors.New("nil command in registration list")
		}
		if cmd.Prefix == "" || strings.IndexFunc(cmd.Prefix, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, cmd.Prefix)
		}
		if err := cmd.Validate(); err != nil {
			return nil, err
		}
		cmd = cmd.Clone()
		for _, p := range cmd.Params {
			if !converters.Has(p.Type) {
				return nil, fmt.Errorf("%w: command %q parameter %q has type %s",
					ErrUnknownType, cmd.FullName(), p.Name, p.Type)
			}
		}

		key := nameKey(cmd.Name, caseSensitive)
		existing, ok := t.byPrefix[cmd.Prefix]
		if !ok {
			t.prefixes = append(t.prefixes, cmd.Prefix)
		}
		for _, e := range existing {
			if e.key == key {
				return nil, &AmbiguousCommandError{Prefix: cmd.Prefix, Name: cmd.Name}
			}
		}

		t.byPrefix[cmd.Prefix] = append(existing, entry{cmd: cmd, key: key})
		t.commands = append(t.commands, cmd)
	}

	return t, nil
}

// nameKey normalizes a command name or a joined token run for comparison.
func nameKey(name string, caseSensitive bool) string {
	key := strings.Join(strings.Fields(name), " ")
	if !caseSensitive {
		key = strings.ToLower(key)
	}
	return key
}
