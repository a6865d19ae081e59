package parser

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/pikachuaaaa/RPGBot/internal/command"
	"github.com/pikachuaaaa/RPGBot/internal/convert"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
)

// PackingPair is a pair of runes that groups the text between them into a
// single token. Open and Close may be the same rune, as with quotes.
type PackingPair struct {
	Open  rune
	Close rune
}

// DefaultPackingPairs returns {}, (), [] and "".
func DefaultPackingPairs() []PackingPair {
	return []PackingPair{
		{Open: '{', Close: '}'},
		{Open: '(', Close: ')'},
		{Open: '[', Close: ']'},
		{Open: '"', Close: '"'},
	}
}

// Config holds parser configuration.
type Config struct {
	// CaseSensitive controls command name matching and collision checks.
	CaseSensitive bool
	// PackingPairs defaults to DefaultPackingPairs when nil.
	PackingPairs []PackingPair
	// Converters defaults to convert.NewRegistry when nil. It is cloned
	// when the parser is built.
	Converters *convert.Registry
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		CaseSensitive: false,
		PackingPairs:  DefaultPackingPairs(),
		Converters:    convert.NewRegistry(),
	}
}

// Parser turns chat messages into command invocations. A built parser is
// read-only and safe for concurrent use.
type Parser struct {
	table         *table
	caseSensitive bool
	packing       map[rune]rune
	converters    *convert.Registry
}

// New builds a parser over copies of cmds. It fails if cmds is empty, if a prefix
// contains whitespace, if a parameter type has no converter, or with an
// *AmbiguousCommandError if two commands under one prefix share a name.
func New(cmds []*command.Command, cfg Config) (*Parser, error) {
	if len(cmds) == 0 {
		return nil, ErrNoCommands
	}

	pairs := cfg.PackingPairs
	if pairs == nil {
		pairs = DefaultPackingPairs()
	}
	packing, err := packingTable(pairs)
	if err != nil {
		return nil, err
	}

	converters := convert.NewRegistry()
	if cfg.Converters != nil {
		converters = cfg.Converters.Clone()
	}

	t, err := buildTable(cmds, cfg.CaseSensitive, converters)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("commands", len(t.commands)).
		Strs("prefixes", t.prefixes).
		Bool("caseSensitive", cfg.CaseSensitive).
		Msg("command parser built")

	return &Parser{
		table:         t,
		caseSensitive: cfg.CaseSensitive,
		packing:       packing,
		converters:    converters,
	}, nil
}

func packingTable(pairs []PackingPair) (map[rune]rune, error) {
	packing := make(map[rune]rune, len(pairs))
	for _, pair := range pairs {
		for _, r := range []rune{pair.Open, pair.Close} {
			if r == 0 || r == ':' || r == ',' || unicode.IsSpace(r) {
				return nil, fmt.Errorf("%w: %q%q", ErrInvalidPacking, pair.Open, pair.Close)
			}
		}
		if _, dup := packing[pair.Open]; dup {
			return nil, fmt.Errorf("%w: %q opens more than one pair", ErrInvalidPacking, pair.Open)
		}
		packing[pair.Open] = pair.Close
	}
	return packing, nil
}

// Invocation is a matched command with its bound arguments, ready to run.
// Command is a copy of the registered command.
type Invocation struct {
	Command *command.Command
	Args    command.Args
}

// Invoke runs the command handler.
func (inv *Invocation) Invoke(ctx context.Context) error {
	if err := inv.Command.Invoke(ctx, inv.Args); err != nil {
		return fmt.Errorf("%s: %w", inv.Command.FullName(), err)
	}
	return nil
}

// Match parses text without running the command. It returns false and no
// error when text does not start with a registered prefix.
func (p *Parser) Match(text string, contextValue any) (*Invocation, bool, error) {
	prefix := p.leadingToken(text)
	candidates, ok := p.table.byPrefix[prefix]
	if !ok {
		return nil, false, nil
	}

	tokens, err := p.Tokenize(text)
	if err != nil {
		return nil, true, err
	}

	// The prefix is always the first token.
	keywords, leading := splitKeywordArgs(tokens[1:])

	cmd, rest := p.resolve(leading, candidates)
	if cmd == nil {
		name := strings.Join(leading, " ")
		return nil, true, &CommandNotFoundError{
			Prefix:     prefix,
			Name:       name,
			Suggestion: p.suggest(name, candidates),
		}
	}

	positional := formatPositionals(rest)

	logging.Debug().
		Str("prefix", prefix).
		Str("command", cmd.Name).
		Strs("positional", positional).
		Int("keywords", len(keywords)).
		Msg("command resolved")

	args, err := p.bind(cmd, positional, keywords, contextValue)
	if err != nil {
		return nil, true, err
	}
	return &Invocation{Command: cmd.Clone(), Args: args}, true, nil
}

// Parse parses text and runs the matched command with contextValue bound
// under its context parameter. It returns false and no error when text does
// not start with a registered prefix. Any other failure is returned as one of
// the parser error types, or as the handler's error wrapped with the command
// name.
func (p *Parser) Parse(ctx context.Context, text string, contextValue any) (bool, error) {
	inv, ok, err := p.Match(text, contextValue)
	if !ok || err != nil {
		return ok, err
	}
	return true, inv.Invoke(ctx)
}

// Commands returns copies of every command in registration order. A built
// parser never sees changes made to them.
func (p *Parser) Commands() []*command.Command {
	out := make([]*command.Command, len(p.table.commands))
	for i, cmd := range p.table.commands {
		out[i] = cmd.Clone()
	}
	return out
}

// Prefixes returns the registered prefixes in registration order.
func (p *Parser) Prefixes() []string {
	out := make([]string, len(p.table.prefixes))
	copy(out, p.table.prefixes)
	return out
}

// CaseSensitive reports whether command names are matched case-sensitively.
func (p *Parser) CaseSensitive() bool {
	return p.caseSensitive
}
