package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Build errors.
var (
	ErrNoCommands     = errors.New("cannot build parser without commands")
	ErrInvalidPrefix  = errors.New("whitespace in prefixes is not supported")
	ErrInvalidPacking = errors.New("invalid packing pair")
	ErrUnknownType    = errors.New("no converter for parameter type")
)

// Error kinds reported by Kind.
const (
	KindSyntax            = "syntax"
	KindMissingArgument   = "missing_argument"
	KindRedundantArgument = "redundant_argument"
	KindAmbiguousCommand  = "ambiguous_command"
	KindCommandNotFound   = "command_not_found"
	KindHandler           = "handler"
)

// SyntaxError reports malformed input: unbalanced packing, a value that does
// not convert to its declared type, and the like.
type SyntaxError struct {
	Msg   string
	Input string
	// Pos is the byte offset in Input the error points at, or -1.
	Pos int
	// Param is set when the error came from converting a parameter value.
	Param string
	Err   error
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Msg)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Pos < 0 || e.Input == "" {
		return sb.String()
	}

	sb.WriteString(": ")
	indent := utf8.RuneCountInString(sb.String())
	sb.WriteString(e.Input)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", indent))

	// Mark the rune at Pos and its neighbours.
	at := utf8.RuneCountInString(e.Input[:min(e.Pos, len(e.Input))])
	n := utf8.RuneCountInString(e.Input)
	for i := 0; i < n; i++ {
		if i >= at-1 && i <= at+1 {
			sb.WriteByte('^')
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// MissingArgumentError reports a required parameter that received no value.
type MissingArgumentError struct {
	Param string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %q", e.Param)
}

// RedundantArgumentError reports a value the command has no slot for.
// Position is 1-based over all supplied values.
type RedundantArgumentError struct {
	Position int
	Value    string
}

func (e *RedundantArgumentError) Error() string {
	return fmt.Sprintf("redundant argument on position %d (%q)", e.Position, e.Value)
}

// AmbiguousCommandError is returned by New when two commands under the same
// prefix share a name.
type AmbiguousCommandError struct {
	Prefix string
	Name   string
}

func (e *AmbiguousCommandError) Error() string {
	return fmt.Sprintf("there is another command under %q with the name %q", e.Prefix, e.Name)
}

// CommandNotFoundError reports a prefixed message naming no known command.
// Suggestion holds the closest registered name, if any was close enough.
type CommandNotFoundError struct {
	Prefix     string
	Name       string
	Suggestion string
}

func (e *CommandNotFoundError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("cannot find command %q", e.Name)
	}
	return fmt.Sprintf("cannot find command %q (did you mean %q?)", e.Name, e.Suggestion)
}

// Kind classifies err into one of the Kind constants. Errors that are not
// parser errors are reported as KindHandler; nil yields "".
func Kind(err error) string {
	var (
		syntaxErr    *SyntaxError
		missingErr   *MissingArgumentError
		redundantErr *RedundantArgumentError
		ambiguousErr *AmbiguousCommandError
		notFoundErr  *CommandNotFoundError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &syntaxErr):
		return KindSyntax
	case errors.As(err, &missingErr):
		return KindMissingArgument
	case errors.As(err, &redundantErr):
		return KindRedundantArgument
	case errors.As(err, &ambiguousErr):
		return KindAmbiguousCommand
	case errors.As(err, &notFoundErr):
		return KindCommandNotFound
	default:
		return KindHandler
	}
}
