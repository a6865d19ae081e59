package parser

import (
	"fmt"

	"github.com/pikachuaaaa/RPGBot/internal/command"
)

// bind maps positional and keyword values onto cmd's parameters, applies
// defaults, converts every supplied value to its declared type and adds the
// context value under the command's context parameter.
func (p *Parser) bind(cmd *command.Command, positional []string, keywords []KeywordArg, contextValue any) (command.Args, error) {
	required := cmd.RequiredCount()
	capacity := required + cmd.OptionalCount()
	supplied := len(positional) + len(keywords)
	ordered := textualOrder(keywords)

	if supplied < required {
		return nil, &MissingArgumentError{Param: lastRequired(cmd)}
	}
	if len(positional) > capacity {
		return nil, &RedundantArgumentError{Position: capacity + 1, Value: positional[capacity]}
	}
	if supplied > capacity {
		return nil, &RedundantArgumentError{
			Position: capacity + 1,
			Value:    ordered[capacity-len(positional)].String(),
		}
	}

	raw := make(map[string]string, capacity)
	for i, value := range positional {
		raw[cmd.Params[i].Name] = value
	}

	// Unknown names, names already bound by position and repeated names
	// all count as values the command has no slot for.
	for i, kw := range ordered {
		_, declared := cmd.Param(kw.Name)
		_, taken := raw[kw.Name]
		if !declared || taken {
			return nil, &RedundantArgumentError{
				Position: len(positional) + i + 1,
				Value:    kw.String(),
			}
		}
		raw[kw.Name] = kw.Value
	}

	args := make(command.Args, len(cmd.Params)+1)
	for _, param := range cmd.Params {
		text, ok := raw[param.Name]
		if !ok {
			if !param.HasDefault {
				return nil, &MissingArgumentError{Param: param.Name}
			}
			args[param.Name] = param.Default
			continue
		}

		value, err := p.converters.Convert(text, param.Type)
		if err != nil {
			return nil, &SyntaxError{
				Msg:   fmt.Sprintf("invalid value for %q", param.Name),
				Input: text,
				Pos:   -1,
				Param: param.Name,
				Err:   err,
			}
		}
		args[param.Name] = value
	}

	args[cmd.ContextParam] = contextValue
	return args, nil
}

func lastRequired(cmd *command.Command) string {
	name := ""
	for _, p := range cmd.Params {
		if !p.HasDefault {
			name = p.Name
		}
	}
	return name
}
