// Package command declares the chat commands the parser dispatches to.
//
// A Command is a prefix, a possibly multi-word name, an ordered list of typed
// parameters and a handler. Parameters follow the rules of a function
// signature: names are unique, required parameters come before optional ones,
// and the context value the message arrived with is bound under a separate
// context parameter ("ctx" unless overridden).
//
//	reg := command.NewRegistry()
//	reg.Register("!rpg", "roll", rollHandler,
//		command.WithParams(
//			command.Required("dice", convert.Int),
//			command.Optional("times", convert.Int, 1),
//		),
//	)
//
// Handlers receive the bound Args and answer through the context value when it
// implements Replier:
//
//	func rollHandler(ctx context.Context, args command.Args) error {
//		return command.Reply(ctx, args, command.DefaultContextParam,
//			fmt.Sprintf("rolling d%d", args.Int("dice")))
//	}
//
// # Template Commands
//
// Commands can also be declared without code, either in the config file or as
// markdown files under .rpgbot/command. Nested paths become multi-word names,
// so attack/heavy.md is "!rpg attack heavy". Markdown commands can include YAML
// frontmatter:
//
//	---
//	description: Swing with everything
//	params:
//	  - name: target
//	  - name: power
//	    type: int
//	    default: 10
//	---
//	${target} takes ${power} damage
//
// The body is a Go template. ${name} and $name refer to parameters and
// var_<name> to configured variables; inside {{ }} actions use .name instead.
// Templates can also use .args, .vars, .env and the functions env, default,
// trim, upper, lower, replace, split, join and sum. Whatever the template
// renders is sent back as the reply.
package command
