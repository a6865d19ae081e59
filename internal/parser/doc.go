// Package parser turns free-form chat messages into command invocations.
//
// A message is processed in fixed stages:
//
//  1. Tokenize: split on whitespace, emit ":" and "," as their own tokens
//     and keep packed spans such as (1, 2) or "two words" whole.
//  2. The first token is the prefix. Messages whose prefix is not
//     registered are ignored without error.
//  3. Keyword arguments (name:value) are taken off the end of the tokens.
//  4. The remaining tokens are matched against command names, longest
//     run first, so "attack heavy 5" prefers "attack heavy" over "attack".
//  5. Comma-joined runs of what is left become list literals.
//  6. Values are bound to the command's parameters, defaults applied and
//     every supplied value converted to its declared type.
//
// When no command matches, a CommandNotFoundError carries the closest
// registered name if it is similar enough.
//
// # Example Usage
//
//	reg := command.NewRegistry()
//	reg.Register("!rpg", "ping!", func(ctx context.Context, args command.Args) error {
//		return command.Reply(ctx, args, "ctx", "pong!")
//	})
//
//	p, err := parser.New(reg.Commands(), parser.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	handled, err := p.Parse(ctx, "!rpg ping!", msg)
//
// A built Parser never changes; it can be shared by any number of
// goroutines.
package parser
