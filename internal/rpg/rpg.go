// Package rpg provides the bot's built-in role-playing commands.
package rpg

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/pikachuaaaa/RPGBot/internal/command"
	"github.com/pikachuaaaa/RPGBot/internal/convert"
)

// Prefix is the prefix of every built-in command.
const Prefix = "!rpg"

// Lister returns the commands currently known to the bot.
type Lister func() []*command.Command

// Game holds the random source shared by the dice commands.
type Game struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGame creates a game. A nil rng uses a randomly seeded source.
func NewGame(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Game{rng: rng}
}

// Roll rolls d and returns each die.
func (g *Game) Roll(d Dice) []int {
	g.mu.Lock()
	defer g.mu.Unlock()

	rolls := make([]int, d.Count)
	for i := range rolls {
		rolls[i] = g.rng.IntN(d.Sides) + 1
	}
	return rolls
}

// Commands returns the built-in commands. help lists whatever list returns,
// so it stays accurate after template commands are reloaded.
func (g *Game) Commands(list Lister) []*command.Command {
	return []*command.Command{
		command.MustNew(Prefix, "ping!", g.ping,
			command.WithDescription("Check that the bot is listening")),
		command.MustNew(Prefix, "roll", g.roll,
			command.WithDescription("Roll dice such as 2d6, with an optional modifier"),
			command.WithParams(
				command.Required("dice", DiceType),
				command.Optional("modifier", convert.Int, 0),
			)),
		command.MustNew(Prefix, "attack", g.attack,
			command.WithDescription("Attack a target"),
			command.WithParams(
				command.Required("target", convert.String),
				command.Optional("weapon", convert.String, "fists"),
			)),
		command.MustNew(Prefix, "attack heavy", g.attackHeavy,
			command.WithDescription("Attack a target with everything you have"),
			command.WithParams(
				command.Required("target", convert.String),
			)),
		command.MustNew(Prefix, "party", g.party,
			command.WithDescription("Form a party, e.g. party Aria, Brom, Cato"),
			command.WithParams(
				command.Required("members", convert.ListOf(convert.String)),
				command.Optional("level", convert.Int, 1),
			)),
		command.MustNew(Prefix, "help", helpHandler(list),
			command.WithDescription("List commands, or show one command's usage"),
			command.WithParams(
				command.Optional("command", convert.String, ""),
			)),
	}
}

func reply(ctx context.Context, args command.Args, format string, a ...any) error {
	return command.Reply(ctx, args, command.DefaultContextParam, fmt.Sprintf(format, a...))
}

func (g *Game) ping(ctx context.Context, args command.Args) error {
	return reply(ctx, args, "pong!")
}

func (g *Game) roll(ctx context.Context, args command.Args) error {
	dice, ok := args.Value("dice").(Dice)
	if !ok {
		return fmt.Errorf("unexpected dice value %v", args.Value("dice"))
	}
	modifier := args.Int("modifier")

	rolls := g.Roll(dice)
	total := modifier
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		total += r
		parts[i] = fmt.Sprint(r)
	}

	label := dice.String()
	if modifier != 0 {
		label += fmt.Sprintf("%+d", modifier)
	}
	return reply(ctx, args, "%s: [%s] = %d", label, strings.Join(parts, ", "), total)
}

func (g *Game) attack(ctx context.Context, args command.Args) error {
	damage := g.Roll(Dice{Count: 1, Sides: 6})[0]
	return reply(ctx, args, "You attack %s with %s for %d damage.",
		args.String("target"), args.String("weapon"), damage)
}

func (g *Game) attackHeavy(ctx context.Context, args command.Args) error {
	damage := 0
	for _, r := range g.Roll(Dice{Count: 2, Sides: 6}) {
		damage += r
	}
	return reply(ctx, args, "You put everything into a heavy blow: %s takes %d damage!",
		args.String("target"), damage)
}

func (g *Game) party(ctx context.Context, args command.Args) error {
	members := args.List("members")
	if len(members) == 0 {
		return reply(ctx, args, "A party needs at least one member.")
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = fmt.Sprint(m)
	}
	return reply(ctx, args, "Party of %d (level %d): %s",
		len(names), args.Int("level"), strings.Join(names, ", "))
}

func helpHandler(list Lister) command.Handler {
	return func(ctx context.Context, args command.Args) error {
		var cmds []*command.Command
		if list != nil {
			cmds = list()
		}

		if name := strings.Join(strings.Fields(args.String("command")), " "); name != "" {
			for _, cmd := range cmds {
				if strings.EqualFold(cmd.Name, name) {
					return reply(ctx, args, "%s\n%s", cmd.Usage(), cmd.Description)
				}
			}
			return reply(ctx, args, "No command named %q.", name)
		}

		var sb strings.Builder
		sb.WriteString("Available commands:")
		for _, cmd := range cmds {
			sb.WriteString("\n  ")
			sb.WriteString(cmd.Usage())
			if cmd.Description != "" {
				sb.WriteString(" - ")
				sb.WriteString(cmd.Description)
			}
		}
		return reply(ctx, args, "%s", sb.String())
	}
}
