package commands

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/pikachuaaaa/RPGBot/internal/command"
	"github.com/pikachuaaaa/RPGBot/internal/config"
	"github.com/pikachuaaaa/RPGBot/internal/event"
	"github.com/pikachuaaaa/RPGBot/internal/gateway"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
	"github.com/pikachuaaaa/RPGBot/internal/parser"
	"github.com/pikachuaaaa/RPGBot/internal/rpg"
	"github.com/pikachuaaaa/RPGBot/pkg/types"
)

// bot wires the parser, the gateways and the event bus together.
type bot struct {
	workDir    string
	config     *types.Config
	game       *rpg.Game
	loader     *command.TemplateLoader
	bus        *event.Bus
	dispatcher *gateway.Dispatcher
}

// newBot loads the configuration and builds the first parser. forceLogs
// sends logs to stderr even without --print-logs.
func newBot(forceLogs bool) (*bot, error) {
	dir, err := GetWorkDir(workDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	initLogging(cfg, forceLogs)

	b := &bot{
		workDir: dir,
		config:  cfg,
		game:    rpg.NewGame(nil),
		loader:  command.NewTemplateLoader(afero.NewOsFs(), dir, cfg),
		bus:     event.NewBus(),
	}

	p, err := b.build()
	if err != nil {
		b.bus.Close()
		return nil, err
	}
	b.dispatcher = gateway.NewDispatcher(p, b.bus)

	logging.Info().
		Str("workDir", dir).
		Strs("prefixes", p.Prefixes()).
		Int("commands", len(p.Commands())).
		Msg("rpgbot ready")

	return b, nil
}

// build compiles the built-in and template commands into a new parser.
func (b *bot) build() (*parser.Parser, error) {
	reg := command.NewRegistry()
	for _, cmd := range b.game.Commands(b.commands) {
		reg.Add(cmd)
	}

	templates, err := b.loader.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to load template commands: %w", err)
	}
	reg.Merge(templates)

	cfg, err := config.ParserConfig(b.config)
	if err != nil {
		return nil, err
	}
	if err := rpg.RegisterConverters(cfg.Converters); err != nil {
		return nil, err
	}

	return parser.New(reg.Commands(), cfg)
}

// commands lists the active parser's commands for !rpg help.
func (b *bot) commands() []*command.Command {
	if b.dispatcher == nil {
		return nil
	}
	return b.dispatcher.Parser().Commands()
}

// reloader watches the template command directory unless disabled.
func (b *bot) reloader() (*gateway.Reloader, error) {
	if b.config.Watcher != nil && b.config.Watcher.Disabled {
		return nil, nil
	}
	return gateway.NewReloader(b.loader.Dir(), b.dispatcher, b.bus, b.build)
}

func (b *bot) Close() {
	if err := b.bus.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close event bus")
	}
	logging.Close()
}
