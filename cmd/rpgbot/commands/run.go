package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pikachuaaaa/RPGBot/internal/gateway"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
)

var (
	runAuthor   string
	runNoPrompt bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Chat with the bot from the terminal",
	Long: `Read chat messages from stdin, one per line, and print the bot's replies.

Examples:
  rpgbot run
  echo '!rpg roll 2d6' | rpgbot run --no-prompt`,
	RunE: runConsole,
}

func init() {
	runCmd.Flags().StringVar(&runAuthor, "author", os.Getenv("USER"), "Author recorded on messages")
	runCmd.Flags().BoolVar(&runNoPrompt, "no-prompt", false, "Do not print the banner and prompt")
}

func runConsole(cmd *cobra.Command, args []string) error {
	b, err := newBot(false)
	if err != nil {
		return err
	}
	defer b.Close()

	reloader, err := b.reloader()
	if err != nil {
		logging.Warn().Err(err).Msg("hot reload disabled")
	}
	reloader.Start()
	defer reloader.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console := gateway.NewConsole(b.dispatcher, cmd.InOrStdin(), cmd.OutOrStdout(), runAuthor).
		WithPrompt(!runNoPrompt)
	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
