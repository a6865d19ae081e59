package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pikachuaaaa/RPGBot/internal/gateway"
)

var errCommandFailed = errors.New("command failed")

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <message...>",
	Short: "Send a single message to the bot",
	Long: `Dispatch one chat message and print the replies. Exits non-zero
when the message fails to parse or the command fails.

Examples:
  rpgbot parse '!rpg roll 2d6+1'
  rpgbot parse --json '!rpg party [Aria, Brom] level: 3'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the dispatch result as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	b, err := newBot(false)
	if err != nil {
		return err
	}
	defer b.Close()

	text := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	var res gateway.Result
	if parseJSON {
		res = b.dispatcher.Dispatch(context.Background(), gateway.NewMessage(gateway.GatewayConsole, text, nil))
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		res = gateway.NewConsole(b.dispatcher, nil, out, "").Handle(context.Background(), text)
		if res.Ignored != "" {
			color.New(color.FgHiYellow).Fprintf(out, "ignored (%s)\n", res.Ignored)
		}
	}

	if res.Error != "" {
		return errCommandFailed
	}
	return nil
}
