package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pikachuaaaa/RPGBot/internal/gateway"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered commands",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print commands as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	b, err := newBot(false)
	if err != nil {
		return err
	}
	defer b.Close()

	out := cmd.OutOrStdout()
	cmds := b.dispatcher.Parser().Commands()

	if listJSON {
		infos := make([]gateway.CommandInfo, 0, len(cmds))
		for _, c := range cmds {
			infos = append(infos, gateway.DescribeCommand(c))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	usage := color.New(color.FgCyan, color.Bold)
	for _, c := range cmds {
		usage.Fprintln(out, c.Usage())
		if c.Description != "" {
			fmt.Fprintf(out, "    %s\n", c.Description)
		}
	}
	return nil
}
