package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pikachuaaaa/RPGBot/internal/config"
	"github.com/pikachuaaaa/RPGBot/internal/rpg"
	"github.com/pikachuaaaa/RPGBot/pkg/types"
)

var (
	configGlobal bool
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rpgbot configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config to .rpgbot/rpgbot.json in the working directory,
or to the global config directory with --global.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configGlobal, "global", false, "Write the global config instead of the project config")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

// starterConfig is the config written by "config init".
func starterConfig() *types.Config {
	return &types.Config{
		LogLevel: config.DefaultLogLevel,
		Prefix:   rpg.Prefix,
		Server: &types.ServerConfig{
			Hostname: config.DefaultHostname,
			Port:     config.DefaultPort,
		},
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var path string
	if configGlobal {
		path = config.GlobalConfigPath()
	} else {
		dir, err := GetWorkDir(workDir)
		if err != nil {
			return err
		}
		path = config.ProjectConfigPath(dir)
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(starterConfig(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
