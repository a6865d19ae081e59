// Package commands provides the CLI commands for rpgbot.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pikachuaaaa/RPGBot/internal/config"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
	"github.com/pikachuaaaa/RPGBot/pkg/types"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	printLogs bool
	logLevel  string
	logToFile bool
	workDir   string
	envFile   string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "rpgbot",
	Short: "rpgbot - a chat bot for tabletop role-playing",
	Long: `rpgbot answers chat commands such as "!rpg roll 2d6" or
"!rpg attack goblin weapon: axe".

Run 'rpgbot run' to chat from the terminal, or 'rpgbot serve' to accept
messages over HTTP and WebSocket.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		if envFile != "" {
			return godotenv.Load(envFile)
		}
		// A missing .env is fine.
		_ = godotenv.Load()
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&printLogs, "print-logs", false, "Print logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR), overrides the config")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-file", false, "Also write JSON logs to the state directory")
	rootCmd.PersistentFlags().StringVar(&workDir, "directory", "", "Working directory")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file instead of .env")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("rpgbot %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetWorkDir returns the working directory from flag or current directory.
func GetWorkDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return os.Getwd()
}

// initLogging configures the logger from flags and config. Logs go to
// stderr only with --print-logs or when force is set.
func initLogging(cfg *types.Config, force bool) {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)
	logCfg.Pretty = true
	logCfg.Output = io.Discard
	if printLogs || force {
		logCfg.Output = os.Stderr
	}
	if logToFile {
		paths := config.GetPaths()
		if err := paths.EnsurePaths(); err == nil {
			logCfg.LogToFile = true
			logCfg.LogDir = paths.LogPath()
		}
	}
	logging.Init(logCfg)
}
