package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"remindd/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "remindd",
	Short: "Discord reminder bot with a daily notification schedule",
	Long: `remindd keeps a list of dated events in a TOML file, answers /add and
/show slash commands on Discord, and posts a summary of upcoming events
to a channel once a day at the configured notice time (JST).

Commands:
  serve     Run the bot and the notification scheduler
  add       Add an event to the events file
  show      Print upcoming events`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Path to config file")
}

// loadConfig reads and validates the configuration for any subcommand.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCLILogger builds a console logger for the local add/show commands.
// Only warnings surface there, so skipped store entries are still
// visible without drowning the command output.
func newCLILogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
