package cmd

import (
	"fmt"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/dilemma/pkg/config"
	"github.com/grovetools/dilemma/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = cli.NewStandardCommand("dilemma", "Keymap controller and host simulator for the Dilemma 3x5+2")

func init() {
	rootCmd.Long = `Inspect the Dilemma keymap, check its combos and replay key event
scripts against the simulated keyboard.

Settings are read from --config (a dilemma.toml or dilemma.yaml file), or
from dilemma.toml in the user config directory when present.`

	rootCmd.SilenceUsage = true
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// configFlag returns the --config value registered by the standard command.
func configFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// loadConfig resolves the config for cmd and applies its log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _, err := loadConfigFile(cmd)
	return cfg, err
}

// loadConfigFile is loadConfig that also returns the file the config came
// from, empty when the defaults were used.
func loadConfigFile(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(configFlag(cmd))
	if err != nil {
		return nil, "", err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, "", fmt.Errorf("invalid log level: %w", err)
	}

	log := cli.GetLogger(cmd)
	if path == "" {
		log.Debug("Using default configuration")
	} else {
		log.WithField("path", path).Debug("Loaded configuration")
	}
	return cfg, path, nil
}
