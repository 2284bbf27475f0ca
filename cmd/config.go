package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/dilemma/pkg/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

// newConfigCmd creates the `config` command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("config", "Create and inspect the dilemma configuration")
	cmd.Long = `Provides tools to write, inspect and validate the dilemma config file.`

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSchemaCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := cli.NewStandardCommand("init [path]", "Write a config file with the default settings")
	cmd.Long = `Write the default configuration to path, or to dilemma.toml in the user
config directory. The format follows the extension (.toml, .yaml, .yml).`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := configFlag(cmd)
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}

		if err := config.Save(path, config.Default()); err != nil {
			return err
		}

		cli.GetLogger(cmd).WithField("path", path).Debug("Wrote default configuration")
		fmt.Println(theme.DefaultTheme.Success.Render(theme.IconSuccess + " Wrote " + path))
		return nil
	}

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var asYAML bool

	cmd := cli.NewStandardCommand("show", "Print the effective configuration")
	cmd.Long = `Print the configuration after defaults are applied, as TOML or with --yaml as
YAML. --json prints JSON.`
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of TOML")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfigFile(cmd)
		if err != nil {
			return err
		}

		if cli.GetOptions(cmd).JSONOutput {
			out, _ := json.MarshalIndent(cfg, "", "  ")
			fmt.Println(string(out))
			return nil
		}

		format := config.FormatTOML
		if asYAML {
			format = config.FormatYAML
		}
		data, err := config.Marshal(cfg, format)
		if err != nil {
			return err
		}

		source := "defaults"
		if path != "" {
			source = path
		}
		fmt.Fprintln(os.Stderr, theme.DefaultTheme.Muted.Render("# source: "+source))
		fmt.Print(string(data))
		return nil
	}

	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("schema", "Print the JSON schema of the config file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		out, err := json.MarshalIndent(config.Schema(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	return cmd
}
