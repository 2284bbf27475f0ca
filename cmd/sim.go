package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/dilemma/pkg/config"
	"github.com/grovetools/dilemma/pkg/logger"
	"github.com/grovetools/dilemma/pkg/script"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSimCmd())
}

// newSimCmd creates the 'dilemma sim' command.
// When invoked without subcommands, it launches the interactive simulator.
func newSimCmd() *cobra.Command {
	var watch bool
	var features keymapFlags

	cmd := cli.NewStandardCommand("sim", "Drive the simulated keyboard")
	cmd.Long = `Run the keymap on a simulated host.

When run without arguments, opens an interactive simulator: select keys on
the grid, press and release them, move the pointer and advance time while
the event log shows what the keyboard sends.

Use --watch to rebuild the keyboard whenever the config file changes.`

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the config file when it changes")
	features.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return errors.New("the interactive simulator requires a terminal; use 'dilemma sim run' for scripts")
		}
		cfg, path, err := loadConfigFile(cmd)
		if err != nil {
			return err
		}
		features.apply(cmd, cfg)

		watchPath := ""
		if watch {
			if watchPath = path; watchPath == "" {
				if watchPath, err = config.DefaultPath(); err != nil {
					return err
				}
			}
		}
		return runSimTUI(cmd.Context(), cfg, watchPath, func(c *config.Config) { features.apply(cmd, c) })
	}

	cmd.AddCommand(newSimRunCmd())

	return cmd
}

var errScriptsFailed = errors.New("scripts failed")

// newSimRunCmd creates the 'dilemma sim run' command.
func newSimRunCmd() *cobra.Command {
	var trace bool
	var features keymapFlags

	cmd := cli.NewStandardCommand("run <script.yaml>...", "Replay key event scripts and check their expectations")
	cmd.Long = `Replay YAML key event scripts on a fresh simulated keyboard each and report
every expectation that did not hold.

Use --trace to print the full simulator event log of each script.`
	cmd.Args = cobra.MinimumNArgs(1)

	cmd.Flags().BoolVar(&trace, "trace", false, "Print every simulator event")
	features.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		features.apply(cmd, cfg)
		opts := cfg.Host(logger.For("host"))
		log := cli.GetLogger(cmd)

		var results []*script.Result
		failed := 0
		for _, path := range args {
			s, err := script.LoadFile(path)
			if err != nil {
				return err
			}
			log.WithField("script", s.Name).Debug("Running script")
			res, err := script.Run(s, opts)
			if err != nil {
				return err
			}
			if !res.Passed() {
				failed++
			}
			results = append(results, res)
		}

		if cli.GetOptions(cmd).JSONOutput {
			if !trace {
				for _, r := range results {
					r.Events = nil
				}
			}
			out, _ := json.MarshalIndent(results, "", "  ")
			fmt.Println(string(out))
		} else {
			printResults(results, trace)
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d", errScriptsFailed, failed, len(results))
		}
		return nil
	}

	return cmd
}

func printResults(results []*script.Result, trace bool) {
	t := theme.DefaultTheme
	passed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
			fmt.Printf("%s %s\n", t.Success.Render(theme.IconSuccess), t.Bold.Render(r.Name))
		} else {
			fmt.Printf("%s %s\n", t.Error.Render(theme.IconError), t.Bold.Render(r.Name))
			for _, f := range r.Failures {
				fmt.Printf("     %s\n", t.Error.Render(f.String()))
			}
		}
		if trace {
			for _, e := range r.Events {
				fmt.Printf("     %s\n", t.Muted.Render(e.String()))
			}
		}
	}

	fmt.Println()
	fmt.Printf("%s  Passed: %d  │  Failed: %d\n", t.Muted.Render("Summary:"), passed, len(results)-passed)
}
