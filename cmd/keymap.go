package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newKeymapCmd())
}

type keyDump struct {
	Position string `json:"position"`
	Keycode  string `json:"keycode"`
}

type layerDump struct {
	Layer string    `json:"layer"`
	Keys  []keyDump `json:"keys"`
}

// newKeymapCmd creates the 'dilemma keymap' command.
func newKeymapCmd() *cobra.Command {
	var layers layerFlag
	var features keymapFlags

	cmd := cli.NewStandardCommand("keymap [layer...]", "Show the keymap layers")
	cmd.Long = `Render the keymap layers as keyboard grids.

Transparent keys are shown as ▽ and unbound keys as ·. The home row mods,
pointer layer-taps and pointing device settings of the config apply, and can
be overridden with flags.

Layers are picked by name (base, numeral, symbols, navigation, pointer) as
arguments or with --layer. Use --json for machine-readable output.`

	cmd.Flags().Var(&layers, "layer", "Layer to show (repeatable, default all)")
	features.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if err := layers.Set(arg); err != nil {
				return err
			}
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		features.apply(cmd, cfg)
		table := keymap.Build(cfg.Keymap())

		if cli.GetOptions(cmd).JSONOutput {
			var out []layerDump
			for _, l := range layers.Selected() {
				d := layerDump{Layer: l.String()}
				for i, kc := range table.Layout(l) {
					d.Keys = append(d.Keys, keyDump{Position: keymap.Name(i), Keycode: kc.String()})
				}
				out = append(out, d)
			}
			data, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		t := theme.DefaultTheme
		for _, l := range layers.Selected() {
			fmt.Println(t.Header.Render(fmt.Sprintf("%s %s", theme.IconGear, strings.ToUpper(l.String()))))
			fmt.Println(renderLayout(table.Layout(l), nil))
			fmt.Println()
		}
		return nil
	}

	cmd.AddCommand(newKeymapMatrixCmd())

	return cmd
}

// newKeymapMatrixCmd creates the 'dilemma keymap matrix' command.
func newKeymapMatrixCmd() *cobra.Command {
	var duplicatesOnly bool
	var features keymapFlags

	cmd := cli.NewStandardCommand("matrix", "View a matrix of every keycode across the layers")
	cmd.Long = `Display a spreadsheet-style matrix showing where each keycode is bound on
each layer.

Keycodes bound more than once on the same layer are flagged as duplicates.

Use --duplicates to show only those rows.
Use --json for machine-readable output.`

	cmd.Flags().BoolVar(&duplicatesOnly, "duplicates", false, "Show only keycodes bound twice on a layer")
	features.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		features.apply(cmd, cfg)
		table := keymap.Build(cfg.Keymap())
		matrix := keymap.BuildMatrix(&table)

		if cli.GetOptions(cmd).JSONOutput {
			out, _ := json.MarshalIndent(matrix, "", "  ")
			fmt.Println(string(out))
			return nil
		}

		t := theme.DefaultTheme
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		header := []string{"KEYCODE"}
		for _, name := range matrix.LayerNames {
			header = append(header, strings.ToUpper(name))
		}
		header = append(header, "STATUS")
		fmt.Fprintln(w, t.Bold.Render(strings.Join(header, "\t")))

		sep := make([]string, len(header))
		for i := range sep {
			sep[i] = "─────"
		}
		fmt.Fprintln(w, t.Muted.Render(strings.Join(sep, "\t")))

		duplicateCount := 0
		sharedCount := 0
		for _, row := range matrix.Rows {
			if duplicatesOnly && !row.Duplicate {
				continue
			}

			cells := []string{t.Highlight.Render(row.Keycode)}
			for _, name := range matrix.LayerNames {
				val := "-"
				if positions, ok := row.Layers[name]; ok {
					val = strings.Join(positions, ",")
				}
				cells = append(cells, val)
			}

			var status string
			switch {
			case row.Duplicate:
				status = t.Warning.Render("⚠ DUPLICATE")
				duplicateCount++
			case len(row.Layers) > 1:
				status = t.Muted.Render("SHARED")
				sharedCount++
			default:
				status = t.Success.Render("✓")
			}
			cells = append(cells, status)

			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}

		w.Flush()

		fmt.Println()
		fmt.Printf("%s  Keycodes: %d  │  Duplicates: %d  │  Shared across layers: %d\n",
			t.Muted.Render("Summary:"),
			len(matrix.Rows),
			duplicateCount,
			sharedCount)

		return nil
	}

	return cmd
}
