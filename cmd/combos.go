package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/dilemma/pkg/combo"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCombosCmd())
}

type comboDump struct {
	Name      string   `json:"name"`
	Trigger   string   `json:"trigger"`
	Result    string   `json:"result"`
	Kind      string   `json:"kind"`
	Reachable []string `json:"reachable"`
}

func dumpCombos(table *keymap.Table, combos []combo.Combo) []comboDump {
	out := make([]comboDump, 0, len(combos))
	for _, c := range combos {
		d := comboDump{
			Name:      c.Name,
			Trigger:   c.Trigger(),
			Result:    c.Result.String(),
			Kind:      c.Kind().String(),
			Reachable: []string{},
		}
		for _, l := range combo.Reachable(table, c) {
			d.Reachable = append(d.Reachable, l.String())
		}
		out = append(out, d)
	}
	return out
}

// newCombosCmd creates the 'dilemma combos' command.
func newCombosCmd() *cobra.Command {
	var features keymapFlags

	cmd := cli.NewStandardCommand("combos", "List the combos and what they send")
	cmd.Long = `List every combo with its trigger keys, its result and the layers on which
all of its trigger keys can be held together.

Combos match exact keycodes, so enabling home row mods makes the combos
that use home row letters unreachable.`

	features.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		features.apply(cmd, cfg)
		table := keymap.Build(cfg.Keymap())
		dump := dumpCombos(&table, combo.Defaults())

		if cli.GetOptions(cmd).JSONOutput {
			out, _ := json.MarshalIndent(dump, "", "  ")
			fmt.Println(string(out))
			return nil
		}

		t := theme.DefaultTheme
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, t.Bold.Render("NAME\tTRIGGER\tRESULT\tKIND\tLAYERS"))
		for _, d := range dump {
			layers := t.Error.Render("unreachable")
			if len(d.Reachable) > 0 {
				layers = strings.Join(d.Reachable, ",")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				t.Highlight.Render(d.Name), d.Trigger, d.Result, t.Muted.Render(d.Kind), layers)
		}
		return w.Flush()
	}

	cmd.AddCommand(newCombosCheckCmd())

	return cmd
}

// newCombosCheckCmd creates the 'dilemma combos check' command.
func newCombosCheckCmd() *cobra.Command {
	var features keymapFlags

	cmd := cli.NewStandardCommand("check", "Check the combos for conflicts and unreachable triggers")
	cmd.Long = `Analyze the combo table against the keymap and report problems.

- Duplicates: more than one combo on the same trigger keys. Only the first
  can ever fire.
- Overlaps: a trigger contained in a longer one. The shorter combo fires
  only after the combo term runs out. Reported for information.
- Unreachable: a combo whose trigger keys are never bound together on any
  layer.

Exits with an error when duplicates or unreachable combos are found.`

	features.register(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		features.apply(cmd, cfg)
		table := keymap.Build(cfg.Keymap())
		return runCombosCheck(cmd, &table, combo.Defaults())
	}

	return cmd
}

type comboCheckReport struct {
	Conflicts   []combo.Conflict `json:"conflicts"`
	Overlaps    []combo.Overlap  `json:"overlaps"`
	Unreachable []string         `json:"unreachable"`
}

func checkCombos(table *keymap.Table, combos []combo.Combo) comboCheckReport {
	report := comboCheckReport{
		Conflicts:   combo.DetectConflicts(combos),
		Overlaps:    combo.Overlaps(combos),
		Unreachable: []string{},
	}
	for _, c := range combos {
		if len(combo.Reachable(table, c)) == 0 {
			report.Unreachable = append(report.Unreachable, c.Name)
		}
	}
	return report
}

var errComboCheck = errors.New("combo check failed")

func runCombosCheck(cmd *cobra.Command, table *keymap.Table, combos []combo.Combo) error {
	report := checkCombos(table, combos)
	failed := len(report.Conflicts) > 0 || len(report.Unreachable) > 0

	if cli.GetOptions(cmd).JSONOutput {
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
		if failed {
			return errComboCheck
		}
		return nil
	}

	t := theme.DefaultTheme

	fmt.Println(t.Header.Render(theme.IconGear + " Dilemma Combo Check"))
	fmt.Println()
	fmt.Println(t.Muted.Render(fmt.Sprintf("Checking %d combos across %d layers...", len(combos), layer.Count)))
	fmt.Println()

	if len(report.Conflicts) == 0 {
		fmt.Printf("%s %s: %s\n",
			t.Success.Render(theme.IconSuccess),
			t.Bold.Render("DUPLICATES"),
			t.Success.Render("None"))
	} else {
		fmt.Printf("%s %s: %s\n",
			t.Error.Render(theme.IconError),
			t.Bold.Render("DUPLICATES"),
			t.Error.Render(fmt.Sprintf("%d trigger(s)", len(report.Conflicts))))
		for _, c := range report.Conflicts {
			fmt.Printf("     %s: %s\n", t.Highlight.Render(c.Trigger), strings.Join(c.Combos, ", "))
		}
	}

	if len(report.Unreachable) == 0 {
		fmt.Printf("%s %s: %s\n",
			t.Success.Render(theme.IconSuccess),
			t.Bold.Render("REACHABILITY"),
			t.Success.Render("Every combo can fire"))
	} else {
		fmt.Printf("%s %s: %s\n",
			t.Error.Render(theme.IconError),
			t.Bold.Render("REACHABILITY"),
			t.Error.Render(fmt.Sprintf("%d unreachable combo(s)", len(report.Unreachable))))
		for _, name := range report.Unreachable {
			c, _ := combo.Find(combos, name)
			fmt.Printf("     %s: %s\n", t.Highlight.Render(name), c.Trigger())
		}
	}

	if len(report.Overlaps) > 0 {
		fmt.Printf("%s %s: %s\n",
			t.Warning.Render(theme.IconWarning),
			t.Bold.Render("OVERLAPS"),
			t.Muted.Render(fmt.Sprintf("%d (the longer combo wins while the combo term runs)", len(report.Overlaps))))
		for _, o := range report.Overlaps {
			fmt.Printf("     %s ⊂ %s\n", t.Highlight.Render(o.Short), o.Long)
		}
	}

	fmt.Println()

	if failed {
		fmt.Println(t.Warning.Render("Combo problems detected!"))
		return errComboCheck
	}
	fmt.Println(t.Success.Render(theme.IconSuccess + " All combos are conflict-free and reachable!"))
	return nil
}
