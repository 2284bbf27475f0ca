package cmd

import (
	"strings"

	"github.com/grovetools/dilemma/pkg/config"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// layerFlag collects repeated --layer values.
type layerFlag struct {
	layers []layer.Layer
}

var _ pflag.Value = (*layerFlag)(nil)

func (f *layerFlag) String() string {
	names := make([]string, len(f.layers))
	for i, l := range f.layers {
		names[i] = l.String()
	}
	return strings.Join(names, ",")
}

// Set accepts a single layer or a comma separated list.
func (f *layerFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		l, err := layer.Parse(part)
		if err != nil {
			return err
		}
		f.layers = append(f.layers, l)
	}
	return nil
}

func (f *layerFlag) Type() string { return "layer" }

// Selected returns the chosen layers, or every layer when none were given.
func (f *layerFlag) Selected() []layer.Layer {
	if len(f.layers) == 0 {
		return layer.All()
	}
	return f.layers
}

// keymapFlags override the keymap features of the loaded config.
type keymapFlags struct {
	homeRowMods bool
	pointerMod  bool
	noPointing  bool
}

func (f *keymapFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&f.homeRowMods, "home-row-mods", false, "Apply GACS home row mods to the base layer")
	flags.BoolVar(&f.pointerMod, "pointer-mod", false, "Add pointer layer-taps to the base layer")
	flags.BoolVar(&f.noPointing, "no-pointing", false, "Build the keymap without a pointing device")
}

// apply overrides cfg with the flags the user actually set.
func (f *keymapFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("home-row-mods") {
		cfg.Keyboard.HomeRowMods = f.homeRowMods
	}
	if cmd.Flags().Changed("pointer-mod") {
		cfg.Keyboard.PointerMod = f.pointerMod
	}
	if f.noPointing {
		cfg.Pointing.Enabled = false
	}
}
