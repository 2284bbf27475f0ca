package script

import (
	"fmt"
	"strings"

	"github.com/grovetools/dilemma/pkg/host"
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/layer"
	"github.com/grovetools/dilemma/pkg/timer"
)

const defaultHold = 10

// Failure is an expectation that did not hold.
type Failure struct {
	Step    int    `json:"step"`
	Message string `json:"message"`
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d: %s", f.Step, f.Message)
}

// Result is the outcome of one script run.
type Result struct {
	Name     string       `json:"name"`
	Failures []Failure    `json:"failures,omitempty"`
	Events   []host.Event `json:"events,omitempty"`
	Emitted  []string     `json:"emitted"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run replays s on a fresh keyboard built from opts with the script's
// options applied. Errors are returned for steps that cannot be executed;
// failed expectations are collected in the result.
func Run(s *Script, opts host.Options) (*Result, error) {
	if s.Options.HomeRowMods {
		opts.Keymap.HomeRowMods = true
	}
	if s.Options.PointerMod {
		opts.Keymap.PointerMod = true
	}
	if s.Options.NoPointing {
		opts.Keymap.PointingDevice = false
		opts.Controller.PointingDevice = false
	}

	r := &runner{kb: host.New(opts), result: &Result{Name: s.Name}}
	for i, step := range s.Steps {
		if err := r.step(i+1, step); err != nil {
			return r.result, fmt.Errorf("%s: step %d: %w", s.Name, i+1, err)
		}
	}

	r.result.Events = r.kb.Events()
	for _, e := range r.kb.Emitted() {
		r.result.Emitted = append(r.result.Emitted, e.String())
	}
	return r.result, nil
}

type runner struct {
	kb      *host.Keyboard
	result  *Result
	emitted int
}

func (r *runner) step(n int, s Step) error {
	if err := s.validate(); err != nil {
		return err
	}
	switch {
	case s.At != nil:
		at := timer.Millis(*s.At)
		if at < r.kb.Now() {
			return fmt.Errorf("%w: at %d is before the current time %d", ErrBadStep, at, r.kb.Now())
		}
		r.kb.AdvanceTo(at)
	case s.Wait > 0:
		r.kb.Advance(timer.Millis(s.Wait))
	case s.Press != "":
		p, err := r.position(s.Press)
		if err != nil {
			return err
		}
		r.kb.Press(p)
	case s.Release != "":
		p, err := r.position(s.Release)
		if err != nil {
			return err
		}
		r.kb.Release(p)
	case s.Tap != "":
		p, err := r.position(s.Tap)
		if err != nil {
			return err
		}
		hold := s.Hold
		if hold == 0 {
			hold = defaultHold
		}
		r.kb.Tap(p, timer.Millis(hold))
	case s.Motion != nil:
		r.kb.Motion(s.Motion.X, s.Motion.Y)
	case s.Expect != nil:
		return r.expect(n, s.Expect)
	}
	return nil
}

// position resolves a position name (L00, R33, 12) or a keycode bound on
// the base layer.
func (r *runner) position(name string) (keymap.Position, error) {
	if i, err := keymap.ParseName(name); err == nil {
		return keymap.PositionOf(i), nil
	}
	kc, err := keycode.Parse(name)
	if err != nil {
		return keymap.Position{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	for _, loc := range r.kb.Table().Locate(kc) {
		if loc.Layer == layer.Base {
			return keymap.PositionOf(loc.Index), nil
		}
	}
	return keymap.Position{}, fmt.Errorf("%w: %s is not on the base layer", ErrUnknownKey, kc)
}

func (r *runner) expect(n int, e *Expect) error {
	fail := func(format string, args ...any) {
		r.result.Failures = append(r.result.Failures, Failure{Step: n, Message: fmt.Sprintf(format, args...)})
	}

	all := r.kb.Emitted()
	since := all[r.emitted:]
	r.emitted = len(all)

	if e.Nothing && len(since) > 0 {
		fail("expected nothing emitted, got %s", joinEmitted(since))
	}
	if e.Emitted != nil {
		want := make([]keycode.Keycode, len(e.Emitted))
		for i, name := range e.Emitted {
			kc, err := keycode.Parse(name)
			if err != nil {
				return fmt.Errorf("%w: expect emitted: %v", ErrBadStep, err)
			}
			want[i] = kc
		}
		if !sameEmitted(want, since) {
			fail("expected emitted %s, got %s", joinKeycodes(want), joinEmitted(since))
		}
	}

	state := r.kb.State()
	for _, name := range e.Active {
		l, err := layer.Parse(name)
		if err != nil {
			return fmt.Errorf("%w: expect active: %v", ErrBadStep, err)
		}
		if !state.Has(l) {
			fail("expected %s active, layers are %s", l, state)
		}
	}
	for _, name := range e.Inactive {
		l, err := layer.Parse(name)
		if err != nil {
			return fmt.Errorf("%w: expect inactive: %v", ErrBadStep, err)
		}
		if state.Has(l) {
			fail("expected %s inactive, layers are %s", l, state)
		}
	}

	checkBool := func(name string, want *bool, got bool) {
		if want != nil && *want != got {
			fail("expected %s %v, got %v", name, *want, got)
		}
	}
	checkBool("caps_word", e.CapsWord, r.kb.CapsWord())
	checkBool("sniping", e.Sniping, r.kb.Sniping())
	checkBool("drag_scroll", e.DragScroll, r.kb.DragScroll())
	checkBool("halted", e.Halted, r.kb.Halted())

	if e.DPI != 0 && e.DPI != r.kb.DPI() {
		fail("expected dpi %d, got %d", e.DPI, r.kb.DPI())
	}
	if e.OneShotMods != "" {
		want, ok := keycode.ParseMods(e.OneShotMods)
		if !ok {
			return fmt.Errorf("%w: expect one_shot_mods: %q", ErrBadStep, e.OneShotMods)
		}
		if got := r.kb.OneShotMods(); got != want {
			fail("expected one-shot mods %s, got %s", want, got)
		}
	}
	return nil
}

func sameEmitted(want []keycode.Keycode, got []host.Emission) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i].Keycode() {
			return false
		}
	}
	return true
}

func joinEmitted(es []host.Emission) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func joinKeycodes(ks []keycode.Keycode) string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = k.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
