package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/components/help"
	tuikeymap "github.com/grovetools/core/tui/keymap"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/dilemma/pkg/config"
	"github.com/grovetools/dilemma/pkg/host"
	"github.com/grovetools/dilemma/pkg/keymap"
	"github.com/grovetools/dilemma/pkg/logger"
	"github.com/grovetools/dilemma/pkg/timer"
)

const (
	simTick      = 20 * time.Millisecond
	simStep      = timer.Millis(10)
	simLongStep  = timer.Millis(100)
	simTapHold   = timer.Millis(10)
	simMotion    = 10
	simLogHeight = 12
)

// simKeyMap defines the keybindings for the simulator TUI. Cursor movement,
// help and quit come from the shared Grove base keymap.
type simKeyMap struct {
	tuikeymap.Base
	Tap       key.Binding
	Hold      key.Binding
	Step      key.Binding
	LongStep  key.Binding
	Live      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Reset     key.Binding
	ClearLog  key.Binding
}

func (k simKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Hold, k.Step, k.Live, k.Help, k.Quit}
}

func (k simKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Tap, k.Hold, k.Reset, k.ClearLog},
		{k.Step, k.LongStep, k.Live},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Help, k.Quit},
	}
}

// GetHelp and GetQuit let the help view close itself.
func (k simKeyMap) GetHelp() key.Binding { return k.Help }
func (k simKeyMap) GetQuit() key.Binding { return k.Quit }

func newSimKeyMap() simKeyMap {
	return simKeyMap{
		Base: tuikeymap.NewBase(),
		Tap: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "tap key"),
		),
		Hold: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press/release key"),
		),
		Step: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "advance 10ms"),
		),
		LongStep: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "advance 100ms"),
		),
		Live: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "live clock"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "pointer left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "pointer right"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "pointer up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "pointer down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset keyboard"),
		),
		ClearLog: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear log"),
		),
	}
}

// simModel holds the state of the simulator TUI.
type simModel struct {
	kb     *host.Keyboard
	keys   simKeyMap
	help   help.Model
	cursor int
	live   bool
	status string

	apply   func(*config.Config)
	configs <-chan *config.Config
	errs    <-chan error

	width  int
	height int
}

type simTickMsg struct{}

// configReloadMsg is sent when the watched config file changes.
type configReloadMsg struct {
	cfg *config.Config
}

type configErrorMsg struct {
	err error
}

func simTickCmd() tea.Cmd {
	return tea.Tick(simTick, func(time.Time) tea.Msg { return simTickMsg{} })
}

// listenForConfig waits for the next reload or load error.
func listenForConfig(configs <-chan *config.Config, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case cfg, ok := <-configs:
			if !ok {
				return nil
			}
			return configReloadMsg{cfg: cfg}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}

// runSimTUI launches the interactive simulator. A non-empty watchPath is
// reloaded on change, with apply re-run on every new config.
func runSimTUI(ctx context.Context, cfg *config.Config, watchPath string, apply func(*config.Config)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	km := newSimKeyMap()
	helpModel := help.New(km)
	helpModel.Title = "Dilemma Simulator Help"

	m := simModel{
		kb:     host.New(cfg.Host(logger.For("host"))),
		keys:   km,
		help:   helpModel,
		apply:  apply,
		status: "ready",
	}
	if watchPath != "" {
		configs, errs, err := config.Watch(ctx, watchPath)
		if err != nil {
			return err
		}
		m.configs, m.errs = configs, errs
		m.status = "watching " + watchPath
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m simModel) Init() tea.Cmd {
	if m.configs != nil {
		return listenForConfig(m.configs, m.errs)
	}
	return nil
}

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case configReloadMsg:
		m.apply(msg.cfg)
		m.kb = host.New(msg.cfg.Host(logger.For("host")))
		m.status = "config reloaded"
		return m, listenForConfig(m.configs, m.errs)

	case configErrorMsg:
		m.status = "config error: " + msg.err.Error()
		return m, listenForConfig(m.configs, m.errs)

	case simTickMsg:
		if !m.live {
			return m, nil
		}
		m.kb.Advance(timer.Millis(simTick / time.Millisecond))
		return m, simTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m simModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) {
			m.help.Toggle()
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	p := keymap.PositionOf(m.cursor)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, 0, -1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, 0, 1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, -1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, 1, 0)
	case key.Matches(msg, m.keys.Tap):
		if m.kb.Pressed(p) {
			m.kb.Release(p)
		}
		m.kb.Tap(p, simTapHold)
	case key.Matches(msg, m.keys.Hold):
		if m.kb.Pressed(p) {
			m.kb.Release(p)
		} else {
			m.kb.Press(p)
		}
	case key.Matches(msg, m.keys.Step):
		m.kb.Advance(simStep)
	case key.Matches(msg, m.keys.LongStep):
		m.kb.Advance(simLongStep)
	case key.Matches(msg, m.keys.Live):
		m.live = !m.live
		if m.live {
			return m, simTickCmd()
		}
	case key.Matches(msg, m.keys.MoveLeft):
		m.kb.Motion(-simMotion, 0)
	case key.Matches(msg, m.keys.MoveRight):
		m.kb.Motion(simMotion, 0)
	case key.Matches(msg, m.keys.MoveUp):
		m.kb.Motion(0, -simMotion)
	case key.Matches(msg, m.keys.MoveDown):
		m.kb.Motion(0, simMotion)
	case key.Matches(msg, m.keys.Reset):
		m.kb.Reset()
		m.status = "keyboard reset"
	case key.Matches(msg, m.keys.ClearLog):
		m.kb.ClearLogs()
	}
	return m, nil
}

// moveCursor steps through reading order. Rows 0-2 hold ten keys, row 3 the
// four thumbs under columns 3-6.
func moveCursor(i, dr, dc int) int {
	row, col := i/10, i%10
	if i >= 30 {
		row, col = 3, i-30+3
	}
	row = (row + dr + 4) % 4
	col = (col + dc + 10) % 10
	if row == 3 {
		switch {
		case col < 3:
			col = 3
		case col > 6:
			col = 6
		}
		return 30 + col - 3
	}
	return row*10 + col
}

func (m simModel) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	t := theme.DefaultTheme
	kb := m.kb

	var lay keymap.Layout
	for i := range lay {
		lay[i] = kb.Resolve(keymap.PositionOf(i))
	}
	grid := renderLayout(lay, func(i int, s lipgloss.Style) lipgloss.Style {
		if kb.Pressed(keymap.PositionOf(i)) {
			s = s.Inherit(t.Success).Bold(true)
		}
		if i == m.cursor {
			s = s.Reverse(true)
		}
		return s
	})

	clock := "paused"
	if m.live {
		clock = "live"
	}
	lines := []string{
		t.Header.Render(fmt.Sprintf("%s Dilemma simulator  %s", theme.IconGear, t.Muted.Render(fmt.Sprintf("%dms (%s)", kb.Now(), clock)))),
		"",
		grid,
		"",
		fmt.Sprintf("%s %s   %s %s   %s %s",
			t.Bold.Render("key:"), keymap.Name(m.cursor),
			t.Bold.Render("layers:"), kb.State(),
			t.Bold.Render("report:"), kb.Report()),
		fmt.Sprintf("%s %s   %s %s   %s %d   %s %s   %s %s",
			t.Bold.Render("one-shot:"), kb.OneShotMods(),
			t.Bold.Render("caps word:"), onOffLabel(kb.CapsWord()),
			t.Bold.Render("dpi:"), kb.DPI(),
			t.Bold.Render("sniping:"), onOffLabel(kb.Sniping()),
			t.Bold.Render("drag scroll:"), onOffLabel(kb.DragScroll())),
	}
	if kb.Halted() {
		lines = append(lines, t.Error.Render(theme.IconWarning+" bootloader requested, press r to reset"))
	}
	lines = append(lines, "", t.Bold.Render("Events"))

	events := kb.Events()
	if len(events) > simLogHeight {
		events = events[len(events)-simLogHeight:]
	}
	for _, e := range events {
		lines = append(lines, t.Muted.Render(e.String()))
	}
	for i := len(events); i < simLogHeight; i++ {
		lines = append(lines, "")
	}

	lines = append(lines, "", t.Muted.Render(m.status), m.help.View())
	return strings.Join(lines, "\n")
}

func onOffLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
