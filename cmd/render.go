package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/dilemma/pkg/keycode"
	"github.com/grovetools/dilemma/pkg/keymap"
)

const cellWidth = 9

var (
	cellStyle  = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	splitGap   = strings.Repeat(" ", 4)
	emptyThumb = strings.Repeat(" ", cellWidth*3)
)

// renderLayout draws a layer as the two halves of the keyboard. decorate,
// when set, adjusts the style of each key.
func renderLayout(lay keymap.Layout, decorate func(i int, s lipgloss.Style) lipgloss.Style) string {
	t := theme.DefaultTheme

	cell := func(i int) string {
		kc := lay[i]
		label := kc.Label()
		style := cellStyle
		switch kc {
		case keycode.Transparent:
			label = "▽"
			style = style.Inherit(t.Muted)
		case keycode.No:
			label = "·"
			style = style.Inherit(t.Muted)
		}
		if decorate != nil {
			style = decorate(i, style)
		}
		if r := []rune(label); len(r) > cellWidth-1 {
			label = string(r[:cellWidth-2]) + "…"
		}
		return style.Render(label)
	}

	var lines []string
	for r := 0; r < 3; r++ {
		var left, right []string
		for c := 0; c < 5; c++ {
			left = append(left, cell(r*10+c))
			right = append(right, cell(r*10+c+5))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			strings.Join(left, ""), splitGap, strings.Join(right, "")))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		emptyThumb, cell(30), cell(31), splitGap, cell(32), cell(33)))

	return strings.Join(lines, "\n")
}
