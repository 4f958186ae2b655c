package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go.withmatt.com/mailflow/internal/config"
)

type statusSegment struct {
	text  string
	style lipgloss.Style
}

const statusSeparatorGlyph = "\ue0b0"

// statusStyle paints on the bar. Empty colors fall back to the bar's own.
func statusStyle(theme config.Theme, fg, bg string) lipgloss.Style {
	if fg == "" {
		fg = theme.Status.Fg
	}
	if bg == "" {
		bg = theme.Status.Bg
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg))
}

func textSegment(theme config.Theme, text string) statusSegment {
	return statusSegment{text: text, style: statusStyle(theme, "", "").Padding(0, 1)}
}

func dimSegment(theme config.Theme, text string) statusSegment {
	return statusSegment{text: text, style: statusStyle(theme, theme.Status.Dim, "").Padding(0, 1)}
}

func noticeSegment(theme config.Theme, n notice) statusSegment {
	fg := theme.Modal.SuccessFg
	if n.kind == noticeError {
		fg = theme.Modal.ErrorFg
	}
	return statusSegment{text: n.text, style: statusStyle(theme, fg, "").Padding(0, 1)}
}

// modeSegments is the bold state badge followed by a powerline arrow into the
// bar.
func modeSegments(theme config.Theme, mode string) []statusSegment {
	badge := statusStyle(theme, theme.Status.ModeFg, theme.Status.ModeBg).
		Bold(true).
		Padding(0, 1)
	arrow := statusStyle(theme, theme.Status.ModeBg, "")
	return []statusSegment{
		{text: mode, style: badge},
		{text: statusSeparatorGlyph, style: arrow},
	}
}

func renderStatusline(theme config.Theme, width int, left, right []statusSegment) string {
	l := joinSegments(left)
	r := joinSegments(right)
	gap := 1
	if width > 0 {
		gap = max(width-lipgloss.Width(l)-lipgloss.Width(r), 1)
	}
	return l + statusStyle(theme, "", "").Render(strings.Repeat(" ", gap)) + r
}

func joinSegments(segments []statusSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.text != "" {
			b.WriteString(seg.style.Render(seg.text))
		}
	}
	return b.String()
}
