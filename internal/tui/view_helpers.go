package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderMarkdown renders the body with glamour, falling back to raw text.
func (m *Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	rendered, err := m.renderer.Render(text)
	if err != nil {
		logf("glamour render failed: %v", err)
		return text
	}
	return strings.TrimSpace(rendered)
}

func normalizeBody(body string) string {
	// Terminals handle LF better than CRLF for display.
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\r", "\n")
}

func truncateWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

func formatAttachmentSize(size int64) string {
	if size < 0 {
		return ""
	}
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	if size < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	}
	if size < 1024*1024*1024 {
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
	return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
}

func stripZeroWidth(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 0x034F, 0x200B, 0x200C, 0x200D, 0x200E, 0x200F, 0x2060, 0xFEFF:
			return -1
		default:
			return r
		}
	}, text)
}

func renderFixedLayout(height int, body, footer string) string {
	footerHeight := lipgloss.Height(footer)
	bodyHeight := max(0, height-footerHeight)
	bodyStyle := lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight)
	return lipgloss.JoinVertical(lipgloss.Left, bodyStyle.Render(body), footer)
}

func previewViewportWidth(width, wrap int) int {
	return max(20, min(width-10, wrap+2))
}

func previewViewportHeight(height int) int {
	return max(3, height-10)
}
