package tui

import (
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"go.withmatt.com/mailflow/internal/config"
)

func markdownStyle(theme config.Theme) ansi.StyleConfig {
	style := styles.DarkStyleConfig

	style.Document.Color = ptr(theme.List.Fg)
	style.Paragraph.Color = ptr(theme.List.Fg)
	style.Text.Color = ptr(theme.List.Fg)

	style.BlockQuote.Color = ptr(theme.Status.Dim)
	style.BlockQuote.IndentToken = ptr("▍ ")

	style.Heading.Color = ptr(theme.Pane.TitleBg)
	style.H1.Color = ptr(theme.Pane.TitleBg)
	style.H1.BackgroundColor = nil

	style.HorizontalRule.Color = ptr(theme.Status.Dim)

	style.Link.Color = ptr(theme.Modal.BorderFg)
	style.LinkText.Color = ptr(theme.Modal.BorderFg)
	style.LinkText.Bold = ptr(true)

	return style
}

// previewLinkFormatter prints link URLs with embedded whitespace removed,
// which wrapped plain-text bodies tend to produce.
func previewLinkFormatter() ansi.LinkFormatter {
	return ansi.LinkFormatterFunc(func(data ansi.LinkData, ctx ansi.RenderContext) (string, error) {
		data.URL = strings.Join(strings.Fields(data.URL), "")
		return ansi.DefaultFormatter.FormatLink(data, ctx)
	})
}

func ptr[T any](value T) *T {
	return &value
}
