package mailitem

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

var (
	styleRe     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptRe    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tableRe     = regexp.MustCompile(`(?is)<table[^>]*>.*?</table>`)
	tableTagRe  = regexp.MustCompile(`</?(table|tbody|thead)[^>]*>`)
	cellBreakRe = regexp.MustCompile(`(?i)</?tr[^>]*>`)
	cellCloseRe = regexp.MustCompile(`(?i)</t[dh]>`)
	cellOpenRe  = regexp.MustCompile(`(?i)<t[dh][^>]*>`)
	converter   = newConverter()
)

func newConverter() *md.Converter {
	return md.NewConverter(
		md.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithEmDelimiter("_"),
				commonmark.WithCodeBlockFence("```"),
			),
		),
		md.WithEscapeMode(md.EscapeModeDisabled),
	)
}

// HTMLToText converts an HTML body into readable text for hosts that only
// carry an HTML part. Layout tables are flattened first.
func HTMLToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	cleaned := cleanHTML(html)
	text, err := converter.ConvertString(cleaned)
	if err != nil {
		return cleaned
	}
	return strings.TrimSpace(text)
}

func cleanHTML(html string) string {
	html = styleRe.ReplaceAllString(html, "")
	html = scriptRe.ReplaceAllString(html, "")
	return tableRe.ReplaceAllStringFunc(html, func(table string) string {
		table = cellBreakRe.ReplaceAllString(table, "\n")
		table = cellCloseRe.ReplaceAllString(table, " ")
		table = cellOpenRe.ReplaceAllString(table, "")
		return tableTagRe.ReplaceAllString(table, "")
	})
}
