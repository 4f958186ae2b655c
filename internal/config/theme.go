package config

import (
	"fmt"
	"strings"

	"go.withmatt.com/themes"
)

type Theme struct {
	Name   string      `toml:"name"`
	Status ThemeStatus `toml:"status"`
	List   ThemeList   `toml:"list"`
	Pane   ThemePane   `toml:"pane"`
	Modal  ThemeModal  `toml:"modal"`
}

type ThemeStatus struct {
	Bg     string `toml:"bg"`
	Fg     string `toml:"fg"`
	Dim    string `toml:"dim"`
	ModeBg string `toml:"mode_bg"`
	ModeFg string `toml:"mode_fg"`
}

type ThemeList struct {
	Fg         string `toml:"fg"`
	SelectedFg string `toml:"selected_fg"`
	SelectedBg string `toml:"selected_bg"`
	EmptyFg    string `toml:"empty_fg"`
}

type ThemePane struct {
	TitleBg       string `toml:"title_bg"`
	TitleFg       string `toml:"title_fg"`
	HeaderLabelFg string `toml:"header_label_fg"`
	HeaderValueFg string `toml:"header_value_fg"`
}

type ThemeModal struct {
	BorderFg  string `toml:"border_fg"`
	FooterFg  string `toml:"footer_fg"`
	SuccessFg string `toml:"success_fg"`
	ErrorFg   string `toml:"error_fg"`
}

func ResolveTheme(theme Theme) (Theme, error) {
	palette, err := paletteForTheme(theme.Name)
	if err != nil {
		return Theme{}, err
	}
	base := themeFromPalette(palette)
	merged := mergeTheme(base, theme)
	merged = resolveThemeColorNames(merged, palette)
	merged.Name = theme.Name
	return merged, nil
}

func themeFromPalette(palette *themes.Theme) Theme {
	dim := firstNonEmpty(
		palette.BrightBlack,
		palette.Foreground,
	)
	accent := firstNonEmpty(
		palette.Blue,
		palette.Magenta,
		palette.Foreground,
	)
	selectedFg := firstNonEmpty(
		palette.BrightGreen,
		palette.Green,
		palette.Foreground,
	)
	success := firstNonEmpty(
		palette.Green,
		palette.Foreground,
	)
	errorFg := firstNonEmpty(
		palette.Red,
		palette.Foreground,
	)
	return Theme{
		Status: ThemeStatus{
			Bg:     palette.Background,
			Fg:     palette.Foreground,
			Dim:    dim,
			ModeBg: accent,
			ModeFg: palette.Background,
		},
		List: ThemeList{
			Fg:         palette.Foreground,
			SelectedFg: selectedFg,
			SelectedBg: palette.Background,
			EmptyFg:    dim,
		},
		Pane: ThemePane{
			TitleBg:       accent,
			TitleFg:       palette.Background,
			HeaderLabelFg: dim,
			HeaderValueFg: palette.Foreground,
		},
		Modal: ThemeModal{
			BorderFg:  accent,
			FooterFg:  dim,
			SuccessFg: success,
			ErrorFg:   errorFg,
		},
	}
}

func mergeTheme(base, override Theme) Theme {
	out := override
	for _, pair := range themeFields(&out, &base) {
		fillIfEmpty(pair[0], *pair[1])
	}
	return out
}

// themeFields pairs every color field of a with the same field of b.
func themeFields(a, b *Theme) [][2]*string {
	return [][2]*string{
		{&a.Status.Bg, &b.Status.Bg},
		{&a.Status.Fg, &b.Status.Fg},
		{&a.Status.Dim, &b.Status.Dim},
		{&a.Status.ModeBg, &b.Status.ModeBg},
		{&a.Status.ModeFg, &b.Status.ModeFg},
		{&a.List.Fg, &b.List.Fg},
		{&a.List.SelectedFg, &b.List.SelectedFg},
		{&a.List.SelectedBg, &b.List.SelectedBg},
		{&a.List.EmptyFg, &b.List.EmptyFg},
		{&a.Pane.TitleBg, &b.Pane.TitleBg},
		{&a.Pane.TitleFg, &b.Pane.TitleFg},
		{&a.Pane.HeaderLabelFg, &b.Pane.HeaderLabelFg},
		{&a.Pane.HeaderValueFg, &b.Pane.HeaderValueFg},
		{&a.Modal.BorderFg, &b.Modal.BorderFg},
		{&a.Modal.FooterFg, &b.Modal.FooterFg},
		{&a.Modal.SuccessFg, &b.Modal.SuccessFg},
		{&a.Modal.ErrorFg, &b.Modal.ErrorFg},
	}
}

func fillIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

func paletteForTheme(name string) (*themes.Theme, error) {
	themeName := strings.TrimSpace(name)
	if themeName == "" {
		themeName = "Nord"
	}
	palette, err := themes.GetTheme(themeName)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", themeName, err)
	}
	return palette, nil
}

func resolveThemeColorNames(theme Theme, palette *themes.Theme) Theme {
	for _, pair := range themeFields(&theme, &theme) {
		*pair[0] = resolveColorName(*pair[0], palette)
	}
	return theme
}

func resolveColorName(value string, palette *themes.Theme) string {
	if palette == nil {
		return value
	}
	switch normalizeColorName(value) {
	case "":
		return value
	case "foreground":
		return palette.Foreground
	case "background":
		return palette.Background
	case "black":
		return palette.Black
	case "red":
		return palette.Red
	case "green":
		return palette.Green
	case "yellow":
		return palette.Yellow
	case "blue":
		return palette.Blue
	case "magenta":
		return palette.Magenta
	case "cyan":
		return palette.Cyan
	case "white":
		return palette.White
	case "brightblack":
		return palette.BrightBlack
	case "brightred":
		return palette.BrightRed
	case "brightgreen":
		return palette.BrightGreen
	case "brightblue":
		return palette.BrightBlue
	case "brightmagenta":
		return palette.BrightMagenta
	case "brightcyan":
		return palette.BrightCyan
	case "brightwhite":
		return palette.BrightWhite
	default:
		return value
	}
}

func normalizeColorName(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return strings.ReplaceAll(normalized, " ", "")
}
