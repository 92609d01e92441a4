package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	history  lipgloss.Style
	editor   lipgloss.Style
	status   lipgloss.Style
	error    lipgloss.Style
	success  lipgloss.Style
	degraded lipgloss.Style
	prompt   lipgloss.Style
	label    lipgloss.Style
}

type ThemeName string

const (
	ThemeCyan    ThemeName = "cyan"
	ThemeMatrix  ThemeName = "matrix"
	ThemeAmber   ThemeName = "amber"
	ThemeDracula ThemeName = "dracula"
	ThemeLight   ThemeName = "light"
)

type ThemePalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Inactive  lipgloss.Color
	// Markdown is the glamour style feedback is rendered with.
	Markdown string
}

var palettes = map[ThemeName]ThemePalette{
	ThemeCyan: {
		Primary:   lipgloss.Color("51"),
		Secondary: lipgloss.Color("33"),
		Success:   lipgloss.Color("46"),
		Warning:   lipgloss.Color("226"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		Markdown:  "dark",
	},
	ThemeMatrix: {
		Primary:   lipgloss.Color("82"),
		Secondary: lipgloss.Color("46"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("190"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		Markdown:  "dark",
	},
	ThemeAmber: {
		Primary:   lipgloss.Color("220"),
		Secondary: lipgloss.Color("214"),
		Success:   lipgloss.Color("220"),
		Warning:   lipgloss.Color("208"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
		Markdown:  "dark",
	},
	ThemeDracula: {
		Primary:   lipgloss.Color("141"),
		Secondary: lipgloss.Color("117"),
		Success:   lipgloss.Color("84"),
		Warning:   lipgloss.Color("212"),
		Error:     lipgloss.Color("203"),
		Inactive:  lipgloss.Color("240"),
		Markdown:  "dracula",
	},
	ThemeLight: {
		Primary:   lipgloss.Color("25"),
		Secondary: lipgloss.Color("30"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Error:     lipgloss.Color("160"),
		Inactive:  lipgloss.Color("245"),
		Markdown:  "light",
	},
}

// PaletteFor returns the palette of theme, falling back to cyan.
func PaletteFor(theme ThemeName) ThemePalette {
	if palette, ok := palettes[theme]; ok {
		return palette
	}
	return palettes[ThemeCyan]
}

func ListThemes() []ThemeName {
	return []ThemeName{ThemeCyan, ThemeMatrix, ThemeAmber, ThemeDracula, ThemeLight}
}

func newStylesFromPalette(p ThemePalette) styles {
	return styles{
		app: lipgloss.NewStyle().Margin(0, 1),
		title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(0, 2),
		history: lipgloss.NewStyle().PaddingLeft(1),
		editor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary),
		status:   lipgloss.NewStyle().Foreground(p.Inactive),
		error:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		success:  lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		degraded: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		prompt:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		label:    lipgloss.NewStyle().Foreground(p.Secondary).Italic(true),
	}
}
