package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes: Mocha for dark, Latte for light
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

type palette struct {
	accent   lipgloss.Color
	focus    lipgloss.Color
	success  lipgloss.Color
	danger   lipgloss.Color
	warning  lipgloss.Color
	info     lipgloss.Color
	text     lipgloss.Color
	subtext  lipgloss.Color
	overlay  lipgloss.Color
	surface1 lipgloss.Color
	surface0 lipgloss.Color
	mantle   lipgloss.Color
}

var mocha = palette{
	accent:   "#f5c2e7",
	focus:    "#b4befe",
	success:  "#a6e3a1",
	danger:   "#f38ba8",
	warning:  "#f9e2af",
	info:     "#94e2d5",
	text:     "#cdd6f4",
	subtext:  "#a6adc8",
	overlay:  "#7f849c",
	surface1: "#45475a",
	surface0: "#313244",
	mantle:   "#181825",
}

var latte = palette{
	accent:   "#ea76cb",
	focus:    "#7287fd",
	success:  "#40a02b",
	danger:   "#d20f39",
	warning:  "#df8e1d",
	info:     "#179299",
	text:     "#4c4f69",
	subtext:  "#6c6f85",
	overlay:  "#8c8fa1",
	surface1: "#bcc0cc",
	surface0: "#ccd0da",
	mantle:   "#e6e9ef",
}

const (
	themeDark  = "dark"
	themeLight = "light"
)

func nextTheme(name string) string {
	if name == themeDark {
		return themeLight
	}
	return themeDark
}

// styles is the full style set derived from one palette.
type styles struct {
	p palette

	title    lipgloss.Style
	subtitle lipgloss.Style
	banner   lipgloss.Style

	headerBar   lipgloss.Style
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	tabSep      lipgloss.Style

	section lipgloss.Style
	card    lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	price   lipgloss.Style
	locked  lipgloss.Style
	errText lipgloss.Style
	okText  lipgloss.Style
	cursor  lipgloss.Style

	userBubble lipgloss.Style
	botBubble  lipgloss.Style
	failBubble lipgloss.Style

	footer    lipgloss.Style
	helpKey   lipgloss.Style
	helpDesc  lipgloss.Style
	statusBar lipgloss.Style
}

func newStyles(theme string) styles {
	p := mocha
	if theme == themeLight {
		p = latte
	}
	return styles{
		p: p,

		title:    lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(p.subtext).Italic(true),
		banner:   lipgloss.NewStyle().Foreground(p.accent),

		headerBar: lipgloss.NewStyle().Foreground(p.text).Padding(0, 1),
		activeTab: lipgloss.NewStyle().
			Foreground(p.accent).
			Background(p.surface0).
			Bold(true).
			Padding(0, 1),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.overlay).
			Padding(0, 1),
		tabSep: lipgloss.NewStyle().Foreground(p.surface1),

		section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.surface1).
			Padding(0, 1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.surface1).
			Padding(0, 1).
			MarginRight(1),
		label:   lipgloss.NewStyle().Foreground(p.subtext),
		value:   lipgloss.NewStyle().Foreground(p.text),
		muted:   lipgloss.NewStyle().Foreground(p.overlay),
		price:   lipgloss.NewStyle().Foreground(p.success).Bold(true),
		locked:  lipgloss.NewStyle().Foreground(p.warning).Bold(true),
		errText: lipgloss.NewStyle().Foreground(p.danger),
		okText:  lipgloss.NewStyle().Foreground(p.success),
		cursor:  lipgloss.NewStyle().Foreground(p.focus).Bold(true),

		userBubble: lipgloss.NewStyle().Foreground(p.focus),
		botBubble:  lipgloss.NewStyle().Foreground(p.text),
		failBubble: lipgloss.NewStyle().Foreground(p.danger).Italic(true),

		footer:    lipgloss.NewStyle().Foreground(p.subtext).Background(p.mantle).Padding(0, 1),
		helpKey:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		helpDesc:  lipgloss.NewStyle().Foreground(p.subtext),
		statusBar: lipgloss.NewStyle().Foreground(p.text).Background(p.surface0).Padding(0, 1),
	}
}
