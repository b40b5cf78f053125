package cli

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used in CLI output.
type Theme struct {
	Name   string
	Border lipgloss.Color
	Dim    lipgloss.Color
	Muted  lipgloss.Color
	Text   lipgloss.Color
	Accent lipgloss.Color
	Green  lipgloss.Color
	Orange lipgloss.Color
	Red    lipgloss.Color
}

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:   "flexoki-dark",
	Border: lipgloss.Color("#282726"),
	Dim:    lipgloss.Color("#575653"),
	Muted:  lipgloss.Color("#6F6E69"),
	Text:   lipgloss.Color("#FFFCF0"),
	Accent: lipgloss.Color("#3AA99F"),
	Green:  lipgloss.Color("#879A39"),
	Orange: lipgloss.Color("#DA702C"),
	Red:    lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:   "catppuccin-mocha",
	Border: lipgloss.Color("#585B70"),
	Dim:    lipgloss.Color("#6C7086"),
	Muted:  lipgloss.Color("#A6ADC8"),
	Text:   lipgloss.Color("#CDD6F4"),
	Accent: lipgloss.Color("#89B4FA"),
	Green:  lipgloss.Color("#A6E3A1"),
	Orange: lipgloss.Color("#FAB387"),
	Red:    lipgloss.Color("#F38BA8"),
}

// TokyoNight is a cool blue theme.
var TokyoNight = Theme{
	Name:   "tokyo-night",
	Border: lipgloss.Color("#565F89"),
	Dim:    lipgloss.Color("#565F89"),
	Muted:  lipgloss.Color("#A9B1D6"),
	Text:   lipgloss.Color("#C0CAF5"),
	Accent: lipgloss.Color("#7AA2F7"),
	Green:  lipgloss.Color("#9ECE6A"),
	Orange: lipgloss.Color("#FF9E64"),
	Red:    lipgloss.Color("#F7768E"),
}

// Terminal sticks to ANSI 16 colors.
var Terminal = Theme{
	Name:   "terminal",
	Border: lipgloss.Color("8"),
	Dim:    lipgloss.Color("8"),
	Muted:  lipgloss.Color("7"),
	Text:   lipgloss.Color("15"),
	Accent: lipgloss.Color("6"),
	Green:  lipgloss.Color("2"),
	Orange: lipgloss.Color("3"),
	Red:    lipgloss.Color("1"),
}

// Themes lists every available theme.
var Themes = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ThemeNames returns the names of all themes.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for _, t := range Themes {
		names = append(names, t.Name)
	}
	return names
}

// ThemeByName returns a theme by name, defaulting to FlexokiDark.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// active is the theme styles are built from.
var active = FlexokiDark

// SetTheme switches the active theme and rebuilds the styles.
func SetTheme(name string) {
	active = ThemeByName(name)
	buildStyles()
}

// ActiveTheme returns the theme in use.
func ActiveTheme() Theme { return active }
