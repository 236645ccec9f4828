package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:      "night",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff88ff"),
		Accent:    lipgloss.Color("#ffdd55"),
		Text:      lipgloss.Color("#e0e0f0"),
		Muted:     lipgloss.Color("#666688"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	// ThemeAmber is a warm palette after a red giant.
	ThemeAmber = Theme{
		Name:      "amber",
		Primary:   lipgloss.Color("#ffb347"),
		Secondary: lipgloss.Color("#e86a33"),
		Accent:    lipgloss.Color("#fff1c1"),
		Text:      lipgloss.Color("#f5deb3"),
		Muted:     lipgloss.Color("#7a5230"),
		Success:   lipgloss.Color("#c8e06e"),
		Warning:   lipgloss.Color("#ffd23f"),
		Error:     lipgloss.Color("#d7263d"),
	}

	// ThemeEclipse is low contrast for dim terminals.
	ThemeEclipse = Theme{
		Name:      "eclipse",
		Primary:   lipgloss.Color("#9aa5b8"),
		Secondary: lipgloss.Color("#6c7a91"),
		Accent:    lipgloss.Color("#e8e3c9"),
		Text:      lipgloss.Color("#c3c9d4"),
		Muted:     lipgloss.Color("#464e5c"),
		Success:   lipgloss.Color("#7fb29a"),
		Warning:   lipgloss.Color("#c9a45c"),
		Error:     lipgloss.Color("#b5606a"),
	}

	CurrentTheme = ThemeNight

	Themes = []Theme{
		ThemeNight,
		ThemeAmber,
		ThemeEclipse,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
