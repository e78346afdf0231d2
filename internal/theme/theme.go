package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the application
type Theme struct {
	Name string

	// Text colors
	Text     lipgloss.Color
	Subtle   lipgloss.Color
	Muted    lipgloss.Color
	Arabic   lipgloss.Color
	Translit lipgloss.Color
	Accent   lipgloss.Color
	Error    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color

	// UI element colors
	Border       lipgloss.Color
	BorderActive lipgloss.Color
	Selection    lipgloss.Color
	UserBubble   lipgloss.Color
	BotBubble    lipgloss.Color
}

// Available themes
var (
	// Oasis is the default theme, an emerald palette matching the
	// study-companion's visual identity.
	Oasis = Theme{
		Name:         "Oasis",
		Text:         lipgloss.Color("#e2e8f0"),
		Subtle:       lipgloss.Color("#94a3b8"),
		Muted:        lipgloss.Color("#64748b"),
		Arabic:       lipgloss.Color("#fef3c7"),
		Translit:     lipgloss.Color("#a5b4fc"),
		Accent:       lipgloss.Color("#34d399"),
		Error:        lipgloss.Color("#fb7185"),
		Success:      lipgloss.Color("#34d399"),
		Warning:      lipgloss.Color("#fbbf24"),
		Border:       lipgloss.Color("#334155"),
		BorderActive: lipgloss.Color("#10b981"),
		Selection:    lipgloss.Color("#064e3b"),
		UserBubble:   lipgloss.Color("#475569"),
		BotBubble:    lipgloss.Color("#065f46"),
	}

	CatppuccinMocha = Theme{
		Name:         "Catppuccin Mocha",
		Text:         lipgloss.Color("#cdd6f4"),
		Subtle:       lipgloss.Color("#a6adc8"),
		Muted:        lipgloss.Color("#6c7086"),
		Arabic:       lipgloss.Color("#f9e2af"),
		Translit:     lipgloss.Color("#b4befe"),
		Accent:       lipgloss.Color("#f5c2e7"),
		Error:        lipgloss.Color("#f38ba8"),
		Success:      lipgloss.Color("#a6e3a1"),
		Warning:      lipgloss.Color("#f9e2af"),
		Border:       lipgloss.Color("#45475a"),
		BorderActive: lipgloss.Color("#89b4fa"),
		Selection:    lipgloss.Color("#313244"),
		UserBubble:   lipgloss.Color("#45475a"),
		BotBubble:    lipgloss.Color("#313244"),
	}

	Dracula = Theme{
		Name:         "Dracula",
		Text:         lipgloss.Color("#f8f8f2"),
		Subtle:       lipgloss.Color("#6272a4"),
		Muted:        lipgloss.Color("#6272a4"),
		Arabic:       lipgloss.Color("#f1fa8c"),
		Translit:     lipgloss.Color("#8be9fd"),
		Accent:       lipgloss.Color("#ff79c6"),
		Error:        lipgloss.Color("#ff5555"),
		Success:      lipgloss.Color("#50fa7b"),
		Warning:      lipgloss.Color("#f1fa8c"),
		Border:       lipgloss.Color("#44475a"),
		BorderActive: lipgloss.Color("#bd93f9"),
		Selection:    lipgloss.Color("#44475a"),
		UserBubble:   lipgloss.Color("#44475a"),
		BotBubble:    lipgloss.Color("#282a36"),
	}

	SolarizedLight = Theme{
		Name:         "Solarized Light",
		Text:         lipgloss.Color("#657b83"),
		Subtle:       lipgloss.Color("#93a1a1"),
		Muted:        lipgloss.Color("#93a1a1"),
		Arabic:       lipgloss.Color("#b58900"),
		Translit:     lipgloss.Color("#268bd2"),
		Accent:       lipgloss.Color("#d33682"),
		Error:        lipgloss.Color("#dc322f"),
		Success:      lipgloss.Color("#859900"),
		Warning:      lipgloss.Color("#b58900"),
		Border:       lipgloss.Color("#eee8d5"),
		BorderActive: lipgloss.Color("#268bd2"),
		Selection:    lipgloss.Color("#eee8d5"),
		UserBubble:   lipgloss.Color("#eee8d5"),
		BotBubble:    lipgloss.Color("#fdf6e3"),
	}
)

// AllThemes returns a list of all available themes
func AllThemes() []Theme {
	return []Theme{
		Oasis,
		CatppuccinMocha,
		Dracula,
		SolarizedLight,
	}
}

// GetTheme returns a theme by name, defaulting to Oasis if not found
func GetTheme(name string) Theme {
	themes := map[string]Theme{
		"oasis":            Oasis,
		"catppuccin-mocha": CatppuccinMocha,
		"dracula":          Dracula,
		"solarized-light":  SolarizedLight,
	}

	if theme, ok := themes[name]; ok {
		return theme
	}
	return Oasis
}
