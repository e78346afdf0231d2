package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quran-tui/internal/config"
	"quran-tui/internal/insight"
	"quran-tui/internal/logger"
	"quran-tui/internal/quran"
	"quran-tui/internal/settings"
	"quran-tui/internal/theme"
	"quran-tui/internal/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		if err == config.ErrMissingEnvironmentVariables {
			fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY in the environment or a .env file.")
		}
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	prefs, err := settings.Load()
	if err != nil {
		log.Warn("could not load saved settings", zap.Error(err))
	}

	themeName := cfg.Theme
	if prefs.Theme != "" {
		themeName = prefs.Theme
	}

	content := quran.NewClient(cfg.QuranBaseURL, cfg.RequestTimeout)
	ai, err := insight.NewClient(insight.Config{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating insight client: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		ui.NewModel(content, ai, log, theme.GetTheme(themeName), prefs),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	if m, ok := final.(ui.Model); ok {
		if err := settings.Save(m.Snapshot()); err != nil {
			log.Warn("could not save settings", zap.Error(err))
		}
	}
}
