package ui

import (
	"github.com/charmbracelet/lipgloss"

	"quran-tui/internal/theme"
)

// wideBreakpoint is the terminal width at which the surah/verse list
// and the analysis panel render side by side.
const wideBreakpoint = 100

type styles struct {
	theme theme.Theme

	header      lipgloss.Style
	title       lipgloss.Style
	help        lipgloss.Style
	errText     lipgloss.Style
	arabic      lipgloss.Style
	translit    lipgloss.Style
	translation lipgloss.Style
	subtle      lipgloss.Style
	muted       lipgloss.Style
	accent      lipgloss.Style

	card         lipgloss.Style
	cardSelected lipgloss.Style
	verseNum     lipgloss.Style

	tabActive   lipgloss.Style
	tabInactive lipgloss.Style

	sectionTitle lipgloss.Style
	chip         lipgloss.Style
	chipActive   lipgloss.Style

	badgeQuran   lipgloss.Style
	badgeHadith  lipgloss.Style
	badgeNeutral lipgloss.Style

	quizCorrect lipgloss.Style
	quizWrong   lipgloss.Style
	quizNeutral lipgloss.Style
	quizDimmed  lipgloss.Style

	userTurn lipgloss.Style
	botTurn  lipgloss.Style

	modalFrame lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return styles{
		theme: th,

		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(th.Border),
		title:       lipgloss.NewStyle().Bold(true).Foreground(th.Text),
		help:        lipgloss.NewStyle().Foreground(th.Muted),
		errText:     lipgloss.NewStyle().Bold(true).Foreground(th.Error),
		arabic:      lipgloss.NewStyle().Foreground(th.Arabic),
		translit:    lipgloss.NewStyle().Italic(true).Foreground(th.Translit),
		translation: lipgloss.NewStyle().Foreground(th.Text),
		subtle:      lipgloss.NewStyle().Foreground(th.Subtle),
		muted:       lipgloss.NewStyle().Foreground(th.Muted),
		accent:      lipgloss.NewStyle().Foreground(th.Accent),

		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
		cardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.BorderActive).
			Background(th.Selection).
			Padding(0, 1),
		verseNum: lipgloss.NewStyle().Bold(true).Foreground(th.Accent),

		tabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			Underline(true),
		tabInactive: lipgloss.NewStyle().Foreground(th.Muted),

		sectionTitle: lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		chip: lipgloss.NewStyle().
			Foreground(th.Subtle).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border),
		chipActive: lipgloss.NewStyle().
			Foreground(th.Accent).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.BorderActive),

		badgeQuran:   badge.Foreground(th.Success),
		badgeHadith:  badge.Foreground(th.Warning),
		badgeNeutral: badge.Foreground(th.Subtle),

		quizCorrect: lipgloss.NewStyle().Bold(true).Foreground(th.Success),
		quizWrong:   lipgloss.NewStyle().Bold(true).Foreground(th.Error),
		quizNeutral: lipgloss.NewStyle().Foreground(th.Text),
		quizDimmed:  lipgloss.NewStyle().Foreground(th.Muted),

		userTurn: lipgloss.NewStyle().
			Foreground(th.Text).
			Background(th.UserBubble).
			Padding(0, 1),
		botTurn: lipgloss.NewStyle().
			Foreground(th.Text).
			Background(th.BotBubble).
			Padding(0, 1),

		modalFrame: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(th.BorderActive).
			Padding(1, 2),
	}
}
