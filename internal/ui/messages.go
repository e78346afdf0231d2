package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"quran-tui/internal/insight"
	"quran-tui/internal/quran"
)

// Completion messages for async flows. Every navigable flow carries the
// generation it was issued under; completions for an abandoned
// generation are discarded by Update.
type surahsLoadedMsg struct{ surahs []quran.Surah }
type surahsFailedMsg struct{ err error }

type versesLoadedMsg struct {
	gen    int
	verses []quran.Verse
}
type versesFailedMsg struct {
	gen   int
	surah int
	err   error
}

type analysisLoadedMsg struct {
	gen      int
	analysis insight.Analysis
}
type analysisFailedMsg struct {
	gen int
	err error
}

type chatReplyMsg struct {
	gen  int
	text string
}
type chatFailedMsg struct {
	gen int
	err error
}

type searchResultsMsg struct {
	gen     int
	matches []quran.SearchMatch
}
type searchFailedMsg struct {
	gen int
	err error
}

func loadSurahs(client *quran.Client) tea.Cmd {
	return func() tea.Msg {
		surahs, err := client.ListSurahs(context.Background())
		if err != nil {
			return surahsFailedMsg{err}
		}
		return surahsLoadedMsg{surahs}
	}
}

func loadVerses(client *quran.Client, surah, gen int) tea.Cmd {
	return func() tea.Msg {
		verses, err := client.GetVerses(context.Background(), surah)
		if err != nil {
			return versesFailedMsg{gen: gen, surah: surah, err: err}
		}
		return versesLoadedMsg{gen: gen, verses: verses}
	}
}

func loadAnalysis(client *insight.Client, verse quran.Verse, gen int) tea.Cmd {
	return func() tea.Msg {
		analysis, err := client.Analyze(context.Background(), verse)
		if err != nil {
			return analysisFailedMsg{gen: gen, err: err}
		}
		return analysisLoadedMsg{gen: gen, analysis: analysis}
	}
}

func sendChat(client *insight.Client, verse quran.Verse, history []insight.Turn, question string, gen int) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.Chat(context.Background(), verse, history, question)
		if err != nil {
			return chatFailedMsg{gen: gen, err: err}
		}
		return chatReplyMsg{gen: gen, text: reply}
	}
}

func runSearch(client *quran.Client, query string, surah, gen int) tea.Cmd {
	return func() tea.Msg {
		matches, err := client.Search(context.Background(), query, surah)
		if err != nil {
			return searchFailedMsg{gen: gen, err: err}
		}
		return searchResultsMsg{gen: gen, matches: matches}
	}
}
