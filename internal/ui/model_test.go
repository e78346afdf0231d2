package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quran-tui/internal/insight"
	"quran-tui/internal/quran"
	"quran-tui/internal/settings"
	"quran-tui/internal/theme"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(nil, nil, zap.NewNop(), theme.GetTheme("oasis"), settings.Settings{})
}

func testAnalysis() insight.Analysis {
	quiz := make([]insight.QuizQuestion, 3)
	for i := range quiz {
		quiz[i] = insight.QuizQuestion{
			Question:           "q",
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: 1,
			Explanation:        "because",
		}
	}
	return insight.Analysis{
		SimpleMeaning:      "meaning",
		ReflectionQuestion: "reflect?",
		Topics:             []string{"mercy", "patience"},
		TafsirInsights:     []insight.TafsirInsight{{Scholar: "Ibn Kathir", Insight: "insight"}},
		WordAnalysis: []insight.WordAnalysis{
			{ArabicWord: "رب", Root: "ر-ب-ب", Meaning: "Lord", Nuance: "sustainer"},
			{ArabicWord: "رحمن", Root: "ر-ح-م", Meaning: "Most Merciful", Nuance: "intense mercy"},
		},
		Connections: []insight.Connection{{
			Category:    insight.CategoryQuran,
			Source:      "2:255",
			Text:        "text",
			Explanation: "explains",
		}},
		MoralTeachings:    []string{"teach"},
		HistoricalContext: "context",
		QuizQuestions:     quiz,
	}
}

func testVerse() quran.Verse {
	return quran.Verse{ID: 262, Surah: 2, Number: 255, Arabic: "الله", Transliteration: "Allahu", Translation: "Allah"}
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", tm)
	}
	return m
}

func readyPanel(t *testing.T, m Model) Model {
	t.Helper()
	tm, _ := m.selectVerse(testVerse())
	m = asModel(t, tm)
	tm, _ = m.Update(analysisLoadedMsg{gen: m.panel.analysisGen, analysis: testAnalysis()})
	m = asModel(t, tm)
	if m.panel.state != panelReady {
		t.Fatalf("panel state = %v, want ready", m.panel.state)
	}
	return m
}

func TestSelectSurahClearsDerivedState(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.verses = quran.Fatiha()
	m = readyPanel(t, m)

	m.panel = m.panel.answerQuiz(0, 2)
	priorGen := m.versesGen

	tm, cmd := m.selectSurah(quran.Surah{Number: 2, EnglishName: "Al-Baqarah"})
	m = asModel(t, tm)

	if cmd == nil {
		t.Fatal("selectSurah issued no command")
	}
	if m.verses != nil {
		t.Errorf("verses not cleared: %d left", len(m.verses))
	}
	if m.hasVerse {
		t.Error("previous verse selection survived")
	}
	if m.panel.state != panelIdle {
		t.Errorf("panel state = %v, want idle", m.panel.state)
	}
	if len(m.panel.chat) != 0 {
		t.Errorf("chat transcript not cleared: %d turns left", len(m.panel.chat))
	}
	if len(m.panel.quizAnswers) != 0 {
		t.Errorf("quiz answers not cleared: %d left", len(m.panel.quizAnswers))
	}
	if m.versesGen != priorGen+1 {
		t.Errorf("versesGen = %d, want %d", m.versesGen, priorGen+1)
	}
	if !m.versesLoading {
		t.Error("versesLoading not set")
	}
}

func TestStaleVerseListDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.versesGen = 3
	m.versesLoading = true

	tm, _ := m.Update(versesLoadedMsg{gen: 2, verses: quran.Fatiha()})
	m = asModel(t, tm)

	if m.verses != nil {
		t.Error("stale verse list was applied")
	}
	if !m.versesLoading {
		t.Error("stale completion cleared the loading flag")
	}
}

func TestStaleAnalysisDiscarded(t *testing.T) {
	m := newTestModel(t)
	tm, _ := m.selectVerse(testVerse())
	m = asModel(t, tm)

	tm, _ = m.Update(analysisLoadedMsg{gen: m.panel.analysisGen - 1, analysis: testAnalysis()})
	m = asModel(t, tm)

	if m.panel.state != panelLoading {
		t.Errorf("panel state = %v, want loading after stale completion", m.panel.state)
	}
	if len(m.panel.chat) != 0 {
		t.Error("stale analysis seeded the chat transcript")
	}
}

func TestFatihaFallbackOnVerseFailure(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})

	tm, _ := m.selectSurah(quran.Surah{Number: 1, EnglishName: "Al-Faatiha"})
	m = asModel(t, tm)

	tm, _ = m.Update(versesFailedMsg{gen: m.versesGen, surah: 1, err: errors.New("offline")})
	m = asModel(t, tm)

	if len(m.verses) != 7 {
		t.Fatalf("got %d fallback verses, want 7", len(m.verses))
	}
	if m.versesLoading {
		t.Error("loading flag still set after fallback")
	}
}

func TestNoFallbackForOtherSurahs(t *testing.T) {
	m := newTestModel(t)

	tm, _ := m.selectSurah(quran.Surah{Number: 2})
	m = asModel(t, tm)

	tm, _ = m.Update(versesFailedMsg{gen: m.versesGen, surah: 2, err: errors.New("offline")})
	m = asModel(t, tm)

	if m.verses != nil {
		t.Errorf("surah 2 failure produced %d verses, want none", len(m.verses))
	}
}

func TestWideLayoutAutoSelectsFirstVerse(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.wide {
		t.Fatal("120 columns should be the wide layout")
	}

	tm, _ := m.selectSurah(quran.Surah{Number: 1})
	m = asModel(t, tm)

	tm, _ = m.Update(versesLoadedMsg{gen: m.versesGen, verses: quran.Fatiha()})
	m = asModel(t, tm)

	if !m.hasVerse {
		t.Fatal("wide layout did not auto-select a verse")
	}
	if m.selectedVerse.Number != 1 {
		t.Errorf("auto-selected verse %d, want 1", m.selectedVerse.Number)
	}
	if m.panel.state != panelLoading {
		t.Errorf("panel state = %v, want loading", m.panel.state)
	}
}

func TestNarrowSelectVerseFocusesPanel(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})

	tm, _ := m.selectVerse(testVerse())
	m = asModel(t, tm)

	if m.focus != focusPanel {
		t.Errorf("focus = %v, want panel", m.focus)
	}
}

func TestQuizFirstAnswerLocks(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = readyPanel(t, m)

	m.panel = m.panel.answerQuiz(0, 2)
	m.panel = m.panel.answerQuiz(0, 1)

	if got := m.panel.quizAnswers[0]; got != 2 {
		t.Errorf("answer changed to %d after locking on 2", got)
	}

	m.panel = m.panel.answerQuiz(1, 9)
	if _, ok := m.panel.quizAnswers[1]; ok {
		t.Error("out-of-range option was recorded")
	}
}

func TestChatTranscriptShape(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = readyPanel(t, m)

	if len(m.panel.chat) != 1 {
		t.Fatalf("got %d turns after analysis, want the greeting alone", len(m.panel.chat))
	}
	if m.panel.chat[0].role != insight.RoleModel {
		t.Fatalf("greeting role = %q, want model", m.panel.chat[0].role)
	}

	m.panel.chatInput.SetValue("What does this teach about patience?")
	var cmd tea.Cmd
	m.panel, cmd = m.panel.submitChat()
	if cmd == nil {
		t.Fatal("submitChat issued no command")
	}
	if len(m.panel.chat) != 2 {
		t.Fatalf("got %d turns after submit, want 2", len(m.panel.chat))
	}
	if !m.panel.chatBusy {
		t.Error("chatBusy not set while waiting")
	}

	// A second submit while busy must be a no-op.
	m.panel.chatInput.SetValue("another question")
	m.panel, cmd = m.panel.submitChat()
	if cmd != nil || len(m.panel.chat) != 2 {
		t.Error("submit while busy was not ignored")
	}

	m.panel = m.panel.handleChatReply(chatReplyMsg{gen: m.panel.chatGen, text: "It teaches sabr."})
	if len(m.panel.chat) != 3 {
		t.Fatalf("got %d turns after reply, want 3", len(m.panel.chat))
	}
	if m.panel.chatBusy {
		t.Error("chatBusy still set after reply")
	}
}

func TestChatFailureKeepsUserTurn(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = readyPanel(t, m)

	m.panel.chatInput.SetValue("why?")
	m.panel, _ = m.panel.submitChat()

	m.panel = m.panel.handleChatFailed(chatFailedMsg{gen: m.panel.chatGen, err: errors.New("timeout")})

	if len(m.panel.chat) != 2 {
		t.Fatalf("got %d turns after failure, want greeting plus the user turn", len(m.panel.chat))
	}
	if m.panel.chat[1].role != insight.RoleUser {
		t.Errorf("last turn role = %q, want user", m.panel.chat[1].role)
	}
	if m.panel.chatBusy {
		t.Error("chatBusy still set after failure")
	}
}

func TestStaleChatReplyDiscarded(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = readyPanel(t, m)

	m.panel = m.panel.handleChatReply(chatReplyMsg{gen: m.panel.chatGen - 1, text: "stale"})
	if len(m.panel.chat) != 1 {
		t.Errorf("stale reply appended a turn: %d total", len(m.panel.chat))
	}
}

func TestSearchModalReopenRequeries(t *testing.T) {
	m := newTestModel(t)
	m = m.handleResize(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = readyPanel(t, m)

	var cmd tea.Cmd
	m.panel, cmd = m.panel.openSearch("mercy", 0)
	if cmd == nil {
		t.Fatal("openSearch issued no command")
	}
	firstGen := m.panel.modal.gen

	m.panel = m.panel.handleSearchResults(searchResultsMsg{gen: firstGen, matches: []quran.SearchMatch{
		{SurahName: "Al-Baqarah", Reference: "2:152", Text: "So remember Me"},
	}})
	if len(m.panel.modal.results) != 1 {
		t.Fatalf("got %d results, want 1", len(m.panel.modal.results))
	}

	m.panel = m.panel.closeSearch()
	if m.panel.modal.results != nil {
		t.Error("results survived closing the modal")
	}

	m.panel, cmd = m.panel.openSearch("mercy", 0)
	if cmd == nil {
		t.Fatal("reopen issued no command")
	}
	if m.panel.modal.gen != firstGen+1 {
		t.Errorf("reopen gen = %d, want %d", m.panel.modal.gen, firstGen+1)
	}
	if !m.panel.modal.loading || m.panel.modal.results != nil {
		t.Error("reopen did not start from a clean loading state")
	}

	// A completion from the first request arriving late must be dropped.
	m.panel = m.panel.handleSearchResults(searchResultsMsg{gen: firstGen, matches: []quran.SearchMatch{{Text: "late"}}})
	if !m.panel.modal.loading {
		t.Error("stale search results cleared the loading flag")
	}
}

func TestVisibleSurahsFilter(t *testing.T) {
	m := newTestModel(t)
	m.surahs = []quran.Surah{
		{Number: 1, EnglishName: "Al-Faatiha", EnglishNameTranslation: "The Opening"},
		{Number: 2, EnglishName: "Al-Baqarah", EnglishNameTranslation: "The Cow"},
		{Number: 36, EnglishName: "Yaseen", EnglishNameTranslation: "Yaseen"},
	}

	m.filter.SetValue("opening")
	if got := m.visibleSurahs(); len(got) != 1 || got[0].Number != 1 {
		t.Errorf("filter 'opening' matched %d surahs", len(got))
	}

	m.filter.SetValue("BAQ")
	if got := m.visibleSurahs(); len(got) != 1 || got[0].Number != 2 {
		t.Errorf("filter 'BAQ' matched %d surahs", len(got))
	}

	m.filter.SetValue("36")
	if got := m.visibleSurahs(); len(got) != 1 || got[0].Number != 36 {
		t.Errorf("filter '36' matched %d surahs", len(got))
	}

	m.filter.SetValue("")
	if got := m.visibleSurahs(); len(got) != 3 {
		t.Errorf("empty filter matched %d surahs, want all 3", len(got))
	}
}

func TestSearchTermStripsPunctuation(t *testing.T) {
	word := insight.WordAnalysis{Meaning: "the Most Merciful,"}
	if got := searchTermFor(word); got != "Merciful" {
		t.Errorf("searchTermFor = %q, want %q", got, "Merciful")
	}
}
