package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"quran-tui/internal/insight"
	"quran-tui/internal/quran"
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	listWidth := m.width
	if m.wide {
		listWidth = m.width * 2 / 5
	}

	var body string
	if m.wide {
		left := m.renderListPane(listWidth)
		right := m.renderPanelPane()
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	} else if m.focus == focusPanel || m.panel.modal.open {
		body = m.renderPanelPane()
	} else {
		body = m.renderListPane(listWidth)
	}

	return body + "\n" + m.statusLine()
}

func (m Model) renderListPane(width int) string {
	if m.selectedSurah == 0 || m.focus == focusSurahs {
		return m.renderSurahIndex(width)
	}
	return m.renderVerseList(width)
}

func (m Model) renderSurahIndex(width int) string {
	var sb strings.Builder

	title := m.st.title.Render("Quran Verse Explorer")
	sb.WriteString(m.st.header.Width(width).Render(title) + "\n")

	if m.filtering {
		sb.WriteString(m.filter.View() + "\n")
	} else if m.filter.Value() != "" {
		sb.WriteString(m.st.muted.Render("filter: "+m.filter.Value()) + "\n")
	}

	if m.surahsLoading {
		sb.WriteString("\n" + m.spin.View() + m.st.muted.Render(" Loading surahs..."))
		return sb.String()
	}

	visible := m.visibleSurahs()
	if len(visible) == 0 {
		sb.WriteString("\n" + m.st.muted.Render("No surahs to show."))
		return sb.String()
	}

	rows := max(5, m.height-8)
	start, end := window(m.surahCursor, len(visible), rows)
	for i := start; i < end; i++ {
		s := visible[i]
		line := fmt.Sprintf("%3d  %s — %s (%d)", s.Number, s.EnglishName, s.EnglishNameTranslation, s.NumberOfAyahs)
		tag := m.st.muted.Render(" " + s.RevelationType)
		if i == m.surahCursor && m.focus == focusSurahs {
			sb.WriteString(m.st.accent.Render("› "+line) + tag + "\n")
		} else {
			sb.WriteString(m.st.translation.Render("  "+line) + tag + "\n")
		}
	}

	return sb.String()
}

func (m Model) renderVerseList(width int) string {
	var sb strings.Builder

	surahName := fmt.Sprintf("Surah %d", m.selectedSurah)
	for _, s := range m.surahs {
		if s.Number == m.selectedSurah {
			surahName = fmt.Sprintf("%s — %s", s.EnglishName, s.EnglishNameTranslation)
			break
		}
	}
	sb.WriteString(m.st.header.Width(width).Render(m.st.title.Render(surahName)) + "\n")

	if m.versesLoading {
		sb.WriteString("\n" + m.spin.View() + m.st.muted.Render(" Loading verses..."))
		return sb.String()
	}
	if len(m.verses) == 0 {
		sb.WriteString("\n" + m.st.muted.Render("No verses to show."))
		return sb.String()
	}

	// Each card is several lines tall; keep a handful around the cursor.
	cardRows := max(1, (m.height-6)/6)
	start, end := window(m.verseCursor, len(m.verses), cardRows)
	for i := start; i < end; i++ {
		sb.WriteString(m.renderVerseCard(m.verses[i], width-2, i == m.verseCursor) + "\n")
	}

	return sb.String()
}

// renderVerseCard shows the three text forms of one verse, with a
// distinct treatment when selected.
func (m Model) renderVerseCard(v quran.Verse, width int, selected bool) string {
	inner := width - 4
	var sb strings.Builder
	sb.WriteString(m.st.verseNum.Render(fmt.Sprintf("(%d)", v.Number)) + "  " +
		m.st.arabic.Render(v.Arabic) + "\n")
	sb.WriteString(m.st.translit.Render(wordwrap.String(v.Transliteration, inner)) + "\n")
	sb.WriteString(m.st.translation.Render(wordwrap.String(v.Translation, inner)))

	style := m.st.card
	if selected && m.hasVerse && m.selectedVerse.ID == v.ID {
		style = m.st.cardSelected
	} else if selected {
		style = m.st.card.BorderForeground(m.st.theme.BorderActive)
	}
	return style.Width(width).Render(sb.String())
}

func (m Model) renderPanelPane() string {
	if m.panel.modal.open {
		return m.panel.renderModal(m.spin.View())
	}
	return m.panel.view(m.spin.View())
}

func (m Model) statusLine() string {
	if m.panel.modal.open {
		return m.st.help.Render("j/k: scroll | esc: close search")
	}
	switch m.focus {
	case focusSurahs:
		return m.st.help.Render("/: filter | j/k: move | enter: open surah | q: quit")
	case focusVerses:
		return m.st.help.Render("j/k: move | enter: analyze verse | b: surah index | q: quit")
	default:
		if m.panel.tab == tabChat && m.panel.chatFocus {
			return m.st.help.Render("enter: send | esc: leave input")
		}
		return m.st.help.Render("h/l: tabs | j/k: move/scroll | esc: back | q: quit")
	}
}

// --- analysis panel rendering ---

func (p panel) view(spinnerView string) string {
	var sb strings.Builder

	header := fmt.Sprintf("Verse %d · Analysis", p.verse.Number)
	if p.state == panelIdle {
		header = "Analysis"
	}
	sb.WriteString(p.st.header.Width(p.width).Render(p.st.title.Render(header)) + "\n")
	sb.WriteString(p.renderTabs() + "\n\n")

	switch p.state {
	case panelIdle:
		sb.WriteString(p.st.muted.Render("Select a verse to reveal its tafsir, word roots and more."))
	case panelLoading:
		sb.WriteString(spinnerView + p.st.muted.Render(" Consulting the classical sources..."))
	case panelFailed:
		sb.WriteString(p.st.errText.Render("Unable to load analysis.") + "\n" +
			p.st.muted.Render("Re-select the verse to try again."))
	case panelReady:
		sb.WriteString(p.renderActiveTab())
	}

	return sb.String()
}

func (p panel) renderTabs() string {
	parts := make([]string, 0, len(tabLabels))
	for i, label := range tabLabels {
		if tabID(i) == p.tab {
			parts = append(parts, p.st.tabActive.Render(label))
		} else {
			parts = append(parts, p.st.tabInactive.Render(label))
		}
	}
	return strings.Join(parts, p.st.muted.Render(" · "))
}

func (p panel) renderActiveTab() string {
	switch p.tab {
	case tabWords:
		return p.renderWords()
	case tabConnections:
		return p.scrolled(p.renderConnections())
	case tabQuiz:
		return p.renderQuiz()
	case tabChat:
		return p.renderChat()
	default:
		return p.scrolled(p.renderMeaning())
	}
}

// scrolled places long content into the panel viewport.
func (p panel) scrolled(content string) string {
	vp := p.vp
	vp.SetContent(content)
	return vp.View()
}

func (p panel) renderMeaning() string {
	wrap := max(20, p.width-4)
	var sb strings.Builder

	sb.WriteString(p.st.sectionTitle.Render("SIMPLIFIED MEANING") + "\n")
	sb.WriteString(wordwrap.String(p.analysis.SimpleMeaning, wrap) + "\n\n")

	if len(p.analysis.Topics) > 0 {
		chips := make([]string, 0, len(p.analysis.Topics))
		for i, topic := range p.analysis.Topics {
			if i == p.topicCursor {
				chips = append(chips, p.st.chipActive.Render(topic))
			} else {
				chips = append(chips, p.st.chip.Render(topic))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, chips...) + "\n")
		sb.WriteString(p.st.muted.Render("t: explore topic · T: next topic") + "\n\n")
	}

	sb.WriteString(p.st.sectionTitle.Render("REFLECTION") + "\n")
	sb.WriteString(p.st.translit.Render(wordwrap.String("\""+p.analysis.ReflectionQuestion+"\"", wrap)) + "\n\n")

	sb.WriteString(p.st.sectionTitle.Render("TAFSIR INSIGHTS") + "\n")
	for _, t := range p.analysis.TafsirInsights {
		sb.WriteString(p.st.title.Render(t.Scholar) + "\n")
		sb.WriteString(wordwrap.String(t.Insight, wrap) + "\n\n")
	}

	sb.WriteString(p.st.sectionTitle.Render("MORAL ACTION POINTS") + "\n")
	for i, teaching := range p.analysis.MoralTeachings {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, wordwrap.String(teaching, wrap-3)))
	}

	if strings.TrimSpace(p.analysis.HistoricalContext) != "" {
		sb.WriteString("\n" + p.st.sectionTitle.Render("CONTEXT OF REVELATION") + "\n")
		sb.WriteString(wordwrap.String(p.analysis.HistoricalContext, wrap) + "\n")
	}

	return sb.String()
}

func (p panel) renderWords() string {
	wrap := max(20, p.width-6)
	var sb strings.Builder
	sb.WriteString(p.st.muted.Render("j/k: highlight shared roots · f: find word in this surah") + "\n\n")

	rows := max(1, (p.height-8)/5)
	start, end := window(p.wordCursor, len(p.analysis.WordAnalysis), rows)
	for i := start; i < end; i++ {
		word := p.analysis.WordAnalysis[i]
		sameRoot := p.highlightedRoot != "" && word.Root == p.highlightedRoot
		dimmed := p.highlightedRoot != "" && word.Root != p.highlightedRoot

		var card strings.Builder
		card.WriteString(p.st.arabic.Render(word.ArabicWord) + "  ")
		card.WriteString(p.st.muted.Render("root: ") + p.st.accent.Render(word.Root) + "\n")
		card.WriteString(p.st.title.Render(word.Meaning) + "\n")
		card.WriteString(wordwrap.String(word.Nuance, wrap))

		style := p.st.card
		switch {
		case sameRoot:
			style = p.st.cardSelected
		case dimmed:
			style = p.st.card.Faint(true)
		case i == p.wordCursor:
			style = p.st.card.BorderForeground(p.st.theme.BorderActive)
		}
		sb.WriteString(style.Width(p.width-2).Render(card.String()) + "\n")
	}

	return sb.String()
}

func (p panel) renderConnections() string {
	wrap := max(20, p.width-4)
	var sb strings.Builder

	for _, conn := range p.analysis.Connections {
		sb.WriteString(p.categoryBadge(conn.Category) + " " + p.st.subtle.Render(conn.Source) + "\n")
		sb.WriteString(wordwrap.String("\""+conn.Text+"\"", wrap) + "\n")
		sb.WriteString(p.st.muted.Render(wordwrap.String(conn.Explanation, wrap)) + "\n")
		if conn.Link != "" {
			sb.WriteString(p.st.translit.Render(conn.Link) + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (p panel) categoryBadge(c insight.ConnectionCategory) string {
	switch c {
	case insight.CategoryQuran:
		return p.st.badgeQuran.Render("QURAN")
	case insight.CategoryHadith:
		return p.st.badgeHadith.Render("HADITH")
	default:
		return p.st.badgeNeutral.Render(strings.ToUpper(string(c)))
	}
}

func (p panel) renderQuiz() string {
	wrap := max(20, p.width-6)
	var sb strings.Builder
	sb.WriteString(p.st.muted.Render("j/k: question · 1-4: answer (first answer locks)") + "\n\n")

	for i, q := range p.analysis.QuizQuestions {
		marker := "  "
		if i == p.quizCursor {
			marker = p.st.accent.Render("› ")
		}
		sb.WriteString(marker + p.st.title.Render(wordwrap.String(q.Question, wrap)) + "\n")

		chosen, answered := p.quizAnswers[i]
		for oIdx, option := range q.Options {
			label := fmt.Sprintf("  %d) %s", oIdx+1, option)
			switch {
			case answered && oIdx == q.CorrectAnswerIndex:
				sb.WriteString(p.st.quizCorrect.Render(label+" ✓") + "\n")
			case answered && oIdx == chosen:
				sb.WriteString(p.st.quizWrong.Render(label+" ✗") + "\n")
			case answered:
				sb.WriteString(p.st.quizDimmed.Render(label) + "\n")
			default:
				sb.WriteString(p.st.quizNeutral.Render(label) + "\n")
			}
		}

		if answered {
			verdict := p.st.quizCorrect.Render("Correct!")
			if chosen != q.CorrectAnswerIndex {
				verdict = p.st.quizWrong.Render("Incorrect")
			}
			sb.WriteString("  " + verdict + " " + p.st.muted.Render(wordwrap.String(q.Explanation, wrap)) + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (p panel) renderChat() string {
	var sb strings.Builder
	sb.WriteString(p.chatVP.View() + "\n")
	sb.WriteString(p.chatInput.View())
	return sb.String()
}

// renderTranscript builds the chat viewport's content; model turns are
// rendered as markdown since the tutor cites sources in lists and
// emphasis.
func (p panel) renderTranscript() string {
	wrap := max(20, p.width-6)
	var sb strings.Builder

	for _, msg := range p.chat {
		if msg.role == insight.RoleUser {
			sb.WriteString(p.st.subtle.Render("You") + "\n")
			sb.WriteString(p.st.userTurn.Render(wordwrap.String(msg.text, wrap)) + "\n\n")
			continue
		}
		sb.WriteString(p.st.accent.Render("Tutor") + "\n")
		rendered := ""
		if p.md != nil {
			if out, err := p.md.Render(msg.text); err == nil {
				rendered = strings.TrimRight(out, "\n")
			}
		}
		if rendered == "" {
			rendered = p.st.botTurn.Render(wordwrap.String(msg.text, wrap))
		}
		sb.WriteString(rendered + "\n\n")
	}

	if p.chatBusy {
		sb.WriteString(p.st.muted.Render("Tutor is writing..."))
	}

	return sb.String()
}

func (p panel) renderModal(spinnerView string) string {
	wrap := max(20, p.width-10)
	var sb strings.Builder

	scope := "whole Quran"
	if p.modal.scope > 0 {
		scope = fmt.Sprintf("surah %d", p.modal.scope)
	}
	sb.WriteString(p.st.title.Render(fmt.Sprintf("Search \"%s\"", p.modal.query)) +
		p.st.muted.Render("  in "+scope) + "\n\n")

	switch {
	case p.modal.loading:
		sb.WriteString(spinnerView + p.st.muted.Render(" Searching..."))
	case len(p.modal.results) == 0:
		sb.WriteString(p.st.muted.Render("No matches found."))
	default:
		var list strings.Builder
		for _, match := range p.modal.results {
			list.WriteString(p.st.accent.Render(match.Reference) + " " +
				p.st.subtle.Render(match.SurahName) + " " +
				p.st.muted.Render("["+match.RevelationType+"]") + "\n")
			list.WriteString(wordwrap.String(match.Text, wrap) + "\n\n")
		}
		vp := p.modal.vp
		vp.SetContent(list.String())
		sb.WriteString(vp.View())
	}

	return p.st.modalFrame.Width(min(p.width-2, wrap+6)).Render(sb.String())
}

// window returns the [start,end) slice bounds that keep cursor visible
// inside rows items.
func window(cursor, total, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > total {
		start = total - rows
	}
	return start, start + rows
}
