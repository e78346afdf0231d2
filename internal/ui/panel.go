package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quran-tui/internal/insight"
	"quran-tui/internal/quran"
)

type tabID int

const (
	tabMeaning tabID = iota
	tabWords
	tabConnections
	tabQuiz
	tabChat
)

var tabLabels = []string{"Meaning", "Words", "Links", "Quiz", "Ask"}

type panelState int

const (
	panelIdle panelState = iota
	panelLoading
	panelReady
	panelFailed
)

type chatMessage struct {
	id   string
	role string // insight.RoleUser or insight.RoleModel
	text string
	at   time.Time
}

// searchModal is the transient cross-reference/topic search overlay.
// Results live only while the modal is open; reopening always
// re-queries.
type searchModal struct {
	open    bool
	loading bool
	query   string
	scope   int // surah number, 0 = whole Quran
	results []quran.SearchMatch
	gen     int
	vp      viewport.Model
}

// panel owns the selected verse's analysis lifecycle:
// Idle -> Loading -> Ready | Failed, re-entered per verse selection.
type panel struct {
	ai      *insight.Client
	content *quran.Client
	log     *zap.Logger
	st      styles

	state    panelState
	verse    quran.Verse
	analysis insight.Analysis
	tab      tabID

	analysisGen int

	// quiz: question index -> chosen option, write-once
	quizAnswers map[int]int
	quizCursor  int

	// word study
	wordCursor      int
	highlightedRoot string

	// topic chips on the meaning tab
	topicCursor int

	// chat
	chat      []chatMessage
	chatInput textinput.Model
	chatFocus bool
	chatBusy  bool
	chatGen   int
	chatVP    viewport.Model

	modal searchModal

	vp     viewport.Model
	md     *glamour.TermRenderer
	width  int
	height int
}

func newPanel(ai *insight.Client, content *quran.Client, log *zap.Logger, st styles) panel {
	ci := textinput.New()
	ci.Placeholder = "Ask a follow-up question..."
	ci.CharLimit = 400
	ci.Width = 50

	return panel{
		ai:          ai,
		content:     content,
		log:         log,
		st:          st,
		state:       panelIdle,
		chatInput:   ci,
		quizAnswers: make(map[int]int),
		vp:          viewport.New(60, 20),
		chatVP:      viewport.New(60, 16),
	}
}

func (p panel) setSize(width, height int) panel {
	p.width = width
	p.height = height
	p.vp.Width = width
	p.vp.Height = height - 5
	p.chatVP.Width = width
	p.chatVP.Height = height - 8
	p.chatInput.Width = max(20, width-6)
	p.modal.vp.Width = max(20, width-8)
	p.modal.vp.Height = max(5, height-10)

	if md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, width-8)),
	); err == nil {
		p.md = md
	}
	return p
}

// start clears all state derived from the previous verse and issues one
// analyze request for the new one.
func (p panel) start(verse quran.Verse) (panel, tea.Cmd) {
	p.state = panelLoading
	p.verse = verse
	p.analysis = insight.Analysis{}
	p.analysisGen++
	p.chatGen++
	p.chat = nil
	p.chatBusy = false
	p.chatInput.SetValue("")
	p.quizAnswers = make(map[int]int)
	p.quizCursor = 0
	p.wordCursor = 0
	p.highlightedRoot = ""
	p.topicCursor = 0
	p.modal = searchModal{vp: p.modal.vp}
	p.vp.GotoTop()
	return p, loadAnalysis(p.ai, verse, p.analysisGen)
}

// reset returns the panel to Idle, used when the surah changes and no
// verse is selected yet.
func (p panel) reset() panel {
	cleared, _ := p.start(quran.Verse{})
	cleared.state = panelIdle
	cleared.verse = quran.Verse{}
	return cleared
}

func (p panel) handleAnalysisLoaded(msg analysisLoadedMsg) panel {
	if msg.gen != p.analysisGen {
		return p
	}
	p.state = panelReady
	p.analysis = msg.analysis
	p.chat = []chatMessage{{
		id:   uuid.NewString(),
		role: insight.RoleModel,
		text: fmt.Sprintf("Salaam. I have analyzed Verse %d for you. What would you like to explore deeper?", p.verse.Number),
		at:   time.Now(),
	}}
	p = p.refreshChat()
	return p
}

func (p panel) handleAnalysisFailed(msg analysisFailedMsg) panel {
	if msg.gen != p.analysisGen {
		return p
	}
	p.log.Warn("verse analysis failed",
		zap.Int("surah", p.verse.Surah),
		zap.Int("verse", p.verse.Number),
		zap.Error(msg.err))
	p.state = panelFailed
	return p
}

func (p panel) handleChatReply(msg chatReplyMsg) panel {
	if msg.gen != p.chatGen {
		return p
	}
	p.chatBusy = false
	p.chat = append(p.chat, chatMessage{
		id:   uuid.NewString(),
		role: insight.RoleModel,
		text: msg.text,
		at:   time.Now(),
	})
	return p.refreshChat()
}

func (p panel) handleChatFailed(msg chatFailedMsg) panel {
	if msg.gen != p.chatGen {
		return p
	}
	// The user's turn stays in the transcript unanswered; they can
	// resubmit when ready.
	p.log.Warn("chat exchange failed",
		zap.Int("surah", p.verse.Surah),
		zap.Int("verse", p.verse.Number),
		zap.Error(msg.err))
	p.chatBusy = false
	return p.refreshChat()
}

func (p panel) handleSearchResults(msg searchResultsMsg) panel {
	if msg.gen != p.modal.gen || !p.modal.open {
		return p
	}
	p.modal.loading = false
	p.modal.results = msg.matches
	p.modal.vp.GotoTop()
	return p
}

func (p panel) handleSearchFailed(msg searchFailedMsg) panel {
	if msg.gen != p.modal.gen || !p.modal.open {
		return p
	}
	p.log.Warn("search failed",
		zap.String("query", p.modal.query),
		zap.Int("scope", p.modal.scope),
		zap.Error(msg.err))
	p.modal.loading = false
	p.modal.results = []quran.SearchMatch{}
	return p
}

// openSearch opens the modal and issues exactly one search request.
func (p panel) openSearch(query string, scope int) (panel, tea.Cmd) {
	p.modal.open = true
	p.modal.loading = true
	p.modal.query = query
	p.modal.scope = scope
	p.modal.results = nil
	p.modal.gen++
	return p, runSearch(p.content, query, scope, p.modal.gen)
}

// closeSearch discards the result list entirely.
func (p panel) closeSearch() panel {
	p.modal.open = false
	p.modal.loading = false
	p.modal.results = nil
	p.modal.query = ""
	return p
}

// answerQuiz records a choice for a question. The first answer locks:
// later selections for the same question are no-ops.
func (p panel) answerQuiz(question, option int) panel {
	if p.state != panelReady || question < 0 || question >= len(p.analysis.QuizQuestions) {
		return p
	}
	if option < 0 || option >= len(p.analysis.QuizQuestions[question].Options) {
		return p
	}
	if _, answered := p.quizAnswers[question]; answered {
		return p
	}
	p.quizAnswers[question] = option
	return p
}

// submitChat appends the user's turn, clears the input and issues one
// request carrying the full prior history. No-op while a request is
// outstanding or when the input is blank.
func (p panel) submitChat() (panel, tea.Cmd) {
	question := strings.TrimSpace(p.chatInput.Value())
	if question == "" || p.chatBusy || p.state != panelReady {
		return p, nil
	}

	history := make([]insight.Turn, 0, len(p.chat))
	for _, m := range p.chat {
		history = append(history, insight.Turn{Role: m.role, Text: m.text})
	}

	p.chat = append(p.chat, chatMessage{
		id:   uuid.NewString(),
		role: insight.RoleUser,
		text: question,
		at:   time.Now(),
	})
	p.chatInput.SetValue("")
	p.chatBusy = true
	p = p.refreshChat()
	return p, sendChat(p.ai, p.verse, history, question, p.chatGen)
}

// refreshChat re-renders the transcript and pins the viewport to the
// newest turn.
func (p panel) refreshChat() panel {
	p.chatVP.SetContent(p.renderTranscript())
	p.chatVP.GotoBottom()
	return p
}

func (p panel) switchTab(t tabID) panel {
	p.tab = t
	p.vp.GotoTop()
	if t == tabChat {
		p.chatFocus = true
		p.chatInput.Focus()
		p = p.refreshChat()
	} else {
		p.chatFocus = false
		p.chatInput.Blur()
	}
	return p
}

// handleKey processes a key press while the panel has focus. The
// returned bool reports whether the key was consumed.
func (p panel) handleKey(msg tea.KeyMsg) (panel, tea.Cmd, bool) {
	if p.modal.open {
		switch msg.String() {
		case "esc", "q":
			return p.closeSearch(), nil, true
		default:
			var cmd tea.Cmd
			p.modal.vp, cmd = p.modal.vp.Update(msg)
			return p, cmd, true
		}
	}

	// The chat input swallows printable keys while focused.
	if p.tab == tabChat && p.chatFocus {
		switch msg.String() {
		case "enter":
			next, cmd := p.submitChat()
			return next, cmd, true
		case "esc":
			p.chatFocus = false
			p.chatInput.Blur()
			return p, nil, true
		default:
			var cmd tea.Cmd
			p.chatInput, cmd = p.chatInput.Update(msg)
			return p, cmd, true
		}
	}

	switch msg.String() {
	case "left", "h":
		if p.tab > tabMeaning {
			return p.switchTab(p.tab - 1), nil, true
		}
		return p, nil, true
	case "right", "l":
		if p.tab < tabChat {
			return p.switchTab(p.tab + 1), nil, true
		}
		return p, nil, true
	case "i":
		if p.tab == tabChat {
			p.chatFocus = true
			p.chatInput.Focus()
			return p, nil, true
		}
	}

	if p.state != panelReady {
		return p, nil, false
	}

	switch p.tab {
	case tabMeaning:
		switch msg.String() {
		case "T":
			if n := len(p.analysis.Topics); n > 0 {
				p.topicCursor = (p.topicCursor + 1) % n
			}
			return p, nil, true
		case "t":
			if len(p.analysis.Topics) > 0 {
				next, cmd := p.openSearch(p.analysis.Topics[p.topicCursor], 0)
				return next, cmd, true
			}
			return p, nil, true
		}
	case tabWords:
		switch msg.String() {
		case "up", "k":
			if p.wordCursor > 0 {
				p.wordCursor--
			}
			p.highlightedRoot = p.analysis.WordAnalysis[p.wordCursor].Root
			return p, nil, true
		case "down", "j":
			if p.wordCursor < len(p.analysis.WordAnalysis)-1 {
				p.wordCursor++
			}
			p.highlightedRoot = p.analysis.WordAnalysis[p.wordCursor].Root
			return p, nil, true
		case "esc":
			if p.highlightedRoot != "" {
				p.highlightedRoot = ""
				return p, nil, true
			}
		case "f":
			word := p.analysis.WordAnalysis[p.wordCursor]
			next, cmd := p.openSearch(searchTermFor(word), p.verse.Surah)
			return next, cmd, true
		}
	case tabQuiz:
		switch msg.String() {
		case "up", "k":
			if p.quizCursor > 0 {
				p.quizCursor--
			}
			return p, nil, true
		case "down", "j":
			if p.quizCursor < len(p.analysis.QuizQuestions)-1 {
				p.quizCursor++
			}
			return p, nil, true
		case "1", "2", "3", "4":
			option := int(msg.String()[0] - '1')
			return p.answerQuiz(p.quizCursor, option), nil, true
		}
	}

	// Remaining keys scroll the active tab's viewport.
	var cmd tea.Cmd
	if p.tab == tabChat {
		p.chatVP, cmd = p.chatVP.Update(msg)
	} else {
		p.vp, cmd = p.vp.Update(msg)
	}
	return p, cmd, cmd != nil
}

// searchTermFor picks the word to look up in the translation text. The
// search API matches the English edition, so the literal meaning is
// used rather than the Arabic surface form.
func searchTermFor(word insight.WordAnalysis) string {
	meaning := strings.TrimSpace(word.Meaning)
	fields := strings.Fields(meaning)
	if len(fields) == 0 {
		return meaning
	}
	term := fields[len(fields)-1]
	return strings.Trim(term, ".,;:!?\"'()")
}
