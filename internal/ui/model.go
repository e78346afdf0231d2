package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quran-tui/internal/insight"
	"quran-tui/internal/quran"
	"quran-tui/internal/settings"
	"quran-tui/internal/theme"
)

type focusArea int

const (
	focusSurahs focusArea = iota
	focusVerses
	focusPanel
)

// Model is the application shell: surah index, verse list and the
// analysis panel, composed responsively by terminal width.
type Model struct {
	content *quran.Client
	ai      *insight.Client
	log     *zap.Logger
	st      styles
	theme   theme.Theme

	width  int
	height int
	wide   bool
	ready  bool

	focus focusArea

	// surah index
	surahs        []quran.Surah
	surahsLoading bool
	filter        textinput.Model
	filtering     bool
	surahCursor   int
	selectedSurah int // surah number, 0 = none
	lastSurah     int // saved from the previous session

	// verse list of the selected surah
	verses        []quran.Verse
	versesLoading bool
	versesGen     int
	verseCursor   int
	selectedVerse quran.Verse
	hasVerse      bool

	spin spinner.Model

	panel panel
}

func NewModel(content *quran.Client, ai *insight.Client, log *zap.Logger, th theme.Theme, prefs settings.Settings) Model {
	fi := textinput.New()
	fi.Placeholder = "Filter surahs by name or number"
	fi.CharLimit = 60
	fi.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	st := newStyles(th)

	return Model{
		content:       content,
		ai:            ai,
		log:           log,
		st:            st,
		theme:         th,
		focus:         focusSurahs,
		filter:        fi,
		spin:          sp,
		surahsLoading: true,
		panel:         newPanel(ai, content, log, st),
		selectedSurah: 0,
		lastSurah:     prefs.LastSurah,
		verseCursor:   0,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadSurahs(m.content),
		m.spin.Tick,
	)
}

// Snapshot exposes the preferences worth keeping for the next run.
func (m Model) Snapshot() settings.Settings {
	last := m.selectedSurah
	if last == 0 {
		last = m.lastSurah
	}
	return settings.Settings{
		Theme:     strings.ToLower(strings.ReplaceAll(m.theme.Name, " ", "-")),
		LastSurah: last,
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		if m.anythingLoading() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case surahsLoadedMsg:
		m.surahsLoading = false
		m.surahs = msg.surahs
		// Resume at the surah read last session.
		if m.lastSurah > 0 {
			for i, s := range m.surahs {
				if s.Number == m.lastSurah {
					m.surahCursor = i
					break
				}
			}
		}
		return m, nil

	case surahsFailedMsg:
		// Degrade to an empty index rather than a stuck spinner.
		m.log.Warn("surah list failed", zap.Error(msg.err))
		m.surahsLoading = false
		m.surahs = nil
		return m, nil

	case versesLoadedMsg:
		if msg.gen != m.versesGen {
			return m, nil
		}
		m.versesLoading = false
		m.verses = msg.verses
		m.verseCursor = 0
		if m.wide && len(m.verses) > 0 && !m.hasVerse {
			return m.selectVerse(m.verses[0])
		}
		return m, nil

	case versesFailedMsg:
		if msg.gen != m.versesGen {
			return m, nil
		}
		m.log.Warn("verse list failed", zap.Int("surah", msg.surah), zap.Error(msg.err))
		m.versesLoading = false
		if msg.surah == 1 {
			// The opening surah ships with the binary.
			m.verses = quran.Fatiha()
			m.verseCursor = 0
			if m.wide && !m.hasVerse {
				return m.selectVerse(m.verses[0])
			}
			return m, nil
		}
		m.verses = nil
		return m, nil

	case analysisLoadedMsg:
		m.panel = m.panel.handleAnalysisLoaded(msg)
		return m, nil

	case analysisFailedMsg:
		m.panel = m.panel.handleAnalysisFailed(msg)
		return m, nil

	case chatReplyMsg:
		m.panel = m.panel.handleChatReply(msg)
		return m, nil

	case chatFailedMsg:
		m.panel = m.panel.handleChatFailed(msg)
		return m, nil

	case searchResultsMsg:
		m.panel = m.panel.handleSearchResults(msg)
		return m, nil

	case searchFailedMsg:
		m.panel = m.panel.handleSearchFailed(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.wide = msg.Width >= wideBreakpoint
	m.ready = true

	listWidth := msg.Width
	panelWidth := msg.Width
	if m.wide {
		listWidth = msg.Width * 2 / 5
		panelWidth = msg.Width - listWidth - 2
	}

	m.filter.Width = max(20, listWidth-10)
	m.panel = m.panel.setSize(panelWidth, msg.Height-2)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Search modal and chat input take precedence over navigation.
	if m.focus == focusPanel || m.panel.modal.open {
		next, cmd, handled := m.panel.handleKey(msg)
		m.panel = next
		if handled {
			return m, cmd
		}
	}

	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filter.Blur()
			if msg.String() == "esc" {
				m.filter.SetValue("")
			}
			m.surahCursor = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.surahCursor = 0
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		if m.focus == focusSurahs {
			m.filtering = true
			m.filter.Focus()
			return m, nil
		}

	case "tab":
		if m.wide && m.hasVerse {
			if m.focus == focusPanel {
				m.focus = focusVerses
			} else {
				m.focus = focusPanel
			}
			return m, nil
		}

	case "esc":
		switch m.focus {
		case focusPanel:
			m.focus = focusVerses
		case focusVerses:
			m.focus = focusSurahs
		}
		return m, nil

	case "b", "backspace":
		if m.focus == focusVerses {
			m.focus = focusSurahs
			return m, nil
		}

	case "up", "k":
		switch m.focus {
		case focusSurahs:
			if m.surahCursor > 0 {
				m.surahCursor--
			}
		case focusVerses:
			if m.verseCursor > 0 {
				m.verseCursor--
			}
		}
		return m, nil

	case "down", "j":
		switch m.focus {
		case focusSurahs:
			if m.surahCursor < len(m.visibleSurahs())-1 {
				m.surahCursor++
			}
		case focusVerses:
			if m.verseCursor < len(m.verses)-1 {
				m.verseCursor++
			}
		}
		return m, nil

	case "enter":
		switch m.focus {
		case focusSurahs:
			visible := m.visibleSurahs()
			if m.surahCursor < len(visible) {
				return m.selectSurah(visible[m.surahCursor])
			}
		case focusVerses:
			if m.verseCursor < len(m.verses) {
				return m.selectVerse(m.verses[m.verseCursor])
			}
		}
		return m, nil
	}

	return m, nil
}

// visibleSurahs narrows the index by a case-insensitive substring match
// against English name, name translation, or number.
func (m Model) visibleSurahs() []quran.Surah {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.surahs
	}
	var out []quran.Surah
	for _, s := range m.surahs {
		if strings.Contains(strings.ToLower(s.EnglishName), needle) ||
			strings.Contains(strings.ToLower(s.EnglishNameTranslation), needle) ||
			strings.Contains(strconv.Itoa(s.Number), needle) {
			out = append(out, s)
		}
	}
	return out
}

// selectSurah clears every piece of state derived from the previous
// selection before the new verse list request resolves.
func (m Model) selectSurah(s quran.Surah) (tea.Model, tea.Cmd) {
	m.selectedSurah = s.Number
	m.verses = nil
	m.verseCursor = 0
	m.hasVerse = false
	m.selectedVerse = quran.Verse{}
	m.panel = m.panel.reset()

	m.versesGen++
	m.versesLoading = true
	m.focus = focusVerses

	return m, tea.Batch(
		loadVerses(m.content, s.Number, m.versesGen),
		m.spin.Tick,
	)
}

func (m Model) selectVerse(v quran.Verse) (tea.Model, tea.Cmd) {
	m.selectedVerse = v
	m.hasVerse = true
	m.verseCursor = m.verseIndex(v)

	var cmd tea.Cmd
	m.panel, cmd = m.panel.start(v)

	if !m.wide {
		// Narrow layout: the panel replaces the list, scrolled to top.
		m.focus = focusPanel
	}

	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m Model) verseIndex(v quran.Verse) int {
	for i, candidate := range m.verses {
		if candidate.ID == v.ID {
			return i
		}
	}
	return 0
}

func (m Model) anythingLoading() bool {
	return m.surahsLoading || m.versesLoading ||
		m.panel.state == panelLoading || m.panel.chatBusy || m.panel.modal.loading
}
