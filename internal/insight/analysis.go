package insight

import (
	"fmt"
	"strings"
)

// ConnectionCategory classifies a cross-reference.
type ConnectionCategory string

const (
	CategoryQuran      ConnectionCategory = "quran"
	CategoryHadith     ConnectionCategory = "hadith"
	CategoryHistorical ConnectionCategory = "historical"
	CategoryGeographic ConnectionCategory = "geographic"
	CategoryGeneral    ConnectionCategory = "general"
)

type TafsirInsight struct {
	Scholar string `json:"scholar"`
	Insight string `json:"insight"`
}

type WordAnalysis struct {
	ArabicWord string `json:"arabicWord"`
	Root       string `json:"root"`
	Meaning    string `json:"meaning"`
	Nuance     string `json:"nuance"`
}

// Connection links the verse to related Quran, hadith or contextual
// material. Link is an optional external URL.
type Connection struct {
	Category    ConnectionCategory `json:"category"`
	Source      string             `json:"source"`
	Text        string             `json:"text"`
	Explanation string             `json:"explanation"`
	Link        string             `json:"link,omitempty"`
}

type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Analysis is the full structured study document for one verse.
type Analysis struct {
	SimpleMeaning      string          `json:"simpleMeaning"`
	Topics             []string        `json:"topics"`
	TafsirInsights     []TafsirInsight `json:"tafsirInsights"`
	WordAnalysis       []WordAnalysis  `json:"wordAnalysis"`
	HistoricalContext  string          `json:"historicalContext"`
	MoralTeachings     []string        `json:"moralTeachings"`
	Connections        []Connection    `json:"connections"`
	ReflectionQuestion string          `json:"reflectionQuestion"`
	QuizQuestions      []QuizQuestion  `json:"quizQuestions"`
}

// validate enforces the required-fields contract: an analysis missing
// any required part is treated as a failed fetch, never rendered
// partially.
func (a *Analysis) validate() error {
	if strings.TrimSpace(a.SimpleMeaning) == "" {
		return fmt.Errorf("%w: missing simpleMeaning", ErrInvalidResponse)
	}
	if len(a.TafsirInsights) == 0 {
		return fmt.Errorf("%w: missing tafsirInsights", ErrInvalidResponse)
	}
	for i, t := range a.TafsirInsights {
		if strings.TrimSpace(t.Scholar) == "" || strings.TrimSpace(t.Insight) == "" {
			return fmt.Errorf("%w: tafsirInsights[%d] incomplete", ErrInvalidResponse, i)
		}
	}
	if len(a.WordAnalysis) == 0 {
		return fmt.Errorf("%w: missing wordAnalysis", ErrInvalidResponse)
	}
	for i, w := range a.WordAnalysis {
		if strings.TrimSpace(w.ArabicWord) == "" || strings.TrimSpace(w.Root) == "" || strings.TrimSpace(w.Meaning) == "" {
			return fmt.Errorf("%w: wordAnalysis[%d] incomplete", ErrInvalidResponse, i)
		}
	}
	if len(a.MoralTeachings) == 0 {
		return fmt.Errorf("%w: missing moralTeachings", ErrInvalidResponse)
	}
	if len(a.Connections) == 0 {
		return fmt.Errorf("%w: missing connections", ErrInvalidResponse)
	}
	for i := range a.Connections {
		c := &a.Connections[i]
		if strings.TrimSpace(c.Source) == "" || strings.TrimSpace(c.Text) == "" {
			return fmt.Errorf("%w: connections[%d] incomplete", ErrInvalidResponse, i)
		}
		c.Category = normalizeCategory(c.Category)
	}
	if strings.TrimSpace(a.ReflectionQuestion) == "" {
		return fmt.Errorf("%w: missing reflectionQuestion", ErrInvalidResponse)
	}
	if len(a.QuizQuestions) != 3 {
		return fmt.Errorf("%w: expected 3 quiz questions, got %d", ErrInvalidResponse, len(a.QuizQuestions))
	}
	for i, q := range a.QuizQuestions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: quizQuestions[%d] has no question", ErrInvalidResponse, i)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("%w: quizQuestions[%d] has %d options", ErrInvalidResponse, i, len(q.Options))
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex > 3 {
			return fmt.Errorf("%w: quizQuestions[%d] answer index %d out of range", ErrInvalidResponse, i, q.CorrectAnswerIndex)
		}
	}
	return nil
}

func normalizeCategory(c ConnectionCategory) ConnectionCategory {
	switch ConnectionCategory(strings.ToLower(strings.TrimSpace(string(c)))) {
	case CategoryQuran:
		return CategoryQuran
	case CategoryHadith:
		return CategoryHadith
	case CategoryHistorical:
		return CategoryHistorical
	case CategoryGeographic:
		return CategoryGeographic
	default:
		return CategoryGeneral
	}
}
