package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quran-tui/internal/quran"
)

func testVerse() quran.Verse {
	return quran.Verse{
		ID:              5,
		Surah:           1,
		Number:          5,
		Arabic:          "إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ",
		Transliteration: "Iyyāka naʿbudu wa-iyyāka nastaʿīn",
		Translation:     "You alone we worship and You alone we ask for help.",
	}
}

func validAnalysisJSON() string {
	return `{
		"simpleMeaning":"We direct all worship and all requests for help to Allah alone.",
		"topics":["worship","reliance"],
		"tafsirInsights":[{"scholar":"Ibn Kathir","insight":"This verse is the heart of the surah."}],
		"wordAnalysis":[{"arabicWord":"نَعْبُدُ","root":"ع ب د","meaning":"we worship","nuance":"Complete devotion and servitude."}],
		"historicalContext":"Meccan revelation.",
		"moralTeachings":["Depend on Allah in every matter."],
		"connections":[{"category":"Hadith","source":"Sahih Muslim 395","text":"I have divided the prayer between Myself and My servant.","explanation":"The hadith expounds this verse directly."}],
		"reflectionQuestion":"Where do you turn first when you need help?",
		"quizQuestions":[
			{"question":"Q1","options":["a","b","c","d"],"correctAnswerIndex":1,"explanation":"e1"},
			{"question":"Q2","options":["a","b","c","d"],"correctAnswerIndex":0,"explanation":"e2"},
			{"question":"Q3","options":["a","b","c","d"],"correctAnswerIndex":3,"explanation":"e3"}
		]
	}`
}

func candidateReply(text string) string {
	encoded, _ := json.Marshal(text)
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, encoded)
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(Config{APIKey: "test-key", BaseURL: url, Model: "test-model"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestAnalyzeParsesFencedResponse(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(candidateReply("```json\n" + validAnalysisJSON() + "\n```")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	analysis, err := client.Analyze(context.Background(), testVerse())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if gotPath != "/models/test-model:generateContent" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if analysis.SimpleMeaning == "" || len(analysis.Topics) != 2 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
	if analysis.Connections[0].Category != CategoryHadith {
		t.Fatalf("expected normalized hadith category, got %q", analysis.Connections[0].Category)
	}
	if len(analysis.QuizQuestions) != 3 {
		t.Fatalf("expected 3 quiz questions, got %d", len(analysis.QuizQuestions))
	}

	raw, _ := json.Marshal(gotBody)
	if !strings.Contains(string(raw), "You alone we worship") {
		t.Fatalf("expected prompt to carry the verse translation, got %s", raw)
	}
	if !strings.Contains(string(raw), "application/json") {
		t.Fatalf("expected structured-output request, got %s", raw)
	}
}

func TestAnalyzeNormalizesUnknownCategory(t *testing.T) {
	payload := strings.Replace(validAnalysisJSON(), `"category":"Hadith"`, `"category":"folklore"`, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateReply(payload)))
	}))
	defer server.Close()

	analysis, err := newTestClient(t, server.URL).Analyze(context.Background(), testVerse())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.Connections[0].Category != CategoryGeneral {
		t.Fatalf("expected unknown category to normalize to general, got %q", analysis.Connections[0].Category)
	}
}

func TestAnalyzeFailsClosedOnMissingRequiredField(t *testing.T) {
	payload := strings.Replace(validAnalysisJSON(),
		`"reflectionQuestion":"Where do you turn first when you need help?",`, "", 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateReply(payload)))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Analyze(context.Background(), testVerse())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestAnalyzeFailsClosedOnBadQuizShape(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
	}{
		{
			name: "wrong option count",
			mutate: func(s string) string {
				return strings.Replace(s, `"options":["a","b","c","d"],"correctAnswerIndex":1`, `"options":["a","b"],"correctAnswerIndex":1`, 1)
			},
		},
		{
			name: "answer index out of range",
			mutate: func(s string) string {
				return strings.Replace(s, `"correctAnswerIndex":3`, `"correctAnswerIndex":7`, 1)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := tc.mutate(validAnalysisJSON())
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(candidateReply(payload)))
			}))
			defer server.Close()

			_, err := newTestClient(t, server.URL).Analyze(context.Background(), testVerse())
			if !errors.Is(err, ErrInvalidResponse) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestChatResendsHistoryWithPersona(t *testing.T) {
	var gotBody struct {
		SystemInstruction struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"systemInstruction"`
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(candidateReply("Ibn Kathir explains this as complete reliance.")))
	}))
	defer server.Close()

	history := []Turn{
		{Role: RoleModel, Text: "Salaam. I have analyzed Verse 5 for you."},
		{Role: RoleUser, Text: "What does worship mean here?"},
		{Role: RoleModel, Text: "It means complete devotion."},
	}
	reply, err := newTestClient(t, server.URL).Chat(context.Background(), testVerse(), history, "And reliance?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "Ibn Kathir explains this as complete reliance." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(gotBody.SystemInstruction.Parts) == 0 ||
		!strings.Contains(gotBody.SystemInstruction.Parts[0].Text, "You alone we worship") {
		t.Fatalf("expected persona to carry verse context, got %+v", gotBody.SystemInstruction)
	}
	if len(gotBody.Contents) != 4 {
		t.Fatalf("expected 4 content entries (3 history + question), got %d", len(gotBody.Contents))
	}
	last := gotBody.Contents[3]
	if last.Role != RoleUser || last.Parts[0].Text != "And reliance?" {
		t.Fatalf("expected final entry to be the new question, got %+v", last)
	}
	if gotBody.Contents[0].Role != RoleModel || gotBody.Contents[1].Role != RoleUser {
		t.Fatalf("history roles not preserved: %+v", gotBody.Contents)
	}
}

func TestChatErrorOnEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Chat(context.Background(), testVerse(), nil, "anything")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
