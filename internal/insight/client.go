package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quran-tui/internal/quran"
)

var ErrInvalidResponse = errors.New("invalid insight response")

// Turn is one entry of a chat history as sent to the provider. The
// provider is stateless; the full history is resent on every call.
type Turn struct {
	Role string // "user" or "model"
	Text string
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the Gemini generateContent REST API for verse analysis
// and follow-up tutoring chat.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("insight api key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}, nil
}

// Analyze requests the structured study document for one verse. The
// response must satisfy the full Analysis contract or an error is
// returned; callers never see a partial document.
func (c *Client) Analyze(ctx context.Context, verse quran.Verse) (Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := map[string]any{
		"contents": []map[string]any{
			{
				"role":  "user",
				"parts": []map[string]any{{"text": analysisPrompt(verse)}},
			},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   analysisSchema(),
			"temperature":      0.4,
		},
	}

	raw, err := c.doJSON(ctx, fmt.Sprintf("/models/%s:generateContent", c.model), body)
	if err != nil {
		return Analysis{}, err
	}
	content, err := extractCandidateText(raw)
	if err != nil {
		return Analysis{}, err
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(extractJSONPayload(content)), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("parse analysis failed: %w", err)
	}
	if err := analysis.validate(); err != nil {
		return Analysis{}, err
	}
	return analysis, nil
}

// Chat asks one follow-up question about the verse, carrying the full
// prior history. Returns the assistant's reply text.
func (c *Client) Chat(ctx context.Context, verse quran.Verse, history []Turn, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := make([]map[string]any, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role != RoleUser {
			role = RoleModel
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []map[string]any{{"text": turn.Text}},
		})
	}
	contents = append(contents, map[string]any{
		"role":  RoleUser,
		"parts": []map[string]any{{"text": question}},
	})

	body := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]any{{"text": tutorPersona(verse)}},
		},
		"contents": contents,
		"generationConfig": map[string]any{
			"temperature": 0.7,
		},
	}

	raw, err := c.doJSON(ctx, fmt.Sprintf("/models/%s:generateContent", c.model), body)
	if err != nil {
		return "", err
	}
	content, err := extractCandidateText(raw)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrInvalidResponse
	}
	return content, nil
}

func analysisPrompt(verse quran.Verse) string {
	return fmt.Sprintf(`Analyze Surah %d, Verse %d.
Verse Text: %q
Arabic: %q

Provide a comprehensive study guide for a non-Arabic speaking student.
Include:
1. A very simple, plain English meaning.
2. 2-4 short topic tags.
3. Insights from classical Tafsir (Ibn Kathir, Al-Jalalayn, Al-Qurtubi).
4. Word-by-word linguistic breakdown (roots).
5. Context of revelation (Meccan/Medinan, specific incidents).
6. Moral teachings and action points.
7. Categorized connections to other parts of Quran or Hadith.
8. A reflective question for the student.
9. 3 quiz questions to test understanding of the analysis.`,
		verse.Surah, verse.Number, verse.Translation, verse.Arabic)
}

func tutorPersona(verse quran.Verse) string {
	return fmt.Sprintf(`You are a warm, knowledgeable Islamic scholar and Quran tutor.
You are currently discussing Surah %d, Verse %d: %q.
Arabic: %q.

Answer the user's questions based on classical Tafsir (Ibn Kathir, Jalalayn, etc.) and authentic Hadith.
Be concise but deep. Always cite your sources.
If the user asks about Arabic words, explain the root and nuance.
Maintain a spiritual and respectful tone.`,
		verse.Surah, verse.Number, verse.Translation, verse.Arabic)
}

func (c *Client) doJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("insight request failed, status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

func extractCandidateText(raw []byte) (string, error) {
	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", ErrInvalidResponse
	}
	parts := make([]string, 0, len(resp.Candidates[0].Content.Parts))
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	if len(parts) == 0 {
		return "", ErrInvalidResponse
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// extractJSONPayload strips markdown fences and surrounding prose so a
// model reply that wraps its JSON still parses.
func extractJSONPayload(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "{}"
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return trimmed[start : end+1]
	}
	return trimmed
}
