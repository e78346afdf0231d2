package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.alquran.cloud/v1"

// The three parallel editions a verse list is assembled from.
const (
	editionArabic          = "quran-uthmani"
	editionTranslation     = "en.sahih"
	editionTransliteration = "en.transliteration"
)

// Surah is one chapter of the Quran as reported by the content API.
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

// Verse carries the three aligned text forms of a single ayah.
type Verse struct {
	ID              int    // global ayah number
	Surah           int    // owning surah number
	Number          int    // position within the surah
	Arabic          string
	Transliteration string
	Translation     string
}

// SearchMatch is one hit from a full-text search. Only the translation
// text is guaranteed; the API does not return Arabic or transliteration
// for search results.
type SearchMatch struct {
	SurahName      string
	RevelationType string
	Reference      string // "surah:ayah"
	Text           string
}

// Client talks to the al-Quran Cloud REST API. Surah and verse lists
// are immutable, so successful responses are memoized for the lifetime
// of the client.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu     sync.Mutex
	surahs []Surah
	verses map[int][]Verse
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		verses:     make(map[int][]Verse),
	}
}

type surahListResponse struct {
	Code int     `json:"code"`
	Data []Surah `json:"data"`
}

type editionAyah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
}

type edition struct {
	Ayahs []editionAyah `json:"ayahs"`
}

type editionsResponse struct {
	Code int       `json:"code"`
	Data []edition `json:"data"`
}

type searchResponse struct {
	Code int `json:"code"`
	Data struct {
		Count   int `json:"count"`
		Matches []struct {
			NumberInSurah int    `json:"numberInSurah"`
			Text          string `json:"text"`
			Surah         struct {
				Number         int    `json:"number"`
				EnglishName    string `json:"englishName"`
				RevelationType string `json:"revelationType"`
			} `json:"surah"`
		} `json:"matches"`
	} `json:"data"`
}

// ListSurahs returns the full surah index, ordered by number.
func (c *Client) ListSurahs(ctx context.Context) ([]Surah, error) {
	c.mu.Lock()
	if c.surahs != nil {
		cached := c.surahs
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var resp surahListResponse
	if err := c.get(ctx, "/surah", &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("surah list is empty")
	}

	c.mu.Lock()
	c.surahs = resp.Data
	c.mu.Unlock()
	return resp.Data, nil
}

// GetVerses fetches all verses of a surah with Arabic, translation and
// transliteration editions merged by position. The three editions must
// align; a short or missing edition fails the whole call.
func (c *Client) GetVerses(ctx context.Context, surah int) ([]Verse, error) {
	c.mu.Lock()
	if cached, ok := c.verses[surah]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	path := fmt.Sprintf("/surah/%d/editions/%s,%s,%s",
		surah, editionArabic, editionTranslation, editionTransliteration)

	var resp editionsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) != 3 {
		return nil, fmt.Errorf("expected 3 editions for surah %d, got %d", surah, len(resp.Data))
	}

	arabic, translation, transliteration := resp.Data[0], resp.Data[1], resp.Data[2]
	if len(arabic.Ayahs) == 0 {
		return nil, fmt.Errorf("surah %d has no ayahs", surah)
	}
	if len(translation.Ayahs) != len(arabic.Ayahs) || len(transliteration.Ayahs) != len(arabic.Ayahs) {
		return nil, fmt.Errorf("editions for surah %d are misaligned (%d/%d/%d ayahs)",
			surah, len(arabic.Ayahs), len(translation.Ayahs), len(transliteration.Ayahs))
	}

	verses := make([]Verse, 0, len(arabic.Ayahs))
	for i, a := range arabic.Ayahs {
		verses = append(verses, Verse{
			ID:              a.Number,
			Surah:           surah,
			Number:          a.NumberInSurah,
			Arabic:          a.Text,
			Translation:     translation.Ayahs[i].Text,
			Transliteration: transliteration.Ayahs[i].Text,
		})
	}

	c.mu.Lock()
	c.verses[surah] = verses
	c.mu.Unlock()
	return verses, nil
}

// Search runs a full-text search over the translation edition. A surah
// of 0 searches the whole Quran, otherwise the search is scoped to that
// surah.
func (c *Client) Search(ctx context.Context, query string, surah int) ([]SearchMatch, error) {
	scope := "all"
	if surah > 0 {
		scope = strconv.Itoa(surah)
	}
	path := fmt.Sprintf("/search/%s/%s/%s", url.PathEscape(query), scope, editionTranslation)

	var resp searchResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	matches := make([]SearchMatch, 0, len(resp.Data.Matches))
	for _, m := range resp.Data.Matches {
		matches = append(matches, SearchMatch{
			SurahName:      m.Surah.EnglishName,
			RevelationType: m.Surah.RevelationType,
			Reference:      fmt.Sprintf("%d:%d", m.Surah.Number, m.NumberInSurah),
			Text:           m.Text,
		})
	}
	return matches, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}
