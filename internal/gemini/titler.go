package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// TitleResult is what the title oracle produces: the headline in the source
// language plus an English rendering when the source is Amharic.
type TitleResult struct {
	Title        string `json:"title"`
	TitleEnglish string `json:"title_english"`
}

// Titler generates a headline from a post's lead paragraph. It is optional;
// the enricher falls back to the raw first paragraph on any failure.
type Titler struct {
	client TextGenerator
}

// NewTitler builds a titler on top of the shared client.
func NewTitler(client TextGenerator) *Titler {
	return &Titler{client: client}
}

// Title asks the model for a concise headline. Errors come back as
// OracleError and leave the caller with its first-paragraph fallback.
func (t *Titler) Title(ctx context.Context, lead string) (TitleResult, error) {
	leadJSON, err := json.Marshal(lead)
	if err != nil {
		return TitleResult{}, feed.NewOracleError("title", err)
	}

	prompt := fmt.Sprintf(`You are a news headline writer. You will receive the lead paragraph of a post.
Write a concise headline in the same language as the paragraph.
If the paragraph is in Amharic, also provide an English headline; otherwise leave title_english empty.
Do not invent facts that are not in the paragraph.
Respond strictly with a JSON object: {"title": "...", "title_english": "..."}.

Lead paragraph (JSON encoded):
%s`, leadJSON)

	responseText, err := t.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return TitleResult{}, feed.NewOracleError("title", err)
	}

	var result TitleResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		cleaned := extractJSON(responseText)
		if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
			return TitleResult{}, feed.NewOracleError("title", fmt.Errorf("unmarshal response: %w", err))
		}
	}

	if strings.TrimSpace(result.Title) == "" {
		return TitleResult{}, feed.NewOracleError("title", fmt.Errorf("empty title in response"))
	}
	return result, nil
}
