package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// ethiopicPattern matches the Ethiopic block used by Amharic.
var ethiopicPattern = regexp.MustCompile(`[\x{1200}-\x{137F}]`)

// ContainsEthiopic reports whether text has any Amharic characters.
func ContainsEthiopic(text string) bool {
	return ethiopicPattern.MatchString(text)
}

// Translator turns Amharic paragraphs into English, one batched call per
// candidate.
type Translator struct {
	client TextGenerator
}

// NewTranslator builds a translator on top of the shared client.
func NewTranslator(client TextGenerator) *Translator {
	return &Translator{client: client}
}

// TranslateBatch returns one entry per input paragraph: the English
// translation when the paragraph contains Amharic, nil when it is already in
// the target language. Any oracle failure yields all-nil entries wrapped in an
// OracleError; the caller publishes without translations.
func (t *Translator) TranslateBatch(ctx context.Context, paragraphs []string) ([]*string, error) {
	nulls := make([]*string, len(paragraphs))
	if len(paragraphs) == 0 {
		return nulls, nil
	}

	// No Amharic anywhere means nothing to translate; skip the call.
	any := false
	for _, p := range paragraphs {
		if ContainsEthiopic(p) {
			any = true
			break
		}
	}
	if !any {
		return nulls, nil
	}

	inputJSON, err := json.Marshal(paragraphs)
	if err != nil {
		return nulls, feed.NewOracleError("translate", err)
	}

	prompt := fmt.Sprintf(`You are a precise translator. You will receive a JSON array of strings.
For each string: if it contains Amharic text, translate it to English.
If it does NOT contain Amharic (e.g. it is already English), return null.
Return strictly a JSON array of strings (or nulls) that matches the length and order of the input array.

Input JSON:
%s`, inputJSON)

	responseText, err := t.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nulls, feed.NewOracleError("translate", err)
	}

	var translated []*string
	if err := json.Unmarshal([]byte(responseText), &translated); err != nil {
		cleaned := extractJSON(responseText)
		if err := json.Unmarshal([]byte(cleaned), &translated); err != nil {
			return nulls, feed.NewOracleError("translate", fmt.Errorf("unmarshal response: %w", err))
		}
	}

	if len(translated) != len(paragraphs) {
		return nulls, feed.NewOracleError("translate",
			fmt.Errorf("length mismatch: sent %d paragraphs, got %d", len(paragraphs), len(translated)))
	}

	return translated, nil
}
