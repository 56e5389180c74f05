package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// Classifier answers the binary "is this cluster actual news" question.
type Classifier struct {
	client TextGenerator
}

// NewClassifier builds a classifier on top of the shared client.
func NewClassifier(client TextGenerator) *Classifier {
	return &Classifier{client: client}
}

type classifierResponse struct {
	Newsworthy bool `json:"newsworthy"`
}

// IsNewsworthy asks the model for a binary relevance verdict. Errors are
// wrapped in an OracleError; the validator treats them as "worthy" (fail
// open).
func (c *Classifier) IsNewsworthy(ctx context.Context, body string) (bool, error) {
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return false, feed.NewOracleError("classify", err)
	}

	prompt := fmt.Sprintf(`You are a news desk editor. You will receive the text of a message cluster
scraped from a public Telegram channel. Decide whether it is a newsworthy post
(reports an event, announcement, market update or similar), as opposed to
chatter, advertising, greetings or channel housekeeping.
Respond strictly with a JSON object of the form {"newsworthy": true} or {"newsworthy": false}.

Message text (JSON encoded):
%s`, bodyJSON)

	responseText, err := c.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return false, feed.NewOracleError("classify", err)
	}

	var resp classifierResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		cleaned := extractJSON(responseText)
		if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
			return false, feed.NewOracleError("classify", fmt.Errorf("unmarshal response: %w", err))
		}
	}

	return resp.Newsworthy, nil
}
