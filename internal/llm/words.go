package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const wordPrompt = `Pick one common English noun between 4 and 10 letters ` +
	`to be the secret word in a guessing game. Reply with only the word in ` +
	`lowercase, no punctuation.`

// SecretWord asks the model for a fresh secret word. Callers fall back to a
// fixed default on any error here; nothing is surfaced to the player.
func (c *Client) SecretWord(ctx context.Context) (string, error) {
	model := c.gc.GenerativeModel(c.modelName)
	model.SetTemperature(1.0)
	model.SetMaxOutputTokens(8)

	resp, err := model.GenerateContent(ctx, genai.Text(wordPrompt))
	if err != nil {
		return "", err
	}

	word := cleanWord(responseText(resp))
	if word == "" {
		return "", errors.New("model returned no usable word")
	}
	return word, nil
}

// cleanWord reduces a model reply to a single lowercase alphabetic word
func cleanWord(raw string) string {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return ""
	}

	word := strings.ToLower(strings.Trim(fields[0], `."'!?,`))
	for _, c := range word {
		if c < 'a' || c > 'z' {
			return ""
		}
	}
	if len(word) < 2 {
		return ""
	}
	return word
}
