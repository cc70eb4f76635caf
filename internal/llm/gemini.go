package llm

import (
	"context"
	"errors"
	"io"
	"strings"

	"wordmint/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client wraps the Gemini API as the game's chat-completion capability:
// it takes an ordered turn list and returns a token stream.
type Client struct {
	gc          *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
}

// NewClient connects to the Gemini API
func NewClient(ctx context.Context, apiKey, model string, temperature float32, maxTokens int32) (*Client, error) {
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Client{
		gc:          gc,
		modelName:   model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Close releases the underlying API connection
func (c *Client) Close() error {
	return c.gc.Close()
}

// Stream yields completion tokens for the conversation. System turns become
// the model's system instruction; the final turn must be the player's.
func (c *Client) Stream(ctx context.Context, turns []domain.ConversationTurn) (*Stream, error) {
	last, ok := domain.LastTurn(turns)
	if !ok || last.Role != domain.RoleUser {
		return nil, errors.New("conversation must end with a user turn")
	}

	model := c.gc.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)
	model.SetMaxOutputTokens(c.maxTokens)

	var system []genai.Part
	var history []*genai.Content
	for _, turn := range turns[:len(turns)-1] {
		switch turn.Role {
		case domain.RoleSystem:
			system = append(system, genai.Text(turn.Content))
		case domain.RoleAssistant:
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(turn.Content)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(turn.Content)},
			})
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: system}
	}

	chat := model.StartChat()
	chat.History = history

	return &Stream{it: chat.SendMessageStream(ctx, genai.Text(last.Content))}, nil
}

// Stream reads completion tokens one chunk at a time. Next returns io.EOF
// when the completion is finished.
type Stream struct {
	it *genai.GenerateContentResponseIterator
}

func (s *Stream) Next() (string, error) {
	resp, err := s.it.Next()
	if errors.Is(err, iterator.Done) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
