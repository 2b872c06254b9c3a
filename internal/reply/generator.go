package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ChatCompletionClient calls an OpenAI-compatible chat-completions endpoint.
// The base URL is configurable so tests can point it at a local server.
type ChatCompletionClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewChatCompletionClient(baseURL, apiKey, model string) *ChatCompletionClient {
	return &ChatCompletionClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: http.DefaultClient,
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single user message and returns the first
// choice's content.
func (c *ChatCompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation request: status %d: %s", resp.StatusCode, data)
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("generation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generation response: no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
