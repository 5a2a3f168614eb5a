// internal/adapter/groq/client.go

// Package groq is a minimal client for Groq's OpenAI-compatible
// chat-completion API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the chat-completion request body.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls the chat-completion endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Groq client. The API key is required.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: API key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// UnavailableClient reports a configuration error on every call. It lets
// the service start without an API key while the analysis endpoints
// surface the real problem.
type UnavailableClient struct {
	err error
}

// Unavailable returns a client whose Complete always fails with err.
func Unavailable(err error) UnavailableClient {
	return UnavailableClient{err: err}
}

// Complete always fails with the configuration error.
func (c UnavailableClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return "", fmt.Errorf("completion endpoint unavailable: %w", c.err)
}

// Complete sends a single-turn completion request and returns the first
// choice's message content.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResponse completionResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("failed to parse API response: %w", err)
	}

	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return apiResponse.Choices[0].Message.Content, nil
}
