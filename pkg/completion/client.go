// Package completion talks to an OpenAI-compatible chat completion endpoint.
// The call is a single blocking round trip; callers impose deadlines through
// the context if they need one. Nothing is retried here.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/noah-isme/canvas-companion-api/pkg/config"
	appErrors "github.com/noah-isme/canvas-companion-api/pkg/errors"
)

// Client issues chat completion requests.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a completion client. Missing configuration is a
// startup error so no request ever leaves with a blank credential.
func NewClient(cfg config.CompletionConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "COMPLETION_BASE_URL is not set")
	}
	if cfg.APIKey == "" {
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "COMPLETION_API_KEY is not set")
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the first
// completion choice.
func (c *Client) Complete(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCompletion.Code, appErrors.ErrCompletion.Status, "encode completion request")
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCompletion.Code, appErrors.ErrCompletion.Status, "build completion request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCompletion.Code, appErrors.ErrCompletion.Status, "completion request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCompletion.Code, appErrors.ErrCompletion.Status, "read completion response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", appErrors.Clone(appErrors.ErrCompletion, fmt.Sprintf("completion service returned %d: %s", resp.StatusCode, truncate(string(body), 512)))
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCompletion.Code, appErrors.ErrCompletion.Status, "decode completion response")
	}
	if len(decoded.Choices) == 0 {
		return "", appErrors.Clone(appErrors.ErrCompletion, "completion service returned no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
