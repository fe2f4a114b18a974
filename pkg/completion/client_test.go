package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/canvas-companion-api/pkg/config"
	appErrors "github.com/noah-isme/canvas-companion-api/pkg/errors"
)

func TestNewClientRequiresConfiguration(t *testing.T) {
	_, err := NewClient(config.CompletionConfig{BaseURL: "https://api.example.com"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfiguration.Code, appErrors.FromError(err).Code)

	_, err = NewClient(config.CompletionConfig{APIKey: "sk-test"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfiguration.Code, appErrors.FromError(err).Code)
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotAuth, gotModel, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model
		require.Len(t, req.Messages, 1)
		gotPrompt = req.Messages[0].Content

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`)
	}))
	defer srv.Close()

	client, err := NewClient(config.CompletionConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	require.NoError(t, err)

	text, err := client.Complete(context.Background(), "gpt-4o", "How am I doing?")
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o", gotModel)
	assert.Equal(t, "How am I doing?", gotPrompt)
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(config.CompletionConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "gpt-4o", "hi")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrCompletion.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "429")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	client, err := NewClient(config.CompletionConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "gpt-4o", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
