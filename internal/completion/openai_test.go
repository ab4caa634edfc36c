package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfpapi/internal/config"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAI(config.OpenAIConfig{
		APIKey:     "test-key",
		Model:      "gpt-4",
		BaseURL:    srv.URL,
		TimeoutSec: 5,
	})
}

func TestOpenAIComplete(t *testing.T) {
	var got chatRequest
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"An executive summary."},"finish_reason":"stop"}]}`)
	})

	out, err := c.Complete(context.Background(), "You are a proposal writer.", "Summarize this RFP.")

	require.NoError(t, err)
	assert.Equal(t, "An executive summary.", out)
	assert.Equal(t, "gpt-4", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "You are a proposal writer.", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Summarize this RFP.", got.Messages[1].Content)
}

func TestOpenAICompleteUpstreamError(t *testing.T) {
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"rate limited","type":"requests"}}`)
	})

	_, err := c.Complete(context.Background(), "sys", "user")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"cmpl-1","object":"chat.completion","choices":[]}`)
	})

	_, err := c.Complete(context.Background(), "sys", "user")

	assert.Error(t, err)
}

func TestOpenAICompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Complete(ctx, "sys", "user")

	assert.ErrorIs(t, err, ErrTimeout)
}
