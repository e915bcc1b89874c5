package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaude_Message(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("Anthropic-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"- Tighten "},{"type":"text","text":"the summary"}]}`))
	}))
	defer server.Close()

	c := NewClaude("test-key", "claude-default", WithClaudeBaseURL(server.URL))
	defer c.Close()

	text, err := c.Message(context.Background(), MessageRequest{
		System:      "coach",
		Prompt:      "review this",
		Temperature: 0.4,
	})
	require.NoError(t, err)
	assert.Equal(t, "- Tighten the summary", text)

	assert.Equal(t, "claude-default", got.Model)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.Equal(t, "coach", got.System)
	assert.InDelta(t, 0.4, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "review this", got.Messages[0].Content)

	assert.Equal(t, 1, c.Stats.Snapshot().Count)
}

func TestClaude_MessageErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		retryable bool
		notFound  bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"type":"rate_limit_error"}}`, true, false},
		{"overloaded", 529, `{"error":{"type":"overloaded_error"}}`, true, false},
		{"unknown model", http.StatusNotFound, `{"error":{"type":"not_found_error","message":"model: nope"}}`, false, true},
		{"bad request", http.StatusBadRequest, `{"error":{"type":"invalid_request_error"}}`, false, false},
		{"empty content", http.StatusOK, `{"content":[]}`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClaude("k", "m", WithClaudeBaseURL(server.URL))
			_, err := c.Message(context.Background(), MessageRequest{Prompt: "x"})
			require.Error(t, err)
			assert.Equal(t, tt.retryable, IsRetryable(err))
			assert.Equal(t, tt.notFound, errors.Is(err, ErrModelNotFound))
		})
	}
}

func TestClaude_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"id":"claude-a"},{"id":""},{"id":"claude-b"}]}`))
	}))
	defer server.Close()

	c := NewClaude("k", "m", WithClaudeBaseURL(server.URL+"/"))
	ids, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"claude-a", "claude-b"}, ids)
	assert.Equal(t, "m", c.Model())
}

func TestClaude_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClaude("k", "m", WithClaudeBaseURL(server.URL))
	_, err := c.Message(ctx, MessageRequest{Prompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
