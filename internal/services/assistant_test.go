package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlab/scout-dashboard/pkg/config"
)

func newTestAssistant(baseURL string) *AssistantService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAssistantService(&config.Config{
		GroqAPIKey:  "env-key",
		GroqModel:   "llama3-70b-8192",
		GroqBaseURL: baseURL,
	}, logger)
}

func TestAskRendersPromptAndParsesAnswer(t *testing.T) {
	var captured ChatRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Ana is the top performer."}}],"usage":{"prompt_tokens":100,"completion_tokens":12}}`))
	}))
	defer server.Close()

	assistant := newTestAssistant(server.URL)
	answer := assistant.Ask(context.Background(), "user-key", "Scouting summary for the 3 selected players: ...", "Who performs best?")

	assert.Equal(t, "Ana is the top performer.", answer)
	assert.False(t, IsErrorReply(answer))

	// explicit key overrides the configured default
	assert.Equal(t, "Bearer user-key", authHeader)

	assert.Equal(t, "llama3-70b-8192", captured.Model)
	assert.Zero(t, captured.Temperature)
	require.Len(t, captured.Messages, 1)

	prompt := captured.Messages[0].Content
	assert.Contains(t, prompt, "Scouting summary for the 3 selected players")
	assert.Contains(t, prompt, "Who performs best?")
	assert.Contains(t, prompt, "only source of truth")
	assert.Contains(t, prompt, "state that you do not have enough information")
	assert.Contains(t, prompt, "exactly as it appears in the summary")
}

func TestAskFallsBackToConfiguredKey(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	assistant := newTestAssistant(server.URL)
	assistant.Ask(context.Background(), "", "summary", "question")

	assert.Equal(t, "Bearer env-key", authHeader)
}

func TestAskServiceErrorBecomesInlineString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	assistant := newTestAssistant(server.URL)
	answer := assistant.Ask(context.Background(), "bad-key", "summary", "question")

	assert.True(t, IsErrorReply(answer))
	assert.Contains(t, answer, "401")
	assert.Contains(t, answer, "invalid api key")
}

func TestAskUnreachableServiceBecomesInlineString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	assistant := newTestAssistant(server.URL)
	answer := assistant.Ask(context.Background(), "key", "summary", "question")

	assert.True(t, IsErrorReply(answer))
}

func TestAskWithoutAnyKey(t *testing.T) {
	assistant := newTestAssistant("http://localhost:0")
	assistant.config.GroqAPIKey = ""

	answer := assistant.Ask(context.Background(), "", "summary", "question")
	assert.True(t, IsErrorReply(answer))
	assert.Contains(t, answer, "no API key configured")
}

func TestAskEmptyChoicesBecomesInlineString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	assistant := newTestAssistant(server.URL)
	answer := assistant.Ask(context.Background(), "key", "summary", "question")

	assert.True(t, IsErrorReply(answer))
	assert.Contains(t, answer, "no choices")
}
