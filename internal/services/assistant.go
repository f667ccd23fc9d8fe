package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/scoutlab/scout-dashboard/pkg/config"
)

// ChatRequest is the payload for the OpenAI-compatible chat completions
// endpoint Groq exposes.
type ChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []ChatMessage `json:"messages"`
}

// ChatMessage is a single message in the completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the completion service reply.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// promptTemplate pins the assistant to the generated summary. Exactly
// two fields are interpolated: the summary and the user question.
const promptTemplate = `You are a professional football data analyst. Your only source of truth is the following "Data Summary".
Answer the "User Question" relying exclusively on the information contained in the "Data Summary".
Do not use any outside knowledge. If the question cannot be answered from the summary, state that you do not have enough information.
If the answer includes a player, mention the name exactly as it appears in the summary.

---
**Data Summary:**
%s
---
**User Question:**
%s
---
**Analyst Answer:**
`

// errorReplyPrefix starts every failure reply the assistant produces in
// place of an answer.
const errorReplyPrefix = "An error occurred while contacting the language model:"

// IsErrorReply reports whether an assistant reply is an inline failure
// report rather than a model answer.
func IsErrorReply(reply string) bool {
	return strings.HasPrefix(reply, errorReplyPrefix)
}

var (
	assistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_assistant_requests_total",
		Help: "Completion service calls by outcome.",
	}, []string{"outcome"})

	assistantDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_assistant_request_duration_seconds",
		Help:    "Completion service call latency.",
		Buckets: prometheus.DefBuckets,
	})
)

// AssistantService answers free-text questions about the filtered
// record set, using the scouting summary as the model's entire context.
type AssistantService struct {
	config    *config.Config
	logger    *logrus.Logger
	apiClient *http.Client
}

// NewAssistantService creates the assistant bound to the configured
// completion endpoint.
func NewAssistantService(cfg *config.Config, logger *logrus.Logger) *AssistantService {
	return &AssistantService{
		config: cfg,
		logger: logger,
		apiClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ask renders the prompt template with the summary and question and
// invokes the completion service at temperature zero. Every failure is
// converted to a readable string naming the underlying reason; callers
// never see an error value and never crash from an assistant failure.
// There are no retries: a failure is terminal for this request.
func (s *AssistantService) Ask(ctx context.Context, apiKey, summary, question string) string {
	if apiKey == "" {
		apiKey = s.config.GroqAPIKey
	}

	start := time.Now()
	answer, err := s.complete(ctx, apiKey, fmt.Sprintf(promptTemplate, summary, question))
	assistantDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		assistantRequests.WithLabelValues("error").Inc()
		s.logger.WithError(err).Warn("assistant call failed")
		return fmt.Sprintf("%s %v", errorReplyPrefix, err)
	}

	assistantRequests.WithLabelValues("ok").Inc()
	return answer
}

func (s *AssistantService) complete(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", errors.New("no API key configured")
	}

	reqBody := ChatRequest{
		Model:       s.config.GroqModel,
		Temperature: 0,
		Messages: []ChatMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := s.config.GroqBaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.apiClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}

	s.logger.WithFields(logrus.Fields{
		"prompt_tokens":     chatResp.Usage.PromptTokens,
		"completion_tokens": chatResp.Usage.CompletionTokens,
	}).Debug("assistant completion finished")

	return chatResp.Choices[0].Message.Content, nil
}
