package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-broker-tracker/internal/tracker/config"
	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/ratelimit"

	"golang.org/x/time/rate"
)

// groqAIRepository talks to the Groq chat completions API (OpenAI-compatible
// wire format). It is the primary provider in the extraction chain.
type groqAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewGroqAIRepository creates a new instance of groqAIRepository.
func NewGroqAIRepository(cfg *config.Config, log *logger.Logger) AIRepository {
	return &groqAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: ratelimit.NewRequestLimiter(cfg.Groq.MaxRequestPerMinute),
	}
}

func (r *groqAIRepository) Name() string {
	return "groq"
}

// Complete submits the prompt with deterministic decoding and returns the
// raw completion text.
func (r *groqAIRepository) Complete(ctx context.Context, prompt string) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GroqAPIRequest{
		Model: r.cfg.Groq.Model,
		Messages: []dto.Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.cfg.Groq.BaseURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.Groq.APIKey))

	r.logger.Debug("Sending request to Groq API", logger.StringField("url", r.cfg.Groq.BaseURL), logger.StringField("model", r.cfg.Groq.Model))

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Groq API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Groq API", logger.IntField("status_code", resp.StatusCode), logger.StringField("model", r.cfg.Groq.Model))
		return "", fmt.Errorf("received non-OK response from Groq API: %d - %s", resp.StatusCode, string(body))
	}

	var groqResp dto.GroqAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&groqResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(groqResp.Choices) == 0 {
		return "", fmt.Errorf("no content found in Groq response")
	}

	r.logger.Debug("Groq completion received", logger.IntField("total_tokens", groqResp.Usage.TotalTokens))

	return groqResp.Choices[0].Message.Content, nil
}
