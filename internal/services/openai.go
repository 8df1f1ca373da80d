package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clanchief-backend/internal/models"
)

// OpenAIConfig holds the fixed per-process completion settings.
type OpenAIConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type OpenAIService struct {
	cfg    OpenAIConfig
	client *http.Client
}

func NewOpenAIService(cfg OpenAIConfig) *OpenAIService {
	return &OpenAIService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type openAIRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Index        int            `json:"index"`
		Message      models.Message `json:"message"`
		FinishReason string         `json:"finish_reason"`
	} `json:"choices"`
}

type openAIErrorBody struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (s *OpenAIService) Provider() string { return "openai" }

// Complete sends one chat completion request and returns the first choice's text.
func (s *OpenAIService) Complete(ctx context.Context, messages []models.Message) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &UpstreamError{Provider: s.Provider(), StatusCode: resp.StatusCode}
		var errBody openAIErrorBody
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != nil {
			upstream.Detail = errBody.Error.Message
		}
		return "", upstream
	}

	var data openAIResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(data.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return data.Choices[0].Message.Content, nil
}
