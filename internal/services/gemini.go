package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"clanchief-backend/internal/models"
)

// GeminiConfig holds the fixed per-process completion settings.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type GeminiService struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiService connects to the Gemini API. Extra client options (an
// alternate endpoint, for instance) are applied after the API key.
func NewGeminiService(ctx context.Context, cfg GeminiConfig, opts ...option.ClientOption) (*GeminiService, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetMaxOutputTokens(int32(cfg.MaxTokens))

	return &GeminiService{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) Provider() string { return "gemini" }

// Complete replays the conversation as a Gemini chat session and sends the
// trailing user message.
func (s *GeminiService) Complete(ctx context.Context, messages []models.Message) (string, error) {
	system, history, last, err := toGeminiChat(messages)
	if err != nil {
		return "", err
	}

	// The model is shared between requests, so copy it before setting the
	// per-request system instruction.
	model := *s.model
	model.SystemInstruction = system

	cs := model.StartChat()
	cs.History = history

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := cs.SendMessage(ctx, last)
	if err != nil {
		return "", s.classifyError(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.New("Gemini returned empty text")
	}
	return text, nil
}

// toGeminiChat splits an assembled conversation into a system instruction,
// prior chat turns and the final user part.
func toGeminiChat(messages []models.Message) (*genai.Content, []*genai.Content, genai.Part, error) {
	if len(messages) == 0 || messages[len(messages)-1].Role != models.RoleUser {
		return nil, nil, nil, errors.New("conversation must end with a user message")
	}

	var system *genai.Content
	var history []*genai.Content
	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case models.RoleSystem:
			system = &genai.Content{Parts: []genai.Part{genai.Text(m.Content)}}
		case models.RoleUser:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	return system, history, genai.Text(messages[len(messages)-1].Content), nil
}

// classifyError turns Gemini API failures into an UpstreamError; transport
// and context errors stay internal.
func (s *GeminiService) classifyError(err error) error {
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("Gemini API error: %w", err)
	}
	return &UpstreamError{
		Provider:   s.Provider(),
		StatusCode: apiErr.HTTPCode(),
		Detail:     apiErrorDetail(apiErr),
	}
}

// apiErrorDetail prefers the human-readable message: the gRPC status message,
// then the REST error's message, then the machine reason.
func apiErrorDetail(apiErr *apierror.APIError) string {
	if st := apiErr.GRPCStatus(); st != nil && st.Message() != "" {
		return st.Message()
	}
	var gerr *googleapi.Error
	if errors.As(apiErr.Unwrap(), &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return apiErr.Reason()
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var text strings.Builder
	if cand := resp.Candidates[0]; cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
