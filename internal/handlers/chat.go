package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"clanchief-backend/internal/metrics"
	"clanchief-backend/internal/models"
	"clanchief-backend/internal/services"
)

// Completer is the completion API as the chat handler sees it.
type Completer interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
	Provider() string
}

// ISO-8601 with millisecond precision, always rendered in UTC ("Z").
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const maxRequestBytes = 1 << 20 // 1MB

type ChatHandler struct {
	llm     Completer
	metrics *metrics.Collector
	now     func() time.Time
}

func NewChatHandler(llm Completer, collector *metrics.Collector) *ChatHandler {
	return &ChatHandler{
		llm:     llm,
		metrics: collector,
		now:     time.Now,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	modeLabel := "unknown"
	status := http.StatusOK
	defer func() { h.metrics.RecordChat(modeLabel, status) }()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		status = writeJSON(w, http.StatusMethodNotAllowed, errorResp("Method not allowed"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	// Wrong JSON types (a numeric message, say) fail here too.
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("Request body exceeds 1MB limit"))
			return
		}
		status = writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if req.Message == "" || req.Mode == "" {
		status = writeJSON(w, http.StatusBadRequest, errorResp("Message and mode are required"))
		return
	}

	mode, err := services.ParseMode(req.Mode)
	if err != nil {
		status = handleServiceError(w, r, err)
		return
	}
	modeLabel = string(mode)

	messages := services.BuildMessages(mode, req.ConversationHistory, req.Message)

	start := time.Now()
	reply, err := h.llm.Complete(r.Context(), messages)
	h.metrics.ObserveUpstream(h.llm.Provider(), upstreamOutcome(err), time.Since(start))
	if err != nil {
		status = handleServiceError(w, r, err)
		return
	}

	status = writeJSON(w, http.StatusOK, models.ChatResponse{
		Success:   true,
		Response:  reply,
		Mode:      string(mode),
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}

func upstreamOutcome(err error) string {
	var upstream *services.UpstreamError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &upstream):
		return "upstream_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
	return status
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) int {
	requestID := r.Header.Get("X-Request-ID")

	var validation *services.ValidationError
	var upstream *services.UpstreamError
	switch {
	case errors.As(err, &validation):
		return writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   validation.Message,
			Details: validation.Details,
		})
	case errors.As(err, &upstream):
		log.Printf("[%s] Completion API error: %v", requestID, upstream)
		return writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Fraser Clan Chief is temporarily unavailable",
			Details: upstream.Detail,
		})
	default:
		log.Printf("[%s] Chat error: %v", requestID, err)
		return writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Internal server error",
			Message: "An unexpected error occurred",
		})
	}
}
