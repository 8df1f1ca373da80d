package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"clanchief-backend/internal/services"
)

// ─── JSON Response Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	status := writeJSON(rr, http.StatusCreated, map[string]interface{}{"message": "Success"})

	if status != http.StatusCreated || rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got returned=%d recorded=%d", status, rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "Success" {
		t.Errorf("Expected message 'Success', got %v", result["message"])
	}
}

func TestErrorResponse_OmitsEmptyFields(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusBadRequest, errorResp("Message and mode are required"))

	want := "{\"error\":\"Message and mode are required\"}\n"
	if rr.Body.String() != want {
		t.Errorf("Expected body %q, got %q", want, rr.Body.String())
	}
}

// ─── Service Error Mapping Tests ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]string
	}{
		{
			"validation",
			&services.ValidationError{Message: "Unsupported mode", Details: "mode must be one of: historical, wisdom"},
			http.StatusBadRequest,
			map[string]string{"error": "Unsupported mode", "details": "mode must be one of: historical, wisdom"},
		},
		{
			"wrapped upstream",
			fmt.Errorf("chat: %w", &services.UpstreamError{Provider: "openai", StatusCode: 401, Detail: "Incorrect API key provided"}),
			http.StatusInternalServerError,
			map[string]string{"error": "Fraser Clan Chief is temporarily unavailable", "details": "Incorrect API key provided"},
		},
		{
			"anything else",
			errors.New("unexpected EOF"),
			http.StatusInternalServerError,
			map[string]string{"error": "Internal server error", "message": "An unexpected error occurred"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			req.Header.Set("X-Request-ID", "req-1")
			rr := httptest.NewRecorder()

			status := handleServiceError(rr, req, tc.err)

			if status != tc.wantStatus || rr.Code != tc.wantStatus {
				t.Fatalf("Expected status %d, got returned=%d recorded=%d", tc.wantStatus, status, rr.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(body) != len(tc.wantBody) {
				t.Fatalf("Expected body %v, got %v", tc.wantBody, body)
			}
			for k, v := range tc.wantBody {
				if body[k] != v {
					t.Errorf("Expected %s=%q, got %q", k, v, body[k])
				}
			}
		})
	}
}
