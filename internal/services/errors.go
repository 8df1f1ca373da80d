package services

import "fmt"

// ValidationError is returned for input the caller can fix.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError is returned when the completion API answers with a failure.
// Detail carries the provider's own message when one could be read.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s API error (status %d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Detail)
}
