package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrUpstream is returned when an embedding or vector store call fails.
	ErrUpstream = errors.New("upstream service error")
	// ErrRateLimited is returned when a request exceeds the rate budget.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap makes ValidationError match ErrInvalidInput via errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// UpstreamError wraps a failure from an external collaborator, preserving the
// upstream status where available.
type UpstreamError struct {
	Service string // "embeddings" or "vectorstore"
	Status  int    // HTTP status from the upstream, 0 if not applicable
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (status %d): %v", e.Service, e.Status, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Service, e.Err)
}

// Unwrap makes UpstreamError match ErrUpstream via errors.Is.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
