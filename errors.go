package bananagen

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingAPIKey is returned when no API credential is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not found in .env file or environment variables")

// ErrInputNotFound is matched by every *InputNotFoundError.
var ErrInputNotFound = errors.New("input image not found")

// ErrNoImageInResponse is the degradation reason when a response carries no image part.
var ErrNoImageInResponse = errors.New("no image in response")

// ErrEmptyResponse is the degradation reason when a response has no candidates.
var ErrEmptyResponse = errors.New("empty response from model")

// InputNotFoundError reports an input image path that does not resolve.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input image not found at %s", e.Path)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInputNotFound) hold for every InputNotFoundError.
func (e *InputNotFoundError) Is(target error) bool {
	return target == ErrInputNotFound
}

// RateLimitError is returned when a rate limit is hit.
type RateLimitError struct {
	RetryAfter time.Duration
	LimitType  string
	Model      string
	Err        error // Underlying error from the provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s limit, retry after %v",
		e.Model, e.LimitType, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// ErrStorageNotConfigured is returned when storage operations are attempted
// without a configured storage backend.
var ErrStorageNotConfigured = errors.New("storage not configured")
