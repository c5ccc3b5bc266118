package scribe

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the transcript is empty or missing.
var ErrInvalidInput = errors.New("invalid transcript provided")

// ErrNoProvider is returned when no extraction backend is configured.
var ErrNoProvider = errors.New("no API keys configured: set OPENAI_API_KEY or CLAUDE_API_KEY")

// ErrUploadTooLarge is returned when an audio upload exceeds MaxUploadBytes.
var ErrUploadTooLarge = errors.New("audio upload exceeds maximum size")

// ErrNotFound is returned by the job store for unknown job IDs.
var ErrNotFound = errors.New("job not found")

// ProviderError wraps a failure from a text-generation or transcription call,
// keeping the provider name and the HTTP status when one was available.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
