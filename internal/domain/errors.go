package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers. All are recoverable: a failed
// operation is surfaced to the caller and must be re-triggered explicitly,
// never retried automatically.
var (
	ErrNotFound = errors.New("not found")

	// ErrEmptyInput means an operation was invoked on empty or
	// whitespace-only text.
	ErrEmptyInput = errors.New("empty input")

	// ErrMissingCredential means no provider API key is configured.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrMissingModel means no provider model is configured.
	ErrMissingModel = errors.New("missing model selection")

	// ErrProvider is the base error for provider call failures.
	ErrProvider = errors.New("provider error")

	// ErrProviderEmptyResponse means the provider returned no usable text.
	ErrProviderEmptyResponse = errors.New("provider returned an empty response")

	// ErrNoVocalization means the provider reply carries no niqqud marks,
	// or does not reduce to the input when stripped.
	ErrNoVocalization = errors.New("provider produced no vocalization")

	// ErrUnparsableSyllables means no word entries could be parsed out of
	// the provider's syllabification reply.
	ErrUnparsableSyllables = errors.New("unparsable syllabification response")

	// ErrCacheInconsistency means the syllable tree cannot be aligned with
	// the currently displayed text form.
	ErrCacheInconsistency = errors.New("cache inconsistency")

	// ErrStaleResponse means a provider reply arrived for a text that is
	// no longer current and was discarded.
	ErrStaleResponse = errors.New("stale provider response")
)

// ProviderHTTPError is a provider call that failed at the HTTP level.
type ProviderHTTPError struct {
	Status  int
	Message string
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("provider http %d: %s", e.Status, e.Message)
}

func (e *ProviderHTTPError) Unwrap() error { return ErrProvider }

// NewProviderHTTPError creates a ProviderHTTPError.
func NewProviderHTTPError(status int, message string) *ProviderHTTPError {
	return &ProviderHTTPError{Status: status, Message: message}
}
