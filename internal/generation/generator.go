package generation

import (
	"context"
	"errors"
	"fmt"
)

// ContentGenerator is the external "generate remedial content"
// capability. Implementations send the prompt dossier to a hosted model
// and return the generated prose verbatim. One attempt, no retries:
// whether a failure is surfaced or retried is the caller's decision.
type ContentGenerator interface {
	GenerateRemedialContent(ctx context.Context, promptDossier string) (string, error)
	ModelID() string
}

// ErrEmptyResponse is returned when the provider answered but produced
// no usable text.
var ErrEmptyResponse = errors.New("content generator returned an empty response")

// ErrRateLimit indicates the provider rejected the call due to rate limiting.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("content generator rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates a transient provider-side failure.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	return fmt.Sprintf("content generator unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
