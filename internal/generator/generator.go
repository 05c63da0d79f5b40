// Package generator wraps the text-completion service used to draft content
// and ideas.
package generator

import (
	"context"
	"errors"
	"fmt"
)

type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// ContentGenerator returns the completion text for a single request. Calls
// are independent; implementations must be safe for concurrent use.
type ContentGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrEmptyCompletion is returned when the provider answers without any
// choice to read text from.
var ErrEmptyCompletion = errors.New("no content generated")

// UpstreamError carries the completion provider's failure message as-is so
// it can be shown to the caller.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("completion request failed with status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
