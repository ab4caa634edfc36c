// Package completion wraps the chat completion backend used for draft
// generation.
package completion

import (
	"context"
	"errors"
)

// ErrTimeout is returned when the completion backend does not answer within
// the configured deadline.
var ErrTimeout = errors.New("completion timed out")

// Completer produces a completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
