package usecase

import (
	"errors"
	"fmt"
)

// ErrLLMUnavailable reports that the language-model backend is not
// configured or not reachable. No call is attempted when this is returned.
var ErrLLMUnavailable = errors.New("usecase: llm backend unavailable")

// LLMCallError wraps a provider failure from an attempted model call. The
// cause is kept for logging and never shown to the caller.
type LLMCallError struct {
	Err error
}

func (e *LLMCallError) Error() string {
	return fmt.Sprintf("usecase: llm call failed: %v", e.Err)
}

func (e *LLMCallError) Unwrap() error {
	return e.Err
}
