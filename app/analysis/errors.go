package analysis

import (
	"errors"
	"fmt"
)

// Error taxonomy. Only InputError aborts a pipeline run before computation
// starts; provider and storage failures are absorbed at their component
// boundary and converted into degraded-but-valid data.

// InputError marks an empty or malformed upload. User-correctable, surfaced
// as a 4xx response.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// ErrNoPages is returned by the aggregator when the input sequence is empty.
var ErrNoPages = &InputError{Reason: "no pages to analyze"}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// ProviderError marks a failed LLM call or an unparsable provider response.
// Never fatal: it degrades the qualitative section only.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StorageError marks a persistence failure. Logged and swallowed; never
// surfaced to the caller of a pipeline run.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
