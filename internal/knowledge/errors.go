// Package knowledge provides the persisted semantic-search corpus of ADGM
// regulatory passages, organized into named collections.
package knowledge

import "fmt"

// UnavailableError indicates the store failed to initialize or is not
// ready; callers must degrade to fallback behavior rather than abort.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("knowledge store unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("knowledge store unavailable: %s", e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// EmbeddingError represents a failure generating a text embedding
type EmbeddingError struct {
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding error: %s", e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}

// UpsertError represents a failure writing items into a collection
type UpsertError struct {
	Collection string
	Message    string
	Cause      error
}

func (e *UpsertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upsert error in %s: %s: %v", e.Collection, e.Message, e.Cause)
	}
	return fmt.Sprintf("upsert error in %s: %s", e.Collection, e.Message)
}

func (e *UpsertError) Unwrap() error {
	return e.Cause
}
