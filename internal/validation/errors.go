// Package validation checks corporate documents against ADGM mandatory
// sections, hardcoded rules, and knowledge-base derived requirements.
package validation

import "fmt"

// KnowledgeUnavailableError indicates an operation that has no fallback
// mode (checklist matching, contextual recommendations) was called while
// the knowledge store is not available.
type KnowledgeUnavailableError struct {
	Operation string
}

func (e *KnowledgeUnavailableError) Error() string {
	return fmt.Sprintf("%s requires the knowledge store, which is not available", e.Operation)
}

// ChecklistError represents a failure while matching a document against
// checklist corpus content.
type ChecklistError struct {
	Message string
	Cause   error
}

func (e *ChecklistError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("checklist validation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("checklist validation failed: %s", e.Message)
}

func (e *ChecklistError) Unwrap() error {
	return e.Cause
}
