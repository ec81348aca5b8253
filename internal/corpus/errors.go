package corpus

import "fmt"

// BuildError represents a corpus build failure
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corpus build error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("corpus build error: %s", e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// ExtractionError represents a failure extracting text from a fetched source
type ExtractionError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.URL, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
