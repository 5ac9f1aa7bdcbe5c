package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the submitted URL was empty or malformed (HTTP 400).
	InvalidInput
	// Unreachable indicates the target site could not be fetched (HTTP 502).
	Unreachable
	// Timeout indicates the target took too long to respond (HTTP 504).
	Timeout
)

// AppError carries a category, a short user-facing message, and the
// original cause for diagnostics.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Debug returns the technical detail behind the error, or an empty
// string when there is none.
func (e *AppError) Debug() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}
