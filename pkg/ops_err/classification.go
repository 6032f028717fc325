// pkg/ops_err/classification.go
//
// Error classification with stable exit codes. Per-row parse failures never
// surface here: they are converted to failed-severity results upstream so a
// single bad row cannot abort a run.

package ops_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling.
type ErrorCategory int

const (
	// CategoryInput - missing input file, unreadable input (exit 1)
	CategoryInput ErrorCategory = iota
	// CategoryConfiguration - missing/invalid threshold keys (exit 2)
	CategoryConfiguration
	// CategoryIO - cannot create or write output (exit 1)
	CategoryIO
	// CategoryInternal - bugs in opsreport itself (exit 3)
	CategoryInternal
)

// ClassifiedError wraps an error with its category and optional remediation.
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

func (e *ClassifiedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error category.
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryConfiguration:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// NewConfigurationError marks a threshold/config problem (exit 2).
func NewConfigurationError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryConfiguration,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInputError marks a missing or unreadable input source (exit 1).
func NewInputError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryInput,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewIOError marks an unwritable output destination (exit 1).
func NewIOError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryIO,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// ExitCode resolves the exit code for any error: classified errors carry their
// own, expected user errors exit 0, everything else is an internal failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.ExitCode()
	}
	if IsExpectedUserError(err) {
		return 0
	}
	return 3
}
