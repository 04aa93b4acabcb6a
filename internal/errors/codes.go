// Package errors defines typed error codes for the trade-capture pipeline.
// The state machine uses them to classify step failures and choose the
// user-facing message without inspecting plugin internals.
package errors

import (
	"fmt"
)

// ErrorCode identifies which step of the pipeline failed.
type ErrorCode string

const (
	// ErrCodeValidationFailed indicates the user input was rejected
	// (e.g. "done" with zero screenshots). Recoverable, no state loss.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeImageDecodeFailed indicates a collected screenshot could not
	// be decoded. The current composite attempt is aborted.
	ErrCodeImageDecodeFailed ErrorCode = "IMAGE_DECODE_FAILED"
	// ErrCodeTranscriptionFailed indicates the voice message could not be
	// recognized. Recoverable, the user may retype.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeExtractionFailed indicates no structured trade record could be
	// produced from the description. Recoverable, screenshots are retained.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// ErrCodeCompositionFailed indicates collage stitching or header
	// rendering failed. The session is discarded.
	ErrCodeCompositionFailed ErrorCode = "COMPOSITION_FAILED"
	// ErrCodeTransportFailed indicates an external network call failed
	// (file download, message delivery).
	ErrCodeTransportFailed ErrorCode = "TRANSPORT_FAILED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// PipelineError is a step failure carrying its classification code.
type PipelineError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// ValidationFailed creates a validation error.
func ValidationFailed(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeValidationFailed, Message: msg}
}

// ImageDecodeFailed creates an image decode error.
func ImageDecodeFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeImageDecodeFailed, Message: msg, Cause: cause}
}

// TranscriptionFailed creates a transcription error.
func TranscriptionFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeTranscriptionFailed, Message: msg, Cause: cause}
}

// ExtractionFailed creates an extraction error.
func ExtractionFailed(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeExtractionFailed, Message: msg}
}

// CompositionFailed creates a composition error.
func CompositionFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeCompositionFailed, Message: msg, Cause: cause}
}

// TransportFailed creates a transport error.
func TransportFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeTransportFailed, Message: msg, Cause: cause}
}

// Internal creates an internal error.
func Internal(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a classification code.
func Wrap(cause error, code ErrorCode, msg string) *PipelineError {
	return &PipelineError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	if perr, ok := err.(*PipelineError); ok {
		return perr.Code == code
	}
	return false
}

// CodeOf extracts the code from any error, falling back to defaultCode for
// errors that are not PipelineErrors.
func CodeOf(err error, defaultCode ErrorCode) ErrorCode {
	if perr, ok := err.(*PipelineError); ok {
		return perr.Code
	}
	return defaultCode
}
