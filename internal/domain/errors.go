package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Quiz specific errors
	CodeDataUnavailable      ErrorCode = "DATA_UNAVAILABLE"
	CodeNoRecordingAvailable ErrorCode = "NO_RECORDING_AVAILABLE"
	CodeUnknownQuestion      ErrorCode = "UNKNOWN_QUESTION"

	// Validation errors
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeMissingField ErrorCode = "MISSING_FIELD"
	CodeOutOfRange   ErrorCode = "OUT_OF_RANGE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail entry that the error handler exposes to clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

// NewDataUnavailableError reports that the taxonomy table was never loaded.
func NewDataUnavailableError() *DomainError {
	return NewError(CodeDataUnavailable, "データが読み込まれていません", nil)
}

// NewNoRecordingAvailableError reports an exhausted question generation.
// The client is expected to retry later.
func NewNoRecordingAvailableError(err error) *DomainError {
	return NewError(CodeNoRecordingAvailable,
		"音声データが見つかりませんでした。しばらく待ってから再度お試しください。", err)
}

// NewUnknownQuestionError reports a question id that was never issued or has expired.
func NewUnknownQuestionError(questionID string) *DomainError {
	return NewError(CodeUnknownQuestion, "問題が見つかりません", nil).
		WithContext("question_id", questionID)
}

// NewSpeciesNotFoundError reports a local name missing from the taxonomy.
func NewSpeciesNotFoundError(name string) *DomainError {
	return NewError(CodeNotFound, "該当する鳥が見つかりません", nil).
		WithContext("species_name", name)
}
