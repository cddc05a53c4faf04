package common

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an AppError. The set is closed: every failure the
// submit and list paths can produce maps to exactly one code.
type ErrorCode string

const (
	CodeMissingFile     ErrorCode = "MISSING_FILE"
	CodeValidation      ErrorCode = "VALIDATION"
	CodeExtraction      ErrorCode = "EXTRACTION"
	CodeFieldExtraction ErrorCode = "FIELD_EXTRACTION"
	CodePersistence     ErrorCode = "PERSISTENCE"
	CodeConfig          ErrorCode = "CONFIG_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match an AppError against the sentinel for its code.
func (e *AppError) Is(target error) bool {
	if s, ok := sentinels[e.Code]; ok {
		return s == target
	}
	return false
}

// Common application errors
var (
	ErrMissingFile     = errors.New("missing file")
	ErrValidation      = errors.New("validation failed")
	ErrExtraction      = errors.New("text extraction failed")
	ErrFieldExtraction = errors.New("field extraction failed")
	ErrPersistence     = errors.New("persistence failed")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

var sentinels = map[ErrorCode]error{
	CodeMissingFile:     ErrMissingFile,
	CodeValidation:      ErrValidation,
	CodeExtraction:      ErrExtraction,
	CodeFieldExtraction: ErrFieldExtraction,
	CodePersistence:     ErrPersistence,
	CodeConfig:          ErrInvalidConfig,
}

// Error constructors
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func MissingFileError(message string) error {
	return NewAppError(CodeMissingFile, message, nil)
}

func ValidationError(message string, cause error) error {
	return NewAppError(CodeValidation, message, cause)
}

func ExtractionError(message string, cause error) error {
	return NewAppError(CodeExtraction, message, cause)
}

func FieldExtractionError(message string) error {
	return NewAppError(CodeFieldExtraction, message, nil)
}

func PersistenceError(message string, cause error) error {
	return NewAppError(CodePersistence, message, cause)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Detail returns the most useful underlying message for err: the cause of
// an AppError when it has one, otherwise err itself.
func Detail(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Cause != nil {
		return appErr.Cause.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
