// Package errors provides structured error handling for the application.
// It defines the AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002

	// Render errors (1100-1199)
	CodeValidation = 1100
	CodeResource   = 1101
	CodeEncode     = 1102
	CodeConcat     = 1103
	CodeTimeout    = 1104
	CodeProbe      = 1105

	// Script analysis errors (1200-1299)
	CodeScriptSplit      = 1200
	CodeLLMQuotaExceeded = 1201

	// Image generation errors (1300-1399)
	CodeImageGen = 1300

	// Speech synthesis errors (1400-1499)
	CodeTTSFailed     = 1400
	CodeVoiceNotFound = 1401

	// Storage errors (1500-1599)
	CodeDBError        = 1500
	CodeFileNotFound   = 1501
	CodeFileWriteError = 1502

	// Archive errors (1600-1699)
	CodeArchiveUpload = 1600
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code, returning CodeUnknown for plain errors
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts the message from an error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsClientFault reports whether the error is caused by bad caller input,
// which maps to a 4xx HTTP status.
func IsClientFault(err error) bool {
	switch GetCode(err) {
	case CodeInvalidParams, CodeValidation, CodeNotFound, CodeVoiceNotFound:
		return true
	}
	return false
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "invalid parameters")
	ErrNotFound      = New(CodeNotFound, "resource not found")

	ErrValidation = New(CodeValidation, "manifest validation failed")
	ErrResource   = New(CodeResource, "cannot allocate temporary storage")
	ErrEncode     = New(CodeEncode, "segment encoding failed")
	ErrConcat     = New(CodeConcat, "segment concatenation failed")
	ErrTimeout    = New(CodeTimeout, "encoder invocation timed out")

	ErrScriptSplit = New(CodeScriptSplit, "script analysis failed")
	ErrImageGen    = New(CodeImageGen, "image generation failed")
	ErrTTSFailed   = New(CodeTTSFailed, "speech synthesis failed")

	ErrDBError      = New(CodeDBError, "database error")
	ErrFileNotFound = New(CodeFileNotFound, "file not found")
)
