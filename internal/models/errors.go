package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service layer.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "CONFLICT"
	CodeAuth          = "AUTH_FAILED"
	CodeNotFound      = "NOT_FOUND"
	CodeForbidden     = "FORBIDDEN"
	CodeProcessing    = "PROCESSING_ERROR"
	CodeStorage       = "STORAGE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code,omitempty"`
	Messages []string `json:"messages,omitempty"`
	Details  string   `json:"details,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code     string
	Message  string
	Messages []string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps a single bad-input message.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewValidationErrors aggregates a list of field-level messages into one
// recoverable validation failure.
func NewValidationErrors(messages []string) *AppError {
	return &AppError{
		Code:     CodeValidation,
		Message:  strings.Join(messages, ", "),
		Messages: messages,
	}
}

// NewConflictError signals a uniqueness violation.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewAuthError signals failed authentication. Callers receive the same
// generic message for unknown user, wrong password, and inactive account
// so responses cannot be used for username enumeration.
func NewAuthError() *AppError {
	return &AppError{
		Code:    CodeAuth,
		Message: "Invalid username or password",
	}
}

// NewNotFoundError signals a missing resource for surfaces that need a
// hard error; most lookups instead return nil and let the caller redirect.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewForbiddenError signals a failed authorization predicate. The message
// is deliberately generic and must not reveal the missing permission.
func NewForbiddenError() *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: "Not permitted",
	}
}

// NewProcessingError signals an image decode/encode failure.
func NewProcessingError(err error) *AppError {
	return &AppError{
		Code:    CodeProcessing,
		Message: "Failed to process image",
		Err:     err,
	}
}

// NewStorageError wraps a database connectivity or query failure. Fatal to
// the current request; nothing is retried automatically.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Message: "Storage failure",
		Err:     err,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps an error to the HTTP status code it should be surfaced
// with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeConflict:
		return fiber.StatusConflict
	case CodeAuth:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeProcessing:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error:    appErr.Message,
			Code:     appErr.Code,
			Messages: appErr.Messages,
		}
		// Wrapped causes for storage/internal errors stay in the logs;
		// surfacing driver errors to clients leaks schema details.
		if appErr.Err != nil && appErr.Code == CodeProcessing {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
