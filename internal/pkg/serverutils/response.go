package serverutils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const InternalErrorMessage = "Internal server error"

// AppError is an error that is safe to show to the client as-is.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewServiceUnavailableError(message string) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message}
}

type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

// StatusFor maps an error to the HTTP status and message sent to the client.
// Anything that is not an AppError or fiber.Error is masked.
func StatusFor(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return http.StatusInternalServerError, InternalErrorMessage
}
