package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"argprep/internal/http/middleware"
	"argprep/internal/preprocess"
	"argprep/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// notReadyPayload is returned when adjudication is refused; it carries the report.
type notReadyPayload struct {
	errorPayload
	Validation *service.ValidationResult `json:"validation"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// preprocessCode maps a preprocessing failure to its error code.
func preprocessCode(err error) (string, bool) {
	switch {
	case errors.Is(err, preprocess.ErrUnsupportedExtension):
		return "UNSUPPORTED_EXTENSION", true
	case errors.Is(err, preprocess.ErrFileTooLarge):
		return "FILE_TOO_LARGE", true
	case errors.Is(err, preprocess.ErrUnreadableDocument):
		return "UNREADABLE_DOCUMENT", true
	case errors.Is(err, preprocess.ErrDecodeFailed):
		return "DECODE_FAILED", true
	case errors.Is(err, preprocess.ErrInsufficientContent):
		return "INSUFFICIENT_CONTENT", true
	case errors.Is(err, preprocess.ErrNoFiles):
		return "FILES_REQUIRED", true
	}
	return "", false
}

// writeServiceError translates service and preprocessing errors into responses.
// Preprocessing messages are user-facing and returned verbatim; anything
// unrecognized becomes a 500 without details.
func writeServiceError(c *fiber.Ctx, err error) error {
	if code, ok := preprocessCode(err); ok {
		return writeError(c, fiber.StatusBadRequest, code, err.Error())
	}

	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrEmptyArgument):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_ARGUMENT", err.Error())
	case errors.Is(err, service.ErrCaseNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "case not found")
	case errors.Is(err, service.ErrFileNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
	case errors.Is(err, service.ErrCaseExists):
		return writeError(c, fiber.StatusConflict, "CASE_EXISTS", err.Error())
	case errors.Is(err, service.ErrFollowUpLimit):
		return writeError(c, fiber.StatusConflict, "FOLLOW_UP_LIMIT", err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return writeError(c, fiber.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, service.ErrCaseNotReady):
		return writeError(c, fiber.StatusConflict, "CASE_NOT_READY", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
