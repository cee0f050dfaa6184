// Package httperr defines the error taxonomy shared by all handlers and the
// central Fiber error handler that maps it onto the uniform JSON error body.
package httperr

import "github.com/gofiber/fiber/v2"

// Error is a domain error carrying the HTTP status it should produce and an
// optional structured detail payload (field-level validation errors, mostly).
type Error struct {
	Status  int
	Message string
	Data    any
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation is a 422 with a field-level error list attached.
func Validation(data any) *Error {
	return &Error{Status: fiber.StatusUnprocessableEntity, Message: "Validation failed", Data: data}
}

func Unauthorized(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: message}
}
