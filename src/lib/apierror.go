package lib

import "github.com/gofiber/fiber/v2"

// APIError is the only error type that crosses the controller boundary.
// Anything else is reported as a generic server error with no detail leaked.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NotFound(message string) *APIError {
	return &APIError{Status: fiber.StatusNotFound, Message: message}
}

// Forbidden mutations answer with the same shape as a missing resource so a
// caller cannot probe for the existence of things they do not own.
func NotFoundOrNotAuthorized() *APIError {
	return &APIError{Status: fiber.StatusNotFound, Message: "not found or not authorized"}
}

func Conflict(message string) *APIError {
	return &APIError{Status: fiber.StatusConflict, Message: message}
}

func Validation(message string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: message}
}

func Unauthenticated(message string) *APIError {
	return &APIError{Status: fiber.StatusUnauthorized, Message: message}
}

func Upstream(message string) *APIError {
	return &APIError{Status: fiber.StatusBadGateway, Message: message}
}
