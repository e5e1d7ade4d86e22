package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Envelope is the uniform response wrapper: every endpoint, success or
// failure, returns this shape.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// SuccessMessage is the message carried by every successful response
const SuccessMessage = "Request Processed Successfully"

// OK writes a success envelope
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: SuccessMessage, Data: data})
}

// Fail writes a failure envelope with the given status and message
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// Internal logs the error and writes a generic 500 envelope. Engine-specific
// detail never reaches the caller.
func Internal(c echo.Context, err error, msg string) error {
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(msg)
	return Fail(c, http.StatusInternalServerError, "Request Failed")
}

// ErrorHandler renders framework-level errors (401 from the auth guard,
// unknown routes, 429) as the standard envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Request Failed"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	} else {
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
	}

	if writeErr := Fail(c, status, message); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
