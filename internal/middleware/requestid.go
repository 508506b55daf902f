package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDKey = "X-Request-ID"

// RequestIDMiddleware tags every request with an id, generating one when the
// caller did not supply it, and echoes it back in the response headers.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(RequestIDKey)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Response().Header().Set(RequestIDKey, requestID)
		return next(c)
	}
}
