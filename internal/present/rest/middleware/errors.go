package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders framework errors (unknown routes, wrong methods,
// panics caught by Recover) with the same {"error": ...} body the handlers use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		slog.ErrorContext(
			c.Request().Context(), "unhandled error",
			slog.String("error", err.Error()),
			slog.String("path", c.Request().URL.Path),
			slog.String("module", "rest"),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, errorResponse{Error: msg})
	}
	if writeErr != nil {
		slog.ErrorContext(
			c.Request().Context(), "failed to write error response",
			slog.String("error", writeErr.Error()),
			slog.String("module", "rest"),
		)
	}
}
