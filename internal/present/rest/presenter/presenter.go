package presenter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response. The body is tagged with an ETag. On GET and
// HEAD a matching If-None-Match short-circuits to 304.
func OK(c echo.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return InternalError(c, err, "Failed to encode response")
	}

	etag := ETag(body)
	c.Response().Header().Set("ETag", etag)
	if conditional(c.Request().Method) && etagMatches(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}

	return c.JSONBlob(http.StatusOK, body)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// InvalidBody answers a body that could not be decoded. The decoder detail is
// logged, not returned.
func InvalidBody(c echo.Context, err error) error {
	slog.DebugContext(
		c.Request().Context(), "invalid request body",
		slog.String("error", err.Error()),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.DebugContext(
		c.Request().Context(), "bad request",
		slog.String("error", msg),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// InternalError logs the cause and answers with msg only.
func InternalError(c echo.Context, err error, msg string) error {
	slog.ErrorContext(
		c.Request().Context(), msg,
		slog.String("error", fmt.Sprintf("%+v", err)),
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: msg})
}

func ServiceUnavailable(c echo.Context, msg string) error {
	return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: msg})
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

func conditional(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
