package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// APIPrefix is the path prefix of every JSON route.
const APIPrefix = "/api"

// Frontend serves the separately built front-end bundle from root. Paths that
// match no file fall back to index.html so client-side routes work. API paths
// are never served from disk.
func Frontend(root string) echo.MiddlewareFunc {
	return echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  root,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == APIPrefix || strings.HasPrefix(path, APIPrefix+"/")
		},
	})
}
