// Package frontend serves the embedded demo chat page.
package frontend

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed dist
var embeddedFiles embed.FS

// Register mounts the static frontend at the web root. API routes are
// registered first and take precedence.
func Register(e *echo.Echo) {
	dist, err := fs.Sub(embeddedFiles, "dist")
	if err != nil {
		// The dist directory is embedded at compile time; this cannot fail
		// on a correct build.
		panic(err)
	}
	e.GET("/", echo.WrapHandler(http.FileServer(http.FS(dist))))
	e.GET("/index.html", echo.WrapHandler(http.FileServer(http.FS(dist))))
}
