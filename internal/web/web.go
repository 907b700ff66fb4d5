// Package web serves the browser client for the post board.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var assets embed.FS

// Register mounts the client under prefix (for example "/ui").
func Register(r gin.IRoutes, prefix string) error {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return err
	}
	r.StaticFS(prefix, http.FS(sub))
	return nil
}
