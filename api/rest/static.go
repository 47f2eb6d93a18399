package rest

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// StaticFallback serves files of the browser client from dir for requests no
// route matched. The request path is rooted before joining, so it cannot
// leave dir.
func StaticFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			c.File(path)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}
