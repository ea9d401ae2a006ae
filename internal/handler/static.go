package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"InterviewPractice_FeedbackService/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// NoRoute answers unmatched paths. With a static directory configured, GET
// requests outside /api are served from it, falling back to index.html so
// client-side routes resolve.
func NoRoute(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") {
			abortWithError(c, apperrors.NotFound("endpoint"), "")
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
