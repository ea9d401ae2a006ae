package middleware

import (
	"net/http"
	"strings"

	"InterviewPractice_FeedbackService/internal/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	SessionHeader = "X-Session-Id"
	sessionKey    = "session_id"
)

// Session reads the practice session id from the X-Session-Id header or the
// "session" query parameter. When required, a request without one is
// rejected with 400.
func Session(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id = strings.TrimSpace(c.Query("session"))
		}
		if id == "" && required {
			appErr := apperrors.InvalidInput("A session id is required (X-Session-Id header or session query parameter)")
			c.AbortWithStatusJSON(http.StatusBadRequest, appErr.Body())
			return
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the id stored by Session, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
