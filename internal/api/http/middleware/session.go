package middleware

import (
	"net/http"
	"strings"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-Id"
	SessionCookie = "charforge_session"

	sessionKey       = "session_id"
	sessionCookieAge = 365 * 24 * 60 * 60
)

// SessionMiddleware scopes the bridge and the view states to one client.
// The id comes from the X-Session-Id header, then the session cookie;
// a new one is issued when neither is present.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sid = strings.TrimSpace(cookie)
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionCookieAge, "/", "", false, true)
		}

		c.Set(sessionKey, sid)
		c.Request = c.Request.WithContext(logging.WithSessionID(c.Request.Context(), sid))
		c.Writer.Header().Set(SessionHeader, sid)

		c.Next()
	}
}

// SessionID returns the session id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
