package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// SessionIDContextKey is a gin context key for the caller's session identifier.
	SessionIDContextKey = "sessionID"
	sessionCookieName   = "clv_session"
	sessionHeaderName   = "X-Session-ID"
)

// SessionOpener resolves or creates sessions.
type SessionOpener interface {
	OpenSession(id string) (string, bool)
}

// SessionRequired binds every request to a session, starting a new one when the caller has none.
func SessionRequired(opener SessionOpener) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, created := opener.OpenSession(extractSessionID(c))
		if created {
			SetSessionCookie(c, id)
		}
		c.Set(SessionIDContextKey, id)
		c.Next()
	}
}

func extractSessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeaderName); id != "" {
		return id
	}
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session cookie to response.
func SetSessionCookie(c *gin.Context, id string) {
	c.SetCookie(sessionCookieName, id, 0, "/", "", false, true)
	c.Header(sessionHeaderName, id)
}
