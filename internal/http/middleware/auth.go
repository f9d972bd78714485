package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"busfront/internal/session"
)

const sessionKey = "session"

// SessionAuth restores the caller's session from the signed session token
// (cookie or Authorization header) and aborts with 401 + login redirect when
// it cannot. Protected routes mount this; public catalog routes do not.
func SessionAuth(store *session.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := SessionToken(c)
		if raw == "" {
			abortToLogin(c, "login required")
			return
		}

		sid, err := session.ParseCookieToken(secret, raw)
		if err != nil {
			abortToLogin(c, "invalid session, please log in again")
			return
		}

		sess, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			abortToLogin(c, "session expired, please log in again")
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionToken extracts the signed session token from the cookie or, for
// non-browser clients, the Authorization header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func abortToLogin(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"redirect":   "/login",
		"request_id": GetRequestID(c),
	})
}

// CurrentSession returns the session placed on the context by SessionAuth.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
