package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/backend"
	"busfront/internal/config"
	"busfront/internal/http/middleware"
	"busfront/internal/session"
)

// API bundles the gateway dependencies every page handler needs.
type API struct {
	Env      config.Env
	Backend  *backend.Client
	Sessions *session.Store
}

func New(env config.Env, client *backend.Client, store *session.Store) *API {
	return &API{Env: env, Backend: client, Sessions: store}
}

// RespondError sends standard error payload with request_id included.
// Keeps a "message" field so pages can surface it directly.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// mustSession pulls the session set by SessionAuth. Routes that reach this
// without the middleware are a programming error, answered as 401 anyway.
func (a *API) mustSession(c *gin.Context) (session.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "login required",
			"redirect": "/login",
		})
		return session.Session{}, false
	}
	return sess, true
}
