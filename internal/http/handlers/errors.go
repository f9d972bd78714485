package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"busfront/internal/domain"
	"busfront/internal/http/middleware"
	"busfront/internal/session"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
		"message":    message,
	})
}

// RespondDomainError maps domain errors to HTTP responses. Upstream errors
// carry the backend message verbatim when present so pages can show it.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":      err.Error(),
			"code":       "session_invalid",
			"redirect":   "/login",
			"request_id": middleware.GetRequestID(c),
		})
	case domain.IsUpstream(err):
		var up domain.UpstreamError
		errors.As(err, &up)
		status := http.StatusBadGateway
		if up.Status >= 400 && up.Status <= 499 {
			// A backend 4xx is a user error ("username already taken"),
			// not a gateway fault; keep its status.
			status = up.Status
		}
		respondError(c, status, "upstream_error", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// failRequest answers one failed operation. A 403 from the backend means the
// stored token went stale: the session row is dropped and the cookie cleared
// before the caller is sent back to login.
func (a *API) failRequest(c *gin.Context, sess session.Session, err error) {
	if domain.IsUnauthorized(err) && sess.ID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.Sessions.Delete(ctx, sess.ID)
		a.clearSessionCookie(c)
	}
	RespondDomainError(c, err)
}
