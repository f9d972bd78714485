package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles is role-based access control over the session profile.
// Only requests whose session carries one of allowedRoles pass.
// Example:
//
//	admin.Use(RequireRoles("ROLE_ADMIN"))
//
// Assumes SessionAuth ran earlier and put the session on the context.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToUpper(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "login required",
				"redirect": "/login",
			})
			return
		}

		for _, role := range sess.Profile.Roles {
			if _, ok := allowed[strings.ToUpper(strings.TrimSpace(role))]; ok {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "forbidden: role not allowed",
		})
	}
}
