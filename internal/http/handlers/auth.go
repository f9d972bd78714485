package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/backend"
	"busfront/internal/http/middleware"
	"busfront/internal/session"
	"busfront/internal/utils"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
//
// Forwards the credentials to the backend and, on success, persists the
// bearer token and profile server-side. The browser only ever holds the
// signed session cookie.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	result, err := a.Backend.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	sess, err := a.Sessions.Create(c.Request.Context(), result.Token, result.Profile())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	cookieToken, err := session.MintCookieToken(a.Env.SessionSecret, sess.ID, a.Env.SessionTTL)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.setSessionCookie(c, cookieToken)

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "username="+result.Username)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"token":   cookieToken,
		"user":    result.Profile(),
	})
}

// POST /api/auth/register
//
// Registration never establishes a session, the page sends the user on to
// login.
func (a *API) Register(c *gin.Context) {
	var req backend.SignupRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := a.Backend.Signup(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "username="+req.Username)
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful! Please login."})
}

// POST /api/auth/logout
//
// Clears persisted and in-memory state unconditionally; logging out twice
// is fine.
// Logout drops the session row and the cookie. It is mounted without the
// auth middleware so a stale or missing credential still gets a clean 200.
func (a *API) Logout(c *gin.Context) {
	if raw := middleware.SessionToken(c); raw != "" {
		if sid, err := session.ParseCookieToken(a.Env.SessionSecret, raw); err == nil {
			_ = a.Sessions.Delete(c.Request.Context(), sid)
		}
	}
	a.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GET /api/auth/me
//
// Restores the profile from the persisted session; no backend call.
func (a *API) Me(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.Profile})
}

func (a *API) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(a.Env.SessionTTL.Seconds()), "/", "", false, true)
}

func (a *API) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
