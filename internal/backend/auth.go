package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"busfront/internal/domain"
)

type LoginResult struct {
	Token     string   `json:"token"`
	UserID    int64    `json:"userId"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	FullName  string   `json:"fullName"`
	Roles     []string `json:"roles"`
}

func (r LoginResult) Profile() domain.Profile {
	return domain.Profile{
		ID:        r.UserID,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		FullName:  r.FullName,
		Roles:     r.Roles,
	}
}

// Login exchanges credentials for a bearer token. A rejected credential is
// reported as UpstreamError carrying the server's own message ("Bad
// credentials", "User account is locked") so the form can show it; it is not
// an UnauthorizedError because there is no session to invalidate.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	body := map[string]string{"username": strings.TrimSpace(username), "password": password}
	err := c.post(ctx, "/api/auth/login", "", body, &out)
	var unauth domain.UnauthorizedError
	if errors.As(err, &unauth) {
		msg := unauth.Msg
		if msg == "" || msg == sessionExpiredMsg {
			msg = "Login failed"
		}
		return out, domain.UpstreamError{Status: http.StatusUnauthorized, Msg: msg}
	}
	if err != nil {
		return out, err
	}
	if out.Token == "" {
		return out, domain.UpstreamError{Msg: "login response missing token"}
	}
	return out, nil
}

type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Signup registers a new account. It does not establish a session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.post(ctx, "/api/auth/signup", "", req, nil)
}
