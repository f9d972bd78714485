package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"busfront/internal/domain"
)

// CookieName is the fixed key the browser stores the session credential
// under.
const CookieName = "busfront_session"

// MintCookieToken signs a JWT carrying only the session id. The upstream
// bearer token never leaves the server.
func MintCookieToken(secret, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign session token", Err: err}
	}
	return signed, nil
}

// ParseCookieToken validates the JWT and extracts the session id.
func ParseCookieToken(secret, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.UnauthorizedError{Msg: "invalid session token", Err: err}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.UnauthorizedError{Msg: "invalid session claims"}
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.UnauthorizedError{Msg: "session id missing from token"}
	}
	return sid, nil
}
