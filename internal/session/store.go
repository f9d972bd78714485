// Package session persists the logged-in state of one user: the upstream
// bearer token, the profile returned at login, and the pending checkout
// between the booking and payment steps. Rows live in MySQL so a gateway
// restart does not log anyone out; the token is encrypted at rest.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/nacl/secretbox"

	intdb "busfront/internal/db"
	"busfront/internal/domain"
)

type Session struct {
	ID        string
	Token     string
	Profile   domain.Profile
	Checkout  *domain.Checkout
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Store struct {
	DB     *sql.DB
	TTL    time.Duration
	secret [32]byte
}

func NewStore(db *sql.DB, secret string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &Store{DB: db, TTL: ttl}
	s.secret = sha256.Sum256([]byte(secret))
	return s
}

// EnsureTable creates the sessions table when missing. Called once at boot.
func (s *Store) EnsureTable(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(s.DB, "sessions") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS sessions (
	id VARCHAR(64) PRIMARY KEY,
	token_cipher BLOB NOT NULL,
	profile_json TEXT NOT NULL,
	checkout_json TEXT NULL,
	created_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NOT NULL,
	KEY idx_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := s.DB.ExecContext(ctx, ddl)
	return err
}

// Create persists a fresh session for a successful login.
func (s *Store) Create(ctx context.Context, token string, profile domain.Profile) (Session, error) {
	id, err := newSessionID()
	if err != nil {
		return Session{}, domain.InternalError{Msg: "failed to generate session id", Err: err}
	}

	now := time.Now().UTC()
	sess := Session{
		ID:        id,
		Token:     token,
		Profile:   profile,
		CreatedAt: now,
		ExpiresAt: now.Add(s.TTL),
	}

	cipher, err := s.seal(token)
	if err != nil {
		return Session{}, err
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return Session{}, domain.InternalError{Msg: "failed to encode profile", Err: err}
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, token_cipher, profile_json, checkout_json, created_at, expires_at)
		VALUES (?, ?, ?, NULL, ?, ?)
	`, sess.ID, cipher, string(profileJSON), sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return Session{}, domain.InternalError{Msg: "failed to persist session", Err: err}
	}
	return sess, nil
}

// Get restores a session from storage. An unknown or expired id is an
// UnauthorizedError so call sites redirect to login.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	var (
		sess         Session
		cipher       []byte
		profileJSON  string
		checkoutJSON sql.NullString
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, token_cipher, profile_json, checkout_json, created_at, expires_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &cipher, &profileJSON, &checkoutJSON, &sess.CreatedAt, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return Session{}, domain.UnauthorizedError{Msg: "session not found"}
	}
	if err != nil {
		return Session{}, domain.InternalError{Msg: "failed to load session", Err: err}
	}

	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.Delete(ctx, id)
		return Session{}, domain.UnauthorizedError{Msg: "session expired, please log in again"}
	}

	sess.Token, err = s.open(cipher)
	if err != nil {
		return Session{}, err
	}
	if err := json.Unmarshal([]byte(profileJSON), &sess.Profile); err != nil {
		return Session{}, domain.InternalError{Msg: "failed to decode profile", Err: err}
	}
	if checkoutJSON.Valid && checkoutJSON.String != "" {
		var checkout domain.Checkout
		if err := json.Unmarshal([]byte(checkoutJSON.String), &checkout); err != nil {
			return Session{}, domain.InternalError{Msg: "failed to decode checkout", Err: err}
		}
		sess.Checkout = &checkout
	}
	return sess, nil
}

// SaveCheckout stores the aggregate handed from the booking step to the
// payment step. Passing nil clears it.
func (s *Store) SaveCheckout(ctx context.Context, id string, checkout *domain.Checkout) error {
	var value any
	if checkout != nil {
		raw, err := json.Marshal(checkout)
		if err != nil {
			return domain.InternalError{Msg: "failed to encode checkout", Err: err}
		}
		value = string(raw)
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE sessions SET checkout_json = ? WHERE id = ?`, value, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to persist checkout", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.UnauthorizedError{Msg: "session not found"}
	}
	return nil
}

// Delete removes the session unconditionally. Logout and 403 invalidation
// both land here; deleting an already-gone session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete session", Err: err}
	}
	return nil
}

func newSessionID() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// seal encrypts the upstream bearer token with the store secret, nonce
// prepended to the box.
func (s *Store) seal(token string) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, domain.InternalError{Msg: "failed to generate nonce", Err: err}
	}
	return secretbox.Seal(nonce[:], []byte(token), &nonce, &s.secret), nil
}

func (s *Store) open(box []byte) (string, error) {
	if len(box) < 24 {
		return "", domain.InternalError{Msg: "token cipher too short"}
	}
	var nonce [24]byte
	copy(nonce[:], box[:24])
	plain, ok := secretbox.Open(nil, box[24:], &nonce, &s.secret)
	if !ok {
		return "", domain.InternalError{Msg: "failed to decrypt session token"}
	}
	return string(plain), nil
}
