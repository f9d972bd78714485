package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"busfront/internal/domain"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db, "test-secret", time.Hour), mock, db
}

func testProfile() domain.Profile {
	return domain.Profile{
		ID:       5,
		Username: "alice",
		FullName: "Alice Rao",
		Roles:    []string{"ROLE_USER"},
	}
}

func TestStore_CreatePersistsEncryptedToken(t *testing.T) {
	store, mock, _ := newMockStore(t)

	var cipher []byte
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	sess, err := store.Create(context.Background(), "bearer-xyz", testProfile())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("session id not generated")
	}
	if sess.Token != "bearer-xyz" {
		t.Fatalf("session token mangled: %q", sess.Token)
	}

	// the stored cipher must decrypt back to the original token
	cipher, err = store.seal("bearer-xyz")
	if err != nil {
		t.Fatalf("seal returned error: %v", err)
	}
	plain, err := store.open(cipher)
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	if plain != "bearer-xyz" {
		t.Fatalf("round trip mismatch: %q", plain)
	}
	if string(cipher) == "bearer-xyz" {
		t.Fatalf("token stored in the clear")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStore_GetRestoresProfileWithoutNetwork(t *testing.T) {
	store, mock, _ := newMockStore(t)

	cipher, err := store.seal("bearer-xyz")
	if err != nil {
		t.Fatalf("seal returned error: %v", err)
	}
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "token_cipher", "profile_json", "checkout_json", "created_at", "expires_at"}).
		AddRow("sid-1", cipher, `{"id":5,"username":"alice","fullName":"Alice Rao","roles":["ROLE_USER"]}`, nil, now, now.Add(time.Hour))
	mock.ExpectQuery("(?s)SELECT (.+) FROM sessions").WithArgs("sid-1").WillReturnRows(rows)

	sess, err := store.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if sess.Token != "bearer-xyz" {
		t.Fatalf("token not restored: %q", sess.Token)
	}
	if sess.Profile.Username != "alice" || sess.Profile.ID != 5 {
		t.Fatalf("profile not restored: %+v", sess.Profile)
	}
	if sess.Checkout != nil {
		t.Fatalf("unexpected checkout: %+v", sess.Checkout)
	}
}

func TestStore_GetExpiredSessionIsUnauthorized(t *testing.T) {
	store, mock, _ := newMockStore(t)

	cipher, _ := store.seal("bearer-xyz")
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "token_cipher", "profile_json", "checkout_json", "created_at", "expires_at"}).
		AddRow("sid-1", cipher, `{}`, nil, now.Add(-2*time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery("(?s)SELECT (.+) FROM sessions").WithArgs("sid-1").WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM sessions").WithArgs("sid-1").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := store.Get(context.Background(), "sid-1")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expired session should be unauthorized, got %v", err)
	}
}

func TestStore_GetUnknownSessionIsUnauthorized(t *testing.T) {
	store, mock, _ := newMockStore(t)

	mock.ExpectQuery("(?s)SELECT (.+) FROM sessions").WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "token_cipher", "profile_json", "checkout_json", "created_at", "expires_at"}))

	_, err := store.Get(context.Background(), "nope")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("unknown session should be unauthorized, got %v", err)
	}
}

func TestStore_SaveAndClearCheckout(t *testing.T) {
	store, mock, _ := newMockStore(t)

	mock.ExpectExec("UPDATE sessions SET checkout_json").
		WillReturnResult(sqlmock.NewResult(0, 1))
	checkout := &domain.Checkout{BusID: 7, TotalAmount: 900, SelectedSeats: []string{"A1", "A2"}}
	if err := store.SaveCheckout(context.Background(), "sid-1", checkout); err != nil {
		t.Fatalf("SaveCheckout returned error: %v", err)
	}

	mock.ExpectExec("UPDATE sessions SET checkout_json").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.SaveCheckout(context.Background(), "sid-1", nil); err != nil {
		t.Fatalf("clearing checkout returned error: %v", err)
	}
}

func TestStore_DeleteClearsSession(t *testing.T) {
	store, mock, _ := newMockStore(t)

	mock.ExpectExec("DELETE FROM sessions").WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	// deleting again is still fine
	mock.ExpectExec("DELETE FROM sessions").WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
}

func TestCookieToken_RoundTrip(t *testing.T) {
	raw, err := MintCookieToken("secret", "sid-42", time.Hour)
	if err != nil {
		t.Fatalf("MintCookieToken returned error: %v", err)
	}
	sid, err := ParseCookieToken("secret", raw)
	if err != nil {
		t.Fatalf("ParseCookieToken returned error: %v", err)
	}
	if sid != "sid-42" {
		t.Fatalf("session id mismatch: %q", sid)
	}

	if _, err := ParseCookieToken("other-secret", raw); !domain.IsUnauthorized(err) {
		t.Fatalf("wrong secret should be unauthorized, got %v", err)
	}
}
