package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"busfront/internal/backend"
	"busfront/internal/config"
	"busfront/internal/domain"
)

func searchFixture(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.Env{}, backend.New(srv.URL, 5*time.Second), nil)
}

func TestSearchBuses_DateNormalized(t *testing.T) {
	var gotDate string
	app := searchFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		_ = json.NewEncoder(w).Encode([]domain.Bus{{ID: 1, BusNumber: "KA-01"}})
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/buses/search?source=Bangalore&destination=Chennai&date=2024-03-01T10:00", nil)

	app.SearchBuses(c)

	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", w.Code, w.Body.String())
	}
	if gotDate != "2024-03-01" {
		t.Fatalf("date not normalized to calendar day, sent %q", gotDate)
	}
}

func TestSearchBuses_BadDateRejectedBeforeBackend(t *testing.T) {
	app := searchFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend must not be called for an unparseable date")
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/buses/search?source=Bangalore&destination=Chennai&date=tomorrow", nil)

	app.SearchBuses(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unparseable date should answer 400, got %d", w.Code)
	}
}

func TestSearchBuses_MissingFieldRejected(t *testing.T) {
	app := searchFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("backend must not be called with missing fields")
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/buses/search?source=Bangalore&date=2024-03-01", nil)

	app.SearchBuses(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing destination should answer 400, got %d", w.Code)
	}
}
