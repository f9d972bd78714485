package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"busfront/internal/domain"
)

func respondTo(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	RespondDomainError(c, err)
	return w
}

func TestRespondDomainError_Upstream4xxForwarded(t *testing.T) {
	w := respondTo(t, domain.UpstreamError{Status: http.StatusBadRequest, Msg: "username already taken"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("backend 400 should stay 400, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "username already taken") {
		t.Fatalf("server message lost: %s", body)
	}
}

func TestRespondDomainError_Upstream5xxIsBadGateway(t *testing.T) {
	w := respondTo(t, domain.UpstreamError{Status: http.StatusServiceUnavailable, Msg: "down"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("backend 5xx should map to 502, got %d", w.Code)
	}
}

func TestRespondDomainError_NetworkErrorIsBadGateway(t *testing.T) {
	w := respondTo(t, domain.UpstreamError{Msg: "network error, please try again"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("transport failure should map to 502, got %d", w.Code)
	}
}
