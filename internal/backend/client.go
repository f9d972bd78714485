// Package backend is the typed REST client for the external bus booking
// backend. Every page-level operation of the gateway goes through it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"busfront/internal/domain"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// sessionExpiredMsg is what callers see when the backend rejects the stored
// token without an error body of its own.
const sessionExpiredMsg = "session expired, please log in again"

// errorPayload covers the two error body shapes the backend uses.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (p errorPayload) text() string {
	if p.Error != "" {
		return p.Error
	}
	return p.Message
}

// do performs one backend request. token may be empty for public endpoints.
// Mapping: network failure -> UpstreamError without status; 401/403 ->
// UnauthorizedError carrying the server message when the body has one
// (session invalid, caller redirects to login); 404 -> NotFoundError; other
// non-2xx -> UpstreamError with the server message surfaced verbatim when
// present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.InternalError{Msg: "failed to encode request body", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return domain.InternalError{Msg: "failed to build backend request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.UpstreamError{Msg: "network error, please try again", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return domain.UpstreamError{Status: resp.StatusCode, Msg: "failed to read backend response", Err: err}
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		var payload errorPayload
		_ = json.Unmarshal(data, &payload)
		msg := payload.text()
		if msg == "" {
			msg = sessionExpiredMsg
		}
		return domain.UnauthorizedError{Msg: msg}
	}
	if resp.StatusCode == http.StatusNotFound {
		return domain.NotFoundError{Resource: strings.Trim(path, "/")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.Unmarshal(data, &payload)
		return domain.UpstreamError{Status: resp.StatusCode, Msg: payload.text()}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return domain.UpstreamError{Status: resp.StatusCode, Msg: "unexpected backend response", Err: err}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func query(values map[string]string) string {
	q := url.Values{}
	for k, v := range values {
		q.Set(k, v)
	}
	return q.Encode()
}
