package testkit

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON body written by pkg/response.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// DataInto decodes the envelope's data field into dest.
func (e Envelope) DataInto(t testing.TB, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, dest), "testkit: decode data: %s", string(e.Data))
}

// Option mutates a request before it is served.
type Option func(*http.Request)

// Bearer sets Authorization: Bearer <token>.
func Bearer(token string) Option {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

// Header sets an arbitrary request header.
func Header(key, value string) Option {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Do serves one request against h and returns the recorder.
func Do(t testing.TB, h http.Handler, method, target, body string, opts ...Option) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// AssertStatus checks the status code and decodes the envelope.
func AssertStatus(t testing.TB, rec *httptest.ResponseRecorder, want int) Envelope {
	t.Helper()

	assert.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "testkit: body is not an envelope: %s", rec.Body.String())
	assert.Equal(t, want, env.Status, "envelope status")
	return env
}
