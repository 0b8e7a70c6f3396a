package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	w.Header().Set("X-Customer", id.Email)
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthenticate(t *testing.T) {
	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	token, err := issuer.Issue(auth.Identity{ID: 9, Email: "budi@example.com", Name: "Budi"})
	require.NoError(t, err)

	h := middleware.Authenticate(issuer)(http.HandlerFunc(echoIdentity))

	t.Run("missing", func(t *testing.T) {
		env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/buy/1", ""), http.StatusUnauthorized)
		assert.Equal(t, "Please login first", env.Message)
	})

	t.Run("empty bearer", func(t *testing.T) {
		env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/buy/1", "", testkit.Header("Authorization", "Bearer ")), http.StatusUnauthorized)
		assert.Equal(t, "Please login first", env.Message)
	})

	t.Run("invalid", func(t *testing.T) {
		env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/buy/1", "", testkit.Bearer("not-a-jwt")), http.StatusUnauthorized)
		assert.Equal(t, "Invalid token", env.Message)
	})

	t.Run("valid", func(t *testing.T) {
		rec := testkit.Do(t, h, http.MethodPost, "/buy/1", "", testkit.Bearer(token))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "budi@example.com", rec.Header().Get("X-Customer"))
	})

	t.Run("bare token", func(t *testing.T) {
		rec := testkit.Do(t, h, http.MethodPost, "/buy/1", "", testkit.Header("Authorization", token))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	h := middleware.NewLimiter(2).Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1").Code)

	rec := serve("10.0.0.1")
	env := testkit.AssertStatus(t, rec, http.StatusTooManyRequests)
	assert.Equal(t, "Too many requests", env.Message)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, serve("10.0.0.2").Code)
}

func TestCORSPreflight(t *testing.T) {
	h := middleware.CORS([]string{"https://shop.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/", ""), http.StatusInternalServerError)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, env.Message, "boom")
}

func TestLoggerPassesStatus(t *testing.T) {
	h := middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func clientIPVia(t *testing.T, trusted []string, remote string, headers map[string]string) string {
	t.Helper()
	proxies, err := middleware.ParseTrustedProxies(trusted)
	require.NoError(t, err)

	var seen string
	h := middleware.RealIP(proxies)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = appctx.ClientIP(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return seen
}

func TestRealIP(t *testing.T) {
	xff := map[string]string{"X-Forwarded-For": "198.51.100.9, 203.0.113.5, 10.0.0.2"}

	// untrusted peer: headers are ignored
	assert.Equal(t, "192.0.2.7", clientIPVia(t, nil, "192.0.2.7:4000", xff))

	// trusted peer: right-most hop that is not a proxy
	assert.Equal(t, "203.0.113.5", clientIPVia(t, []string{"10.0.0.0/8"}, "10.0.0.1:4000", xff))

	// every hop trusted falls back to X-Real-Ip, then the peer
	assert.Equal(t, "198.51.100.1", clientIPVia(t, []string{"10.0.0.1"}, "10.0.0.1:4000",
		map[string]string{"X-Forwarded-For": "10.0.0.1", "X-Real-Ip": "198.51.100.1"}))
	assert.Equal(t, "10.0.0.1", clientIPVia(t, []string{"10.0.0.1"}, "10.0.0.1:4000", nil))

	// garbage in the chain stops the walk
	assert.Equal(t, "10.0.0.1", clientIPVia(t, []string{"10.0.0.1"}, "10.0.0.1:4000",
		map[string]string{"X-Forwarded-For": "203.0.113.5, bogus"}))
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := middleware.ParseTrustedProxies([]string{"10.0.0.1", " 172.16.0.0/12 ", ""})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10.0.0.1/32", got[0].String())
	assert.Equal(t, "172.16.0.0/12", got[1].String())

	_, err = middleware.ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}
