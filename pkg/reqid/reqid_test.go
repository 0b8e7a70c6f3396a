package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/reqid"
)

func serve(header string) (string, *httptest.ResponseRecorder) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddleware_GeneratesUUID(t *testing.T) {
	seen, rec := serve("")
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestMiddleware_HonoursUpstreamID(t *testing.T) {
	seen, _ := serve("gateway-123")
	assert.Equal(t, "gateway-123", seen)
}

func TestMiddleware_ReplacesOversizedID(t *testing.T) {
	seen, _ := serve(strings.Repeat("x", 500))
	assert.Len(t, seen, 36)
}

func TestMiddleware_ReplacesUnprintableID(t *testing.T) {
	seen, _ := serve("bad id\twith spaces")
	assert.NotEqual(t, "bad id\twith spaces", seen)
	assert.Len(t, seen, 36)
}
