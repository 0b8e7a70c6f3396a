// Package reqid tags every request with an id that shows up in the
// X-Request-ID response header and in each log line written through
// logger.WithCtx.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// Inbound ids longer than this, or with bytes outside printable ASCII, are
// replaced.
const maxLen = 128

type key struct{}

// New returns a random UUIDv4 string.
func New() string { return uuid.NewString() }

func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// FromCtx returns the id stored by Middleware, or "".
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(key{}).(string)
	return id
}

// Middleware reuses a well-formed inbound X-Request-ID or mints a new one,
// echoes it on the response and stores it in the request context.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !acceptable(id) {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}

func acceptable(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
