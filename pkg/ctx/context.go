// Package ctx gives handlers a single *Context instead of (w, r):
//
//	func (h *CatalogController) Show(c *ctx.Context) {
//	    product, err := h.catalog.Detail(c.Context(), c.Param("id"))
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(product)
//	}
//
//	router.Get("/detail/{id}", "products.show", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type (
	bodyLimitKey struct{}
	clientIPKey  struct{}
)

// WithBodyLimit sets the cap BindJSON applies to this request's body.
// Without it BindJSON uses bind.DefaultMaxBytes.
func WithBodyLimit(c context.Context, maxBytes int64) context.Context {
	return context.WithValue(c, bodyLimitKey{}, maxBytes)
}

// WithClientIP records the resolved caller address for ClientIP.
func WithClientIP(c context.Context, ip string) context.Context {
	return context.WithValue(c, clientIPKey{}, ip)
}

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to an http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, "" when absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the customer attached by the auth middleware.
func (c *Context) Identity() (auth.Identity, bool) {
	return auth.IdentityFrom(c.R.Context())
}

// BindJSON decodes and validates the body into dest. The returned error is
// an *apperr.Error ready for Fail.
func (c *Context) BindJSON(dest any) error {
	limit, _ := c.R.Context().Value(bodyLimitKey{}).(int64)
	return bind.JSON(c.R, dest, limit)
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) Success(data any) {
	c.status = http.StatusOK
	response.Success(c.W, data)
}

func (c *Context) Created(message string, data any) {
	c.status = http.StatusCreated
	response.Created(c.W, message, data)
}

func (c *Context) Paginated(items any, p orm.Pagination) {
	c.status = http.StatusOK
	response.Paginated(c.W, items, p)
}

// Fail maps err to its status via response.Fail.
func (c *Context) Fail(err error) {
	rec := &statusRecorder{ResponseWriter: c.W}
	response.Fail(rec, c.R, err)
	c.status = rec.status
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// ClientIP returns the address stored by WithClientIP, or the connection
// address without port. Forwarding headers are only honoured upstream of
// this, by middleware that knows which proxies to trust.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	return RemoteHost(r)
}

// RemoteHost is r.RemoteAddr without the port.
func RemoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
