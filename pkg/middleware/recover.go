package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Recovery converts a panic into the standard 500 envelope. The panic value
// and stack go to the log through response.Fail, never to the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			cause := fmt.Errorf("panic: %v\n%s", v, debug.Stack())
			response.Fail(w, r, apperr.Wrap(apperr.Internal, cause))
		}()
		next.ServeHTTP(w, r)
	})
}
