package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Authenticate verifies the bearer token and attaches the customer identity
// to the request context. It never touches the database.
func Authenticate(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Fail(w, r, apperr.New(apperr.Unauthenticated))
				return
			}

			id, err := issuer.Parse(token)
			if err != nil {
				response.Fail(w, r, apperr.Wrap(apperr.InvalidToken, err))
				return
			}

			ctx := auth.WithIdentity(r.Context(), id)
			ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("customer_id", id.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken accepts "Bearer <token>" (any case) or a bare token.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) >= 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if strings.EqualFold(h, "bearer") {
		return ""
	}
	return h
}
