package middleware

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// ParseTrustedProxies reads proxy addresses given as bare IPs or CIDR
// prefixes.
func ParseTrustedProxies(list []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(list))
	for _, raw := range list {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("middleware: trusted proxy %q: %w", raw, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("middleware: trusted proxy %q: %w", raw, err)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// RealIP stores the caller address for ctx.ClientIP. X-Forwarded-For and
// X-Real-Ip are read only when the connection comes from a trusted proxy;
// the client is then the right-most forwarded hop that is not itself a
// trusted proxy.
func RealIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	isTrusted := func(s string) bool {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	resolve := func(r *http.Request) string {
		remote := ctx.RemoteHost(r)
		if !isTrusted(remote) {
			return remote
		}

		hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if !isTrusted(hop) {
				return hop
			}
		}
		if real := strings.TrimSpace(r.Header.Get("X-Real-Ip")); real != "" {
			if _, err := netip.ParseAddr(real); err == nil {
				return real
			}
		}
		return remote
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctx.WithClientIP(r.Context(), resolve(r))))
		})
	}
}

// BodyLimit caps JSON bodies read through ctx.Context.BindJSON.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctx.WithBodyLimit(r.Context(), maxBytes)))
		})
	}
}
