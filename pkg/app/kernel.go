package app

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

func buildRouter(a *Application) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for total latency
	//  2. Request ID, before anything logs
	//  3. Client address, before the logger and limiter read it
	//  4. Logger, so recovered panics still get an access line
	//  5. Recovery
	//  6. CORS
	//  7. Rate limiter
	//  8. Body cap for BindJSON
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.RealIP(a.proxies))
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(a.cfg.HTTP.CORSOrigins))
	if a.limiter != nil {
		r.Use(a.limiter.Middleware)
	}
	r.Use(middleware.BodyLimit(a.cfg.HTTP.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "health", a.health)

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}

func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		c, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(c, a.db); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}
	response.Success(w, map[string]string{"status": "ok"})
}
