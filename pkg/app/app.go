// Package app assembles the storefront HTTP kernel: the global middleware
// stack, the operational endpoints and the routes registered by callers.
//
//	a, err := app.New(cfg, db)
//	if err != nil {
//	    return err
//	}
//	a.Routes(func(r *router.Router) {
//	    routes.RegisterAPI(r, controllers, issuer)
//	})
//	err = a.Serve(ctx) // blocks until ctx is cancelled, then drains
package app

import (
	"context"
	"net/http"
	"net/netip"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Application is the storefront HTTP application. Build one with New,
// attach routes, then call Serve or Handler.
type Application struct {
	cfg       *config.Config
	db        *gorm.DB
	routesFns []func(*router.Router)
	limiter   *middleware.Limiter
	proxies   []netip.Prefix
}

// New creates an Application. db backs /healthz and may be nil in tests.
// It fails on a malformed HTTP_TRUSTED_PROXIES entry.
func New(cfg *config.Config, db *gorm.DB) (*Application, error) {
	proxies, err := middleware.ParseTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, db: db, proxies: proxies}
	if cfg.HTTP.RateLimit > 0 {
		a.limiter = middleware.NewLimiter(cfg.HTTP.RateLimit)
	}
	return a, nil
}

// Routes registers a route-registration callback. Callbacks run in order
// each time the router is built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Router builds the router with every middleware and route attached.
func (a *Application) Router() *router.Router {
	return buildRouter(a)
}

// Handler is Router().Handler().
func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}

// Serve listens on App.Port until ctx is cancelled, then shuts down within
// App.ShutdownTimeout.
func (a *Application) Serve(ctx context.Context) error {
	if a.limiter != nil {
		go a.limiter.Run(ctx)
	}

	return server.Start(ctx, server.Options{
		Addr:            ":" + a.cfg.App.Port,
		Handler:         a.Handler(),
		ShutdownTimeout: a.cfg.App.ShutdownTimeout,
		Log:             logger.L,
	})
}
