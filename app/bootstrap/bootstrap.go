// Package bootstrap is the storefront's composition root. It turns a
// *config.Config into connected clients, services, controllers and the
// HTTP application, and owns their shutdown.
//
//	sf, err := bootstrap.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer sf.Close()
//	sf.Queue.Start(ctx)
//	return sf.HTTP.Serve(ctx)
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/jobs"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/client"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/mail"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/notification"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Storefront holds every long-lived dependency of a running process.
type Storefront struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client // nil without REDIS_ADDR
	Queue  *queue.Manager
	Issuer *auth.Issuer
	HTTP   *app.Application

	ownDB bool
}

type options struct {
	db      *gorm.DB
	gateway client.PaymentGateway
	courier client.CourierClient
	mailer  mail.Sender
	log     *slog.Logger
}

// Option overrides a dependency New would otherwise build from config.
type Option func(*options)

// WithDB uses an already-open database. Close leaves it open.
func WithDB(db *gorm.DB) Option { return func(o *options) { o.db = db } }

func WithPaymentGateway(g client.PaymentGateway) Option {
	return func(o *options) { o.gateway = g }
}

func WithCourier(c client.CourierClient) Option { return func(o *options) { o.courier = c } }

func WithMailer(m mail.Sender) Option { return func(o *options) { o.mailer = m } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

// New connects and wires everything described by cfg. Queue workers are
// not started.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (_ *Storefront, err error) {
	o := options{log: logger.L}
	for _, opt := range opts {
		opt(&o)
	}

	sf := &Storefront{Config: cfg, DB: o.db, ownDB: o.db == nil}
	defer func() {
		if err != nil {
			sf.Close()
		}
	}()

	// ── Database ──────────────────────────────────────────────
	if sf.ownDB {
		if sf.DB, err = database.Connect(cfg.Database, o.log); err != nil {
			return nil, err
		}
	}
	if err = metrics.InstrumentGorm(sf.DB); err != nil {
		return nil, fmt.Errorf("bootstrap: instrument gorm: %w", err)
	}

	// ── Redis (cache + queue backend) ─────────────────────────
	if cfg.Redis.Enabled() {
		rdb, rerr := cache.NewClient(ctx, cfg.Redis)
		switch {
		case rerr == nil:
			sf.Redis = rdb
		case cfg.Queue.Driver == "redis":
			return nil, rerr
		default:
			o.log.Warn("bootstrap: redis unavailable, courier lookups will not be cached", "error", rerr)
		}
	}

	// ── Auth ──────────────────────────────────────────────────
	if sf.Issuer, err = auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	// ── Queue + notifications ─────────────────────────────────
	driver, err := queue.NewDriver(cfg.Queue, sf.Redis)
	if err != nil {
		return nil, err
	}
	sf.Queue = queue.New(driver, queue.Options{Workers: cfg.Queue.Workers, DB: sf.DB, Log: o.log})

	mailer := o.mailer
	if mailer == nil {
		mailer = mail.New(cfg.Mail)
	}
	orderRepo := repositories.NewOrderRepository(sf.DB)
	jobs.Register(sf.Queue, notification.New(mailer, cfg.Notify.SlackWebhook), orderRepo)

	// ── Third-party APIs ──────────────────────────────────────
	gateway := o.gateway
	if gateway == nil {
		gateway, err = client.NewMidtrans(cfg.Midtrans)
		if errors.Is(err, client.ErrNoServerKey) {
			o.log.Warn("bootstrap: MIDTRANS_SERVER_KEY not set, payment tokens are disabled")
			gateway, err = client.DisabledGateway(), nil
		}
		if err != nil {
			return nil, err
		}
	}
	courier := o.courier
	if courier == nil {
		courier = client.NewRajaOngkir(cfg.RajaOngkir)
	}

	// ── Services + HTTP ───────────────────────────────────────
	customerRepo := repositories.NewCustomerRepository(sf.DB)
	ctrls := routes.Controllers{
		Auth: controllers.NewAuthController(services.NewAuthService(customerRepo, sf.Issuer)),
		Catalog: controllers.NewCatalogController(services.NewCatalogService(
			repositories.NewProductRepository(sf.DB), repositories.NewCategoryRepository(sf.DB))),
		Shipping: controllers.NewShippingController(services.NewShippingService(
			courier, cache.New(sf.Redis, cfg.App.Name+":"), cfg.RajaOngkir.CacheTTL)),
		Orders: controllers.NewOrderController(
			services.NewCheckoutService(orderRepo, sf.Queue),
			services.NewPaymentService(customerRepo, gateway)),
	}

	if sf.HTTP, err = app.New(cfg, sf.DB); err != nil {
		return nil, err
	}
	sf.HTTP.Routes(func(r *router.Router) {
		routes.RegisterAPI(r, ctrls, sf.Issuer)
	})
	return sf, nil
}

// Close stops queue workers and releases Redis and, unless it was passed
// in with WithDB, the database.
func (sf *Storefront) Close() {
	if sf.Queue != nil {
		sf.Queue.Stop()
	}
	if sf.Redis != nil {
		if err := sf.Redis.Close(); err != nil {
			logger.Warn("bootstrap: close redis", "error", err)
		}
	}
	if sf.ownDB && sf.DB != nil {
		if err := database.Close(sf.DB); err != nil {
			logger.Warn("bootstrap: close database", "error", err)
		}
	}
}
