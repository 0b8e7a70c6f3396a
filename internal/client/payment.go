// Package client holds the storefront's third-party API clients: the
// Midtrans Snap payment gateway and the RajaOngkir courier API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// ErrNoServerKey is returned when the gateway is used without a server key.
var ErrNoServerKey = errors.New("client: midtrans server key is not configured")

// PaymentRequest is what the storefront sends to the payment gateway.
type PaymentRequest struct {
	OrderID     string
	GrossAmount int64
	Email       string
	Name        string
}

// PaymentGateway creates a payment token for a transaction.
type PaymentGateway interface {
	CreateToken(ctx context.Context, req PaymentRequest) (*snap.Response, error)
}

type snapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type midtransGateway struct {
	snap snapCreator
}

// NewMidtrans builds a Snap gateway against the sandbox, or production when
// cfg.Production is set.
func NewMidtrans(cfg config.Midtrans) (PaymentGateway, error) {
	if cfg.ServerKey == "" {
		return nil, ErrNoServerKey
	}

	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	c := &snap.Client{}
	c.New(cfg.ServerKey, env)
	if cfg.Timeout > 0 {
		c.HttpClient = &midtrans.HttpClientImplementation{
			HttpClient: &http.Client{Timeout: cfg.Timeout},
			Logger:     midtrans.GetDefaultLogger(env),
		}
	}
	return &midtransGateway{snap: c}, nil
}

func (g *midtransGateway) CreateToken(ctx context.Context, req PaymentRequest) (*snap.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, merr := g.snap.CreateTransaction(&snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
			Email: req.Email,
		},
	})
	// merr must stay a concrete *midtrans.Error until checked against nil.
	if merr != nil {
		metrics.ObserveUpstream("midtrans", merr.StatusCode, start)
		return nil, apperr.Wrap(apperr.Upstream, fmt.Errorf("client: midtrans create transaction %s: %s (status %d)",
			req.OrderID, merr.Message, merr.StatusCode))
	}
	metrics.ObserveUpstream("midtrans", http.StatusOK, start)
	return resp, nil
}

type disabledGateway struct{}

// DisabledGateway fails every request as Upstream. It stands in when no
// server key is configured so the rest of the API can still start.
func DisabledGateway() PaymentGateway { return disabledGateway{} }

func (disabledGateway) CreateToken(context.Context, PaymentRequest) (*snap.Response, error) {
	return nil, apperr.Wrap(apperr.Upstream, ErrNoServerKey)
}
