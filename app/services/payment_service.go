package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/internal/client"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

// Transaction ids are "TRANSACTION" followed by seven random digits.
const (
	txMin = 1000000
	txMax = 9999999
)

// PaymentService requests payment tokens from the gateway.
type PaymentService struct {
	customers *repositories.CustomerRepository
	gateway   client.PaymentGateway
	intN      func(n int) int
}

func NewPaymentService(customers *repositories.CustomerRepository, gateway client.PaymentGateway) *PaymentService {
	return &PaymentService{customers: customers, gateway: gateway, intN: rand.IntN}
}

// WithRand replaces the random source used for transaction ids.
func (s *PaymentService) WithRand(intN func(n int) int) *PaymentService {
	s.intN = intN
	return s
}

// TransactionID returns a new gateway order id.
func (s *PaymentService) TransactionID() string {
	return fmt.Sprintf("TRANSACTION%d", txMin+s.intN(txMax-txMin+1))
}

// RequestToken asks the gateway for a payment token for cost, charged to
// customerID. Fractional amounts are rounded to whole rupiah.
func (s *PaymentService) RequestToken(ctx context.Context, customerID uint, cost string) (*snap.Response, error) {
	amount, err := decimal.NewFromString(cost)
	if err != nil || !amount.IsPositive() {
		return nil, apperr.Invalid(map[string]string{"cost": "must be a positive amount"})
	}
	gross := amount.Round(0)
	if !gross.IsPositive() {
		return nil, apperr.Invalid(map[string]string{"cost": "must be a positive amount"})
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.gateway.CreateToken(ctx, client.PaymentRequest{
		OrderID:     s.TransactionID(),
		GrossAmount: gross.IntPart(),
		Email:       customer.Email,
		Name:        customer.Name,
	})
}
