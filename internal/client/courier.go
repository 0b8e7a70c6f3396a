package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/http"
)

// Province is a RajaOngkir province.
type Province struct {
	ProvinceID string `json:"province_id"`
	Province   string `json:"province"`
}

// City is a RajaOngkir city or regency.
type City struct {
	CityID     string `json:"city_id"`
	ProvinceID string `json:"province_id"`
	Province   string `json:"province"`
	Type       string `json:"type"`
	CityName   string `json:"city_name"`
	PostalCode string `json:"postal_code"`
}

// CourierClient looks up shipping regions and costs.
type CourierClient interface {
	Provinces(ctx context.Context) ([]Province, error)
	Cities(ctx context.Context, provinceID string) ([]City, error)
	// Cost returns the courier's response body unmodified.
	Cost(ctx context.Context, destination string) (json.RawMessage, error)
}

type rajaOngkir struct {
	http    *http.Client
	origin  string
	courier string
	weight  int
}

// NewRajaOngkir builds a RajaOngkir client. Requests are sent once, with
// the configured timeout and the API key in the "key" header.
func NewRajaOngkir(cfg config.RajaOngkir) CourierClient {
	return &rajaOngkir{
		http: http.NewClient("rajaongkir", cfg.BaseURL).
			WithHeader("key", cfg.APIKey).
			WithTimeout(cfg.Timeout),
		origin:  cfg.Origin,
		courier: cfg.Courier,
		weight:  cfg.Weight,
	}
}

type rajaOngkirStatus struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type rajaOngkirBody[T any] struct {
	RajaOngkir struct {
		Status  rajaOngkirStatus `json:"status"`
		Results T                `json:"results"`
	} `json:"rajaongkir"`
}

func (c *rajaOngkir) Provinces(ctx context.Context) ([]Province, error) {
	var body rajaOngkirBody[[]Province]
	if _, err := c.fetch(c.http.Get("/province").WithContext(ctx), "province", &body); err != nil {
		return nil, err
	}
	if err := check("province", body.RajaOngkir.Status); err != nil {
		return nil, err
	}
	return body.RajaOngkir.Results, nil
}

func (c *rajaOngkir) Cities(ctx context.Context, provinceID string) ([]City, error) {
	var body rajaOngkirBody[[]City]
	req := c.http.Get("/city").Query("province", provinceID).WithContext(ctx)
	if _, err := c.fetch(req, "city", &body); err != nil {
		return nil, err
	}
	if err := check("city", body.RajaOngkir.Status); err != nil {
		return nil, err
	}
	return body.RajaOngkir.Results, nil
}

func (c *rajaOngkir) Cost(ctx context.Context, destination string) (json.RawMessage, error) {
	req := c.http.Post("/cost").
		Body(map[string]any{
			"origin":      c.origin,
			"destination": destination,
			"weight":      c.weight,
			"courier":     c.courier,
		}).
		WithContext(ctx)

	var body rajaOngkirBody[json.RawMessage]
	resp, err := c.fetch(req, "cost", &body)
	if err != nil {
		return nil, err
	}
	if err := check("cost", body.RajaOngkir.Status); err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Raw), nil
}

// fetch sends req and decodes the body. RajaOngkir reports failures in
// rajaongkir.status even on non-2xx responses, so the body is decoded first
// and the HTTP status is only used when it cannot be.
func (c *rajaOngkir) fetch(req *http.Request, op string, dest any) (*http.Response, error) {
	resp, err := req.Send()
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, fmt.Errorf("client: rajaongkir %s: %w", op, err))
	}
	if err := resp.JSON(dest); err != nil {
		if thrown := resp.Throw(); thrown != nil {
			err = thrown
		}
		return nil, apperr.Wrap(apperr.Upstream, fmt.Errorf("client: rajaongkir %s: %w", op, err))
	}
	return resp, nil
}

func check(op string, s rajaOngkirStatus) error {
	if s.Code == 200 {
		return nil
	}
	return apperr.Wrap(apperr.Upstream, fmt.Errorf("client: rajaongkir %s: status %d: %s", op, s.Code, s.Description))
}
