package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shashiranjanraj/storefront/internal/client"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/cache"
)

// ShippingService proxies the courier API. Province and city lists are
// cached when a cache store is configured; costs never are.
type ShippingService struct {
	courier client.CourierClient
	cache   *cache.Store
	ttl     time.Duration
}

// NewShippingService builds the service. store may be nil.
func NewShippingService(courier client.CourierClient, store *cache.Store, ttl time.Duration) *ShippingService {
	return &ShippingService{courier: courier, cache: store, ttl: ttl}
}

func (s *ShippingService) Provinces(ctx context.Context) ([]client.Province, error) {
	var out []client.Province
	err := s.cache.Remember(ctx, cache.Key{Family: "rajaongkir:provinces"}, s.ttl, &out, func() (any, error) {
		return s.courier.Provinces(ctx)
	})
	return out, err
}

// Cities lists the cities of a province. The id is normalised first, so
// "0009" and "9" share one cache entry and one upstream call.
func (s *ShippingService) Cities(ctx context.Context, provinceID string) ([]client.City, error) {
	id, err := ParseID(provinceID)
	if err != nil {
		return nil, err
	}
	canonical := strconv.FormatUint(uint64(id), 10)

	var out []client.City
	err = s.cache.Remember(ctx, cache.Key{Family: "rajaongkir:cities", ID: canonical}, s.ttl, &out, func() (any, error) {
		return s.courier.Cities(ctx, canonical)
	})
	return out, err
}

// Cost returns the courier's cost response for a destination city id.
func (s *ShippingService) Cost(ctx context.Context, destination string) (json.RawMessage, error) {
	if destination == "" {
		return nil, apperr.Invalid(map[string]string{"destination": "is required"})
	}
	return s.courier.Cost(ctx, destination)
}
