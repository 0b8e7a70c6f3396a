package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("service: login: %w", apperr.New(apperr.InvalidCredentials))
	assert.Equal(t, apperr.InvalidCredentials, apperr.KindOf(wrapped))
	assert.Equal(t, apperr.Internal, apperr.KindOf(errors.New("boom")))
}

func TestIsMatchesKind(t *testing.T) {
	err := apperr.Wrap(apperr.Upstream, errors.New("timeout"))
	assert.True(t, errors.Is(err, apperr.New(apperr.Upstream)))
	assert.False(t, errors.Is(err, apperr.New(apperr.NotFound)))
	assert.Nil(t, apperr.Wrap(apperr.Upstream, nil))
}

func TestStatusAndMessage(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apperr.NotFound.Status())
	assert.Equal(t, "ErrorNotFound", apperr.NotFound.String())
	assert.Equal(t, http.StatusUnauthorized, apperr.InvalidToken.Status())
	assert.Equal(t, apperr.InvalidCredentials.Message(), "Invalid email or password")
}
