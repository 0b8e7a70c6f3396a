package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/internal/server"
)

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx, server.Options{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ShutdownTimeout: time.Second})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartReportsListenError(t *testing.T) {
	err := server.Start(context.Background(), server.Options{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server: listen")
}
