package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.New(ctx, config.Storage{Disk: "local", LocalRoot: t.TempDir(), URL: "http://cdn.test/storage/"})
	require.NoError(t, err)

	ok, err := disk.Exists(ctx, "seed/catalog.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = disk.Get(ctx, "seed/catalog.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, disk.Put(ctx, "seed/catalog.json", []byte(`{"categories":[]}`)))
	ok, err = disk.Exists(ctx, "seed/catalog.json")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := disk.Get(ctx, "seed/catalog.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":[]}`, string(got))

	assert.Equal(t, "http://cdn.test/storage/products/kaos.jpg", disk.URL("/products/kaos.jpg"))
}

func TestLocalDiskRejectsEscape(t *testing.T) {
	disk, err := storage.New(context.Background(), config.Storage{LocalRoot: t.TempDir()})
	require.NoError(t, err)

	assert.Error(t, disk.Put(context.Background(), "../outside.txt", []byte("x")))
}

func TestS3Disk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && r.URL.Path == "/shop/seed/catalog.json" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctx := context.Background()
	disk, err := storage.New(ctx, config.Storage{
		Disk:       "s3",
		S3Bucket:   "shop",
		S3Region:   "ap-southeast-1",
		S3Key:      "key",
		S3Secret:   "secret",
		S3Endpoint: srv.URL,
	})
	require.NoError(t, err)

	ok, err := disk.Exists(ctx, "seed/catalog.json")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = disk.Exists(ctx, "seed/missing.json")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, "https://shop.s3.ap-southeast-1.amazonaws.com/products/kaos.jpg", disk.URL("products/kaos.jpg"))
}

func TestNewRejectsUnknownDisk(t *testing.T) {
	_, err := storage.New(context.Background(), config.Storage{Disk: "ftp"})
	assert.Error(t, err)

	_, err = storage.New(context.Background(), config.Storage{Disk: "s3"})
	assert.Error(t, err)
}
