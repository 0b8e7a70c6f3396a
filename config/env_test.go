package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(config.Options{
		JSONFile: filepath.Join(dir, "missing.json"),
		EnvFile:  filepath.Join(dir, "missing.env"),
		Environ:  map[string]string{"JWT_SECRET": "s3cret"},
	})
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "storefront.db", cfg.Database.DSN)
	assert.Equal(t, "358", cfg.RajaOngkir.Origin)
	assert.Equal(t, "jne", cfg.RajaOngkir.Courier)
	assert.Equal(t, 1000, cfg.RajaOngkir.Weight)
	assert.Equal(t, "https://api.rajaongkir.com/starter", cfg.RajaOngkir.BaseURL)
	assert.False(t, cfg.Midtrans.Production)
	assert.Equal(t, "memory", cfg.Queue.Driver)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := config.Load(config.Options{
		JSONFile: filepath.Join(dir, "missing.json"),
		EnvFile:  filepath.Join(dir, "missing.env"),
		Environ:  map[string]string{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	jsonFile := writeFile(t, dir, "app.json", `{"app_port": "9000", "db_driver": "postgres", "queue_workers": 7, "JWT_SECRET": "from-json"}`)
	envFile := writeFile(t, dir, ".env", "APP_PORT=9100\nMIDTRANS_SERVER_KEY='SB-Mid-server-xyz'\n")

	cfg, err := config.Load(config.Options{
		JSONFile: jsonFile,
		EnvFile:  envFile,
		Environ:  map[string]string{"APP_PORT": "9200"},
	})
	require.NoError(t, err)

	assert.Equal(t, "9200", cfg.App.Port, "process env wins")
	assert.Equal(t, "SB-Mid-server-xyz", cfg.Midtrans.ServerKey, ".env fills gaps")
	assert.Equal(t, "from-json", cfg.JWT.Secret, "app.json fills the rest")
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "dbname=storefront")
	assert.Equal(t, 2, cfg.Queue.Workers, "non-string JSON values are ignored")
}
