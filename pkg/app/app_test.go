package app_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTP{RateLimit: 0, CORSOrigins: []string{"*"}, MaxBodyBytes: 1024},
	}
}

func newApp(t *testing.T, cfg *config.Config, db *gorm.DB) *app.Application {
	t.Helper()
	a, err := app.New(cfg, db)
	require.NoError(t, err)
	return a
}

func TestHealthz(t *testing.T) {
	db := testkit.NewDB(t)
	h := newApp(t, testConfig(), db).Handler()

	env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/healthz", ""), http.StatusOK)
	var body map[string]string
	env.DataInto(t, &body)
	assert.Equal(t, "ok", body["status"])

	require.NoError(t, database.Close(db))
	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/healthz", ""), http.StatusServiceUnavailable)
}

func TestNotFoundAndMethodNotAllowedUseEnvelope(t *testing.T) {
	h := newApp(t, testConfig(), nil).Routes(func(r *router.Router) {
		r.Get("/ping", "ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	}).Handler()

	env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/nope", ""), http.StatusNotFound)
	assert.Equal(t, "Data not found", env.Message)

	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/ping", ""), http.StatusMethodNotAllowed)
}

func TestMiddlewareStack(t *testing.T) {
	h := newApp(t, testConfig(), nil).Routes(func(r *router.Router) {
		r.Get("/boom", "boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	}).Handler()

	rec := testkit.Do(t, h, http.MethodGet, "/boom", "", testkit.Header("Origin", "http://shop.test"))
	testkit.AssertStatus(t, rec, http.StatusInternalServerError)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = testkit.Do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = 1
	h := newApp(t, cfg, nil).Handler()

	assert.Equal(t, http.StatusOK, testkit.Do(t, h, http.MethodGet, "/healthz", "").Code)
	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/healthz", ""), http.StatusTooManyRequests)
}

func TestRoutesListed(t *testing.T) {
	r := newApp(t, testConfig(), nil).Router()
	var names []string
	for _, ri := range r.Routes() {
		names = append(names, ri.Name)
	}
	assert.Contains(t, names, "health")
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = 1
	h := newApp(t, cfg, nil).Handler()

	assert.Equal(t, http.StatusOK, testkit.Do(t, h, http.MethodGet, "/healthz", "",
		testkit.Header("X-Forwarded-For", "203.0.113.1")).Code)
	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/healthz", "",
		testkit.Header("X-Forwarded-For", "203.0.113.2")), http.StatusTooManyRequests)
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = 1
	cfg.HTTP.TrustedProxies = []string{"192.0.2.0/24"} // httptest's RemoteAddr
	h := newApp(t, cfg, nil).Handler()

	for _, client := range []string{"203.0.113.1", "203.0.113.2"} {
		assert.Equal(t, http.StatusOK, testkit.Do(t, h, http.MethodGet, "/healthz", "",
			testkit.Header("X-Forwarded-For", client)).Code)
	}
	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodGet, "/healthz", "",
		testkit.Header("X-Forwarded-For", "203.0.113.1")), http.StatusTooManyRequests)
}

func TestNewRejectsBadTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.TrustedProxies = []string{"not-an-ip"}
	_, err := app.New(cfg, nil)
	assert.ErrorContains(t, err, "not-an-ip")
}

func TestBodyLimitFromConfig(t *testing.T) {
	h := newApp(t, testConfig(), nil).Routes(func(r *router.Router) {
		r.Post("/echo", "echo", appctx.Wrap(func(c *appctx.Context) {
			var in map[string]string
			if err := c.BindJSON(&in); err != nil {
				c.Fail(err)
				return
			}
			c.Success(in)
		}))
	}).Handler()

	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/echo", `{"name":"Budi"}`), http.StatusOK)

	big := `{"name":"` + strings.Repeat("a", 2048) + `"}`
	env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/echo", big), http.StatusBadRequest)
	assert.Contains(t, env.Message, "max 1024 bytes")
}
