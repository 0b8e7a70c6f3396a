package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func TestParamAndQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/detail/{id}", appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]string{
			"id":   c.Param("id"),
			"size": c.Query("page.size"),
		})
	}))

	env := testkit.AssertStatus(t, testkit.Do(t, r, http.MethodGet, "/detail/7?page.size=5", ""), http.StatusOK)
	var data map[string]string
	env.DataInto(t, &data)
	assert.Equal(t, "7", data["id"])
	assert.Equal(t, "5", data["size"])
}

func TestBindJSON(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"required,email"`
	}

	h := appctx.Wrap(func(c *appctx.Context) {
		var in input
		if err := c.BindJSON(&in); err != nil {
			c.Fail(err)
			return
		}
		c.Created("ok", in)
	})

	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/", `{"email":"a@b.co"}`), http.StatusCreated)

	env := testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/", `{"email":"nope"}`), http.StatusUnprocessableEntity)
	assert.Contains(t, env.Errors, "email")

	testkit.AssertStatus(t, testkit.Do(t, h, http.MethodPost, "/", `{`), http.StatusBadRequest)
}

func TestFailRecordsStatus(t *testing.T) {
	var status int
	h := appctx.Wrap(func(c *appctx.Context) {
		c.Fail(apperr.New(apperr.NotFound))
		status = c.WrittenStatus()
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{ID: 3, Email: "a@b.co"}))

	appctx.Wrap(func(c *appctx.Context) {
		id, ok := c.Identity()
		require.True(t, ok)
		assert.Equal(t, uint(3), id.ID)
		c.Success(nil)
	})(httptest.NewRecorder(), req)
}

func TestClientIPIgnoresForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5123"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("X-Real-Ip", "203.0.113.8")
	assert.Equal(t, "10.0.0.9", appctx.ClientIP(req))

	req = req.WithContext(appctx.WithClientIP(req.Context(), "198.51.100.4"))
	assert.Equal(t, "198.51.100.4", appctx.ClientIP(req))

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", appctx.RemoteHost(req))
}

func TestBindJSONUsesRequestBodyLimit(t *testing.T) {
	h := appctx.Wrap(func(c *appctx.Context) {
		var in map[string]string
		if err := c.BindJSON(&in); err != nil {
			c.Fail(err)
			return
		}
		c.Success(in)
	})

	body := `{"name":"` + strings.Repeat("a", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = req.WithContext(appctx.WithBodyLimit(req.Context(), 16))
	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
