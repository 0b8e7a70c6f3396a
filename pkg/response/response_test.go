package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func fail(err error) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	response.Fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)
	return rec
}

func TestFail_MapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.New(apperr.EmailOrPasswordRequired), http.StatusBadRequest, "Email or password is required"},
		{fmt.Errorf("login: %w", apperr.New(apperr.InvalidCredentials)), http.StatusUnauthorized, "Invalid email or password"},
		{apperr.New(apperr.Unauthenticated), http.StatusUnauthorized, "Please login first"},
		{apperr.New(apperr.InvalidToken), http.StatusUnauthorized, "Invalid token"},
		{apperr.New(apperr.NotFound), http.StatusNotFound, "Data not found"},
		{apperr.Wrap(apperr.Upstream, errors.New("dial tcp: refused")), http.StatusBadGateway, "Upstream service error"},
		{errors.New("sql: database is closed"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		env := testkit.AssertStatus(t, fail(tc.err), tc.status)
		assert.Equal(t, tc.msg, env.Message)
	}
}

func TestFail_HidesCause(t *testing.T) {
	rec := fail(apperr.Wrap(apperr.Upstream, errors.New("server key SB-secret rejected")))
	assert.NotContains(t, rec.Body.String(), "SB-secret")
}

func TestFail_ValidationFields(t *testing.T) {
	env := testkit.AssertStatus(t, fail(apperr.Invalid(map[string]string{"email": "must be a valid email"})), http.StatusUnprocessableEntity)
	assert.Equal(t, "must be a valid email", env.Errors["email"])
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Paginated(rec, []string{"a", "b"}, orm.Pagination{Limit: 2, Offset: 2, Page: 2, TotalCount: 5, TotalPage: 3})

	env := testkit.AssertStatus(t, rec, http.StatusOK)
	var page struct {
		Items      []string       `json:"items"`
		Pagination orm.Pagination `json:"pagination"`
	}
	env.DataInto(t, &page)
	assert.Equal(t, []string{"a", "b"}, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPage)
}
