package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runWithRole(role interface{}, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	rec := runWithRole("LIBRARIAN", RequireRole("LIBRARIAN", "ADMIN"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	rec := runWithRole("CUSTOMER", RequireRole("LIBRARIAN", "ADMIN"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec := runWithRole(nil, RequireRole("LIBRARIAN"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsNonStringRole(t *testing.T) {
	rec := runWithRole(123, RequireRole("LIBRARIAN"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
