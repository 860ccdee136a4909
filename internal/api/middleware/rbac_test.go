package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fleetworks/account-service/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...string) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	called := false
	handler := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code, called
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	code, called := runRBAC(t, domain.RoleAdmin, domain.RoleAdmin)
	if !called || code != http.StatusOK {
		t.Fatalf("expected admin to pass, got called=%v code=%d", called, code)
	}
}

func TestRBAC_RejectsOtherRoles(t *testing.T) {
	for _, role := range []string{domain.RoleUser, domain.RoleManager, ""} {
		code, called := runRBAC(t, role, domain.RoleAdmin)
		if called {
			t.Fatalf("role %q must not pass", role)
		}
		if code != http.StatusForbidden {
			t.Fatalf("expected 403 for role %q, got %d", role, code)
		}
	}
}
