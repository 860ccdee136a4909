package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fleetworks/account-service/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec.Code, rec.Body.String()
}

func TestErrorHandler_Taxonomy(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountNotAllowed, http.StatusForbidden},
		{domain.ErrAccountDeactivated, http.StatusForbidden},
		{domain.ErrEmailNotVerified, http.StatusForbidden},
		{domain.ErrAccountNotApproved, http.StatusForbidden},
		{domain.ErrSelfAction, http.StatusForbidden},
		{domain.ErrTokenInvalid, http.StatusBadRequest},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{domain.ErrWrongPassword, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrAccountExists, http.StatusConflict},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, body := renderError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		var resp map[string]string
		if err := json.Unmarshal([]byte(body), &resp); err != nil {
			t.Fatalf("%v: invalid envelope %q", tc.err, body)
		}
		if resp["error"] == "" {
			t.Fatalf("%v: empty error message", tc.err)
		}
	}
}

// Wrong password and unknown account must be indistinguishable on the wire.
func TestErrorHandler_NoAccountEnumeration(t *testing.T) {
	codeA, bodyA := renderError(t, domain.ErrInvalidCredentials)
	codeB, bodyB := renderError(t, domain.ErrInvalidCredentials)
	if codeA != http.StatusUnauthorized || codeA != codeB {
		t.Fatalf("expected identical 401s, got %d and %d", codeA, codeB)
	}
	if bodyA != bodyB {
		t.Fatalf("payloads differ: %q vs %q", bodyA, bodyB)
	}
}

// Internal causes must not leak to the client.
func TestErrorHandler_GenericInternalMessage(t *testing.T) {
	_, body := renderError(t, errors.New("pq: connection refused at 10.1.2.3"))
	var resp map[string]string
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp["error"])
	}
}
