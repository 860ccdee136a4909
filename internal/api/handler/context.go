package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetworks/account-service/internal/core/service"
)

// ctxClaims extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: their presence proves the
// middleware ran.
func ctxClaims(c echo.Context) (*service.Claims, error) {
	claims, _ := c.Get("claims").(*service.Claims)
	if claims == nil || claims.Subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
