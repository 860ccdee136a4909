package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fleetworks/account-service/internal/core/service"
)

// AuthCookieName is the cookie carrying the bearer token.
const AuthCookieName = "auth-token"

// setAuthCookie attaches the bearer token as an HTTP-only, strict-same-site
// cookie. Secure is set only in production so local development over plain
// HTTP keeps working. Max-Age matches the token validity window (604800s).
func setAuthCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookie expires the auth cookie immediately.
func clearAuthCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
