package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetworks/account-service/internal/core/ports"
)

// AdminHandler exposes the administrative account lifecycle operations.
// Routes are mounted behind the Auth and RBAC(admin) middleware.
type AdminHandler struct {
	admin ports.AccountAdminService
}

func NewAdminHandler(admin ports.AccountAdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// adminUpdateRequest mirrors ports.AccountUpdate: absent fields are left
// unchanged, clear flags drop the stored token.
type adminUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Role          *string `json:"role,omitempty"`
	Active        *bool   `json:"active,omitempty"`
	Approved      *bool   `json:"approved,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`

	ClearVerificationToken bool `json:"clear_verification_token,omitempty"`
	ClearResetToken        bool `json:"clear_reset_token,omitempty"`
}

// Get returns an account by id, including unapproved and soft-deleted ones.
//
// @Summary      Fetch an account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  errorResponse
// @Router       /admin/accounts/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	account, err := h.admin.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update applies a partial update to an account. The only path that may set
// the approved flag.
//
// @Summary      Update an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Account id"
// @Param        body  body      adminUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Account
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/accounts/{id} [patch]
func (h *AdminHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	upd := ports.AccountUpdate{
		Name:                   req.Name,
		Role:                   req.Role,
		Active:                 req.Active,
		Approved:               req.Approved,
		EmailVerified:          req.EmailVerified,
		ClearVerificationToken: req.ClearVerificationToken,
		ClearResetToken:        req.ClearResetToken,
	}

	account, err := h.admin.Update(c.Request().Context(), claims.Subject, c.Param("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete soft-deletes an account.
//
// @Summary      Soft-delete an account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/accounts/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.admin.Delete(c.Request().Context(), claims.Subject, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}
