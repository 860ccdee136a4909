package ports

import (
	"context"

	"github.com/fleetworks/account-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Account, error)
	Login(ctx context.Context, email, password, ip, userAgent string) (string, *domain.Account, error)
	LoginWithOTP(ctx context.Context, email, otp, ip, userAgent string) (string, *domain.Account, error)
	RequestOTP(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	Logout(ctx context.Context, accountID string)
}

// AccountAdminService exposes the administrative lifecycle operations.
// This is the only path permitted to flip the approved flag.
type AccountAdminService interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, actorID, id string, upd AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, actorID, id string) error
}
