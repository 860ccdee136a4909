package ports

import (
	"context"
	"time"

	"github.com/fleetworks/account-service/internal/core/domain"
)

// AccountUpdate is a partial update: nil pointer fields are left unchanged.
// Token slots additionally distinguish "set" from "clear": a Clear* flag
// removes the stored token regardless of the corresponding pointer.
type AccountUpdate struct {
	Name          *string
	Role          *string
	PasswordHash  *string
	Active        *bool
	Approved      *bool
	EmailVerified *bool

	VerificationToken      *domain.TimedToken
	ClearVerificationToken bool
	ResetToken             *domain.TimedToken
	ClearResetToken        bool
	LastOTPRequestAt       *time.Time
}

// AccountRepository defines account persistence. Find* methods exclude
// soft-deleted records; AdminFindByID is the explicit administrative lookup
// that does not. Create surfaces the store's unique-email constraint as
// domain.ErrAccountExists.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.Account, error)
	AdminFindByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, upd AccountUpdate) error
	SoftDelete(ctx context.Context, id string) error
}
