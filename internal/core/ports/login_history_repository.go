package ports

import (
	"context"
	"time"

	"github.com/fleetworks/account-service/internal/core/domain"
)

// LoginHistoryRepository persists the append-only login audit trail.
type LoginHistoryRepository interface {
	Append(ctx context.Context, record *domain.LoginRecord) error
	// CloseOpen closes the most recent open record for the account, stamping
	// the logout time and computed session duration. Closing when no record
	// is open is not an error.
	CloseOpen(ctx context.Context, accountID string, at time.Time) error
}

// SessionStore keeps a best-effort "currently signed in" marker per account,
// one keyed entry with an atomic upsert. Token validation never consults it.
type SessionStore interface {
	Put(ctx context.Context, accountID string, ttl time.Duration) error
	Drop(ctx context.Context, accountID string) error
}
