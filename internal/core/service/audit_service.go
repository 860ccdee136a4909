package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetworks/account-service/internal/core/domain"
	"github.com/fleetworks/account-service/internal/core/ports"
)

// AuditService records login and logout events. Every method is best effort:
// failures are logged and swallowed so auditing can never block or fail
// authentication.
type AuditService struct {
	history  ports.LoginHistoryRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuditService(history ports.LoginHistoryRepository, sessions ports.SessionStore, logger zerolog.Logger) *AuditService {
	return &AuditService{
		history:  history,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordLogin opens a login-history record and refreshes the session marker.
// A still-open record for the same account is closed first: a new login
// supersedes the previous session.
func (s *AuditService) RecordLogin(ctx context.Context, accountID, ip, userAgent string) {
	now := s.now().UTC()

	if err := s.history.CloseOpen(ctx, accountID, now); err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("close superseded login record")
	}
	record := &domain.LoginRecord{
		AccountID: accountID,
		LoginAt:   now,
		IP:        ip,
		UserAgent: userAgent,
		Active:    true,
	}
	if err := s.history.Append(ctx, record); err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("append login record")
	}
	if err := s.sessions.Put(ctx, accountID, TokenTTL); err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("store session marker")
	}
}

// RecordLogout closes the most recent open record and drops the session
// marker.
func (s *AuditService) RecordLogout(ctx context.Context, accountID string) {
	if err := s.history.CloseOpen(ctx, accountID, s.now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("close login record")
	}
	if err := s.sessions.Drop(ctx, accountID); err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("drop session marker")
	}
}
