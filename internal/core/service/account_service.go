package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fleetworks/account-service/internal/core/domain"
	"github.com/fleetworks/account-service/internal/core/ports"
)

// AccountAdminService implements the administrative lifecycle operations.
// It is the only writer of the approved flag. Administrators cannot
// deactivate or delete their own account, regardless of role.
type AccountAdminService struct {
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewAccountAdminService(accounts ports.AccountRepository, logger zerolog.Logger) *AccountAdminService {
	return &AccountAdminService{accounts: accounts, logger: logger}
}

// Get looks up an account by id. Administrative lookups may see unapproved
// and soft-deleted records.
func (s *AccountAdminService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.AdminFindByID(ctx, id)
}

// Update applies a partial update. Setting active=false on the caller's own
// account is rejected.
func (s *AccountAdminService) Update(ctx context.Context, actorID, id string, upd ports.AccountUpdate) (*domain.Account, error) {
	if actorID == id && upd.Active != nil && !*upd.Active {
		return nil, domain.ErrSelfAction
	}
	if upd.Role != nil && !domain.ValidRole(*upd.Role) {
		return nil, domain.ErrInvalidRole
	}

	if err := s.accounts.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	updated, err := s.accounts.AdminFindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", id).Str("actor_id", actorID).Msg("account updated")
	return updated, nil
}

// Delete soft-deletes an account: deleted=true, active=false. Irreversible
// through this service. Self-deletion is rejected.
func (s *AccountAdminService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrSelfAction
	}
	if err := s.accounts.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", id).Str("actor_id", actorID).Msg("account soft-deleted")
	return nil
}
