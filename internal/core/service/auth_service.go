package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetworks/account-service/internal/core/domain"
	"github.com/fleetworks/account-service/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, both login factors, and the
// email-verification, password-reset and OTP token flows.
//
// Ordering discipline: account/token state is always persisted before any
// email is enqueued, and email delivery failures never roll back state or
// fail the request (store-then-notify).
type AuthService struct {
	accounts ports.AccountRepository
	issuer   *TokenIssuer
	auditor  *AuditService
	mail     ports.MailQueue
	baseURL  string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(accounts ports.AccountRepository, issuer *TokenIssuer, auditor *AuditService, mail ports.MailQueue, baseURL string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		issuer:   issuer,
		auditor:  auditor,
		mail:     mail,
		baseURL:  baseURL,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a pending account: active, but unapproved and unverified.
// A verification token is stored with the account and mailed afterwards.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.Account, error) {
	if email == "" || name == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	token, err := NewVerificationToken(now)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:             email,
		Name:              name,
		PasswordHash:      hash,
		Role:              domain.RoleUser,
		Active:            true,
		Approved:          false,
		EmailVerified:     false,
		VerificationToken: &token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.mail.Enqueue(verificationMail(created.Email, s.baseURL, token.Value))
	s.logger.Info().Str("account_id", created.ID).Msg("account registered")
	return created, nil
}

// Login authenticates by password. Unknown email and wrong password produce
// the same ErrInvalidCredentials; a blocked lifecycle gate produces the
// generic ErrAccountNotAllowed without revealing which flag blocked it.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !CheckPassword(password, account.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if account.GateError() != nil {
		return "", nil, domain.ErrAccountNotAllowed
	}

	return s.startSession(ctx, account, ip, userAgent)
}

// LoginWithOTP authenticates with a previously requested one-time code.
// Unlike password login, the specific blocking precondition is reported.
func (s *AuthService) LoginWithOTP(ctx context.Context, email, otp, ip, userAgent string) (string, *domain.Account, error) {
	if email == "" || otp == "" {
		return "", nil, domain.ErrTokenInvalid
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrTokenInvalid
		}
		return "", nil, err
	}

	now := s.now().UTC()
	if !account.ResetToken.Live(now) || account.ResetToken.Value != otp {
		return "", nil, domain.ErrTokenInvalid
	}
	if err := account.GateError(); err != nil {
		return "", nil, err
	}

	// Destructive read: a concurrent second consumer finds the slot already
	// cleared and fails with ErrTokenInvalid.
	if err := s.accounts.Update(ctx, account.ID, ports.AccountUpdate{ClearResetToken: true}); err != nil {
		return "", nil, err
	}
	account.ResetToken = nil

	return s.startSession(ctx, account, ip, userAgent)
}

// RequestOTP issues a 5-minute login code and mails it. Always succeeds from
// the caller's perspective; an unknown email writes nothing and sends nothing.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug().Str("email", email).Msg("otp requested for unknown account")
		return nil
	}

	otp, err := NewOTP(s.now().UTC())
	if err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, account.ID, ports.AccountUpdate{ResetToken: &otp}); err != nil {
		return err
	}

	s.mail.Enqueue(otpMail(account.Email, otp.Value))
	return nil
}

// VerifyEmail consumes a verification token, flipping email_verified. The
// approved flag is untouched; approval remains an administrator action.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrTokenInvalid
	}

	account, err := s.accounts.FindByVerificationToken(ctx, token)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if !account.VerificationToken.Live(s.now().UTC()) {
		return domain.ErrTokenInvalid
	}

	verified := true
	err = s.accounts.Update(ctx, account.ID, ports.AccountUpdate{
		EmailVerified:          &verified,
		ClearVerificationToken: true,
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("account_id", account.ID).Msg("email verified")
	return nil
}

// ResendVerification reissues the verification token, subject to the 60s
// per-account rate limit. Unknown or already-verified emails report success
// to avoid account enumeration. This is the only rate-limited resend flow.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug().Str("email", email).Msg("resend requested for unknown account")
		return nil
	}
	if account.EmailVerified {
		return nil
	}

	now := s.now().UTC()
	if !canResend(account.LastOTPRequestAt, now) {
		return domain.ErrRateLimited
	}

	token, err := NewVerificationToken(now)
	if err != nil {
		return err
	}
	// Token and rate-limit stamp move in one update.
	err = s.accounts.Update(ctx, account.ID, ports.AccountUpdate{
		VerificationToken: &token,
		LastOTPRequestAt:  &now,
	})
	if err != nil {
		return err
	}

	s.mail.Enqueue(verificationMail(account.Email, s.baseURL, token.Value))
	return nil
}

// ForgotPassword issues a 1-hour reset secret and mails a reset link. An
// unknown email writes nothing anywhere and still reports success.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug().Str("email", email).Msg("password reset requested for unknown account")
		return nil
	}

	token, err := NewResetToken(s.now().UTC())
	if err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, account.ID, ports.AccountUpdate{ResetToken: &token}); err != nil {
		return err
	}

	s.mail.Enqueue(resetMail(account.Email, s.baseURL, token.Value))
	return nil
}

// ResetPassword consumes a reset secret and replaces the password hash in a
// single update.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if !account.ResetToken.Live(s.now().UTC()) || account.ResetToken.Value != token {
		return domain.ErrTokenInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	err = s.accounts.Update(ctx, account.ID, ports.AccountUpdate{
		PasswordHash:    &hash,
		ClearResetToken: true,
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("account_id", account.ID).Msg("password reset")
	return nil
}

// ChangePassword replaces the password of an authenticated account after
// re-verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !CheckPassword(currentPassword, account.PasswordHash) {
		return domain.ErrWrongPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.Update(ctx, account.ID, ports.AccountUpdate{PasswordHash: &hash}); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", account.ID).Msg("password changed")
	return nil
}

// Logout closes the open login-history record. Best effort only; the cookie
// is cleared by the boundary regardless.
func (s *AuthService) Logout(ctx context.Context, accountID string) {
	s.auditor.RecordLogout(ctx, accountID)
}

// startSession issues the bearer token and records the login. Audit failures
// never fail the login.
func (s *AuthService) startSession(ctx context.Context, account *domain.Account, ip, userAgent string) (string, *domain.Account, error) {
	signed, err := s.issuer.Issue(account)
	if err != nil {
		return "", nil, err
	}
	s.auditor.RecordLogin(ctx, account.ID, ip, userAgent)
	s.logger.Info().Str("account_id", account.ID).Msg("login succeeded")
	return signed, account, nil
}
