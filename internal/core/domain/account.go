package domain

import (
	"errors"
	"time"
)

// Roles assignable to an account.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountNotAllowed = errors.New("account is not permitted to sign in")
var ErrAccountDeactivated = errors.New("account is deactivated")
var ErrEmailNotVerified = errors.New("email address is not verified")
var ErrAccountNotApproved = errors.New("account is pending approval")
var ErrTokenInvalid = errors.New("invalid or expired token")
var ErrRateLimited = errors.New("too many requests, try again later")
var ErrWeakPassword = errors.New("password must be at least 8 characters")
var ErrInvalidRole = errors.New("unknown role")
var ErrWrongPassword = errors.New("current password is incorrect")
var ErrSelfAction = errors.New("administrators cannot deactivate or delete their own account")

// TimedToken pairs an opaque secret with its expiry. A nil *TimedToken means
// no token of that class is outstanding.
type TimedToken struct {
	Value     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Live reports whether the token exists and has not expired at now.
func (t *TimedToken) Live(now time.Time) bool {
	return t != nil && t.Value != "" && now.Before(t.ExpiresAt)
}

// Account models an identity record. Email is the unique, case-sensitive key.
//
// Lifecycle flags gate authentication: a login only succeeds when the account
// is active, approved, email-verified and not deleted. Deleted is terminal;
// soft-deleted accounts are excluded from every non-administrative lookup.
//
// At most one verification token and one OTP/reset token may be outstanding
// at a time; issuing a new one overwrites the previous value unconditionally.
type Account struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	PasswordHash  string `json:"-"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
	Approved      bool   `json:"approved"`
	EmailVerified bool   `json:"email_verified"`
	Deleted       bool   `json:"-"`

	VerificationToken *TimedToken `json:"-"`
	// ResetToken is shared by the password-reset flow (1h window) and the
	// OTP login flow (5m window); issuing either overwrites the other.
	ResetToken       *TimedToken `json:"-"`
	LastOTPRequestAt time.Time   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GateError returns the precondition blocking authentication, or nil when the
// account may sign in. Checks run in severity order: deactivation first, then
// email verification, then approval.
func (a *Account) GateError() error {
	switch {
	case a.Deleted, !a.Active:
		return ErrAccountDeactivated
	case !a.EmailVerified:
		return ErrEmailNotVerified
	case !a.Approved:
		return ErrAccountNotApproved
	}
	return nil
}
