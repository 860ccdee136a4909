package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/fleetworks/account-service/internal/core/domain"
)

// The two short-lived windows are deliberately distinct constants tied to
// their flows; they must not be merged.
const (
	// VerificationTokenTTL bounds email-verification tokens.
	VerificationTokenTTL = 24 * time.Hour
	// ResetTokenTTL bounds password-reset secrets.
	ResetTokenTTL = time.Hour
	// OTPTokenTTL bounds numeric one-time login codes.
	OTPTokenTTL = 5 * time.Minute

	// resendInterval is the minimum gap between verification-email resends.
	resendInterval = 60 * time.Second

	tokenBytes = 16 // 128 bits of entropy
)

// NewVerificationToken returns a fresh email-verification token expiring
// VerificationTokenTTL after now.
func NewVerificationToken(now time.Time) (domain.TimedToken, error) {
	value, err := randomHex(tokenBytes)
	if err != nil {
		return domain.TimedToken{}, err
	}
	return domain.TimedToken{Value: value, ExpiresAt: now.Add(VerificationTokenTTL)}, nil
}

// NewResetToken returns a fresh password-reset secret expiring ResetTokenTTL
// after now.
func NewResetToken(now time.Time) (domain.TimedToken, error) {
	value, err := randomHex(tokenBytes)
	if err != nil {
		return domain.TimedToken{}, err
	}
	return domain.TimedToken{Value: value, ExpiresAt: now.Add(ResetTokenTTL)}, nil
}

// NewOTP returns a fresh 6-digit one-time code expiring OTPTokenTTL after now.
func NewOTP(now time.Time) (domain.TimedToken, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return domain.TimedToken{}, fmt.Errorf("generate otp: %w", err)
	}
	return domain.TimedToken{
		Value:     fmt.Sprintf("%06d", n.Int64()),
		ExpiresAt: now.Add(OTPTokenTTL),
	}, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// canResend reports whether enough time has passed since the last resend
// request. The caller updates the stamp atomically with the reissue.
func canResend(last, now time.Time) bool {
	return last.IsZero() || now.Sub(last) >= resendInterval
}
