package service

import (
	"testing"
	"time"
)

func TestNewVerificationToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := NewVerificationToken(now)
	if err != nil {
		t.Fatalf("NewVerificationToken: %v", err)
	}
	if len(tok.Value) != tokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", tokenBytes*2, len(tok.Value))
	}
	if !tok.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got %v", tok.ExpiresAt)
	}

	other, err := NewVerificationToken(now)
	if err != nil {
		t.Fatalf("second token: %v", err)
	}
	if tok.Value == other.Value {
		t.Fatalf("two tokens must not collide")
	}
}

func TestResetAndOTPWindowsAreDistinct(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	reset, err := NewResetToken(now)
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if !reset.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("reset tokens expire in 1 hour, got %v", reset.ExpiresAt)
	}

	otp, err := NewOTP(now)
	if err != nil {
		t.Fatalf("NewOTP: %v", err)
	}
	if !otp.ExpiresAt.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("otp codes expire in 5 minutes, got %v", otp.ExpiresAt)
	}
}

func TestNewOTP_Format(t *testing.T) {
	now := time.Now().UTC()
	for i := 0; i < 20; i++ {
		otp, err := NewOTP(now)
		if err != nil {
			t.Fatalf("NewOTP: %v", err)
		}
		if len(otp.Value) != 6 {
			t.Fatalf("expected 6-digit code, got %q", otp.Value)
		}
		for _, r := range otp.Value {
			if r < '0' || r > '9' {
				t.Fatalf("expected numeric code, got %q", otp.Value)
			}
		}
	}
}

func TestTimedTokenLive(t *testing.T) {
	now := time.Now().UTC()

	tok, err := NewOTP(now)
	if err != nil {
		t.Fatalf("NewOTP: %v", err)
	}
	if !tok.Live(now) {
		t.Fatalf("fresh token must be live")
	}
	if tok.Live(now.Add(6 * time.Minute)) {
		t.Fatalf("token past expiry must not be live")
	}
}

func TestCanResend(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if !canResend(time.Time{}, now) {
		t.Fatalf("no prior request must allow resend")
	}
	if canResend(now.Add(-30*time.Second), now) {
		t.Fatalf("resend within 60s must be blocked")
	}
	if canResend(now.Add(-59*time.Second), now) {
		t.Fatalf("resend at 59s must be blocked")
	}
	if !canResend(now.Add(-60*time.Second), now) {
		t.Fatalf("resend at exactly 60s must be allowed")
	}
	if !canResend(now.Add(-2*time.Minute), now) {
		t.Fatalf("resend after the interval must be allowed")
	}
}
