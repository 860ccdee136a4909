package service

import (
	"fmt"

	"github.com/fleetworks/account-service/internal/core/ports"
)

// Mail kinds, used as log/metric labels by the delivery queue.
const (
	MailKindVerification = "verification"
	MailKindOTP          = "otp"
	MailKindReset        = "reset"
)

func verificationMail(to, baseURL, token string) ports.MailJob {
	body := fmt.Sprintf(`
		<h2>Verify your email address</h2>
		<p>Thanks for registering. Click the link below to verify your email:</p>
		<p><a href="%s/auth/verify-email?token=%s">Verify email</a></p>
		<p>The link expires in 24 hours. If you did not register, ignore this email.</p>
	`, baseURL, token)
	return ports.MailJob{To: to, Subject: "Verify your email address", Body: body, Kind: MailKindVerification}
}

func otpMail(to, code string) ports.MailJob {
	body := fmt.Sprintf(`
		<h2>Your one-time login code</h2>
		<p>Use this code to sign in: <strong>%s</strong></p>
		<p>The code expires in 5 minutes. If you did not request it, ignore this email.</p>
	`, code)
	return ports.MailJob{To: to, Subject: "Your one-time login code", Body: body, Kind: MailKindOTP}
}

func resetMail(to, baseURL, token string) ports.MailJob {
	body := fmt.Sprintf(`
		<h2>Password reset requested</h2>
		<p>We received a request to reset the password for your account.</p>
		<p><a href="%s/auth/reset-password?token=%s">Reset password</a></p>
		<p>The link expires in 1 hour. If you did not request this change, ignore this email.</p>
	`, baseURL, token)
	return ports.MailJob{To: to, Subject: "Password reset request", Body: body, Kind: MailKindReset}
}
