package domain

import "time"

// LoginRecord captures a single successful login. Records are append-only:
// a row is opened when a bearer token is issued and closed on logout or when
// a newer login for the same account supersedes it.
type LoginRecord struct {
	ID                     string     `json:"id"`
	AccountID              string     `json:"account_id"`
	LoginAt                time.Time  `json:"login_at"`
	LogoutAt               *time.Time `json:"logout_at,omitempty"`
	IP                     string     `json:"ip"`
	UserAgent              string     `json:"user_agent"`
	Active                 bool       `json:"active"`
	SessionDurationSeconds int64      `json:"session_duration_seconds"`
}
