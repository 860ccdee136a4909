// Package metrics defines and registers all custom Prometheus metrics for
// the account service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// LoginsTotal counts authentication attempts.
// Labels:
//   - method: "password" or "otp"
//   - result: "ok", "invalid", "blocked", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// RegistrationsTotal counts accounts created through self-registration.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered accounts.",
	},
)

// TokenValidationFailures counts bearer tokens rejected by the auth
// middleware. Failure modes (malformed, bad signature, expired) collapse
// into one outcome, so there is no reason label.
var TokenValidationFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validation_failures_total",
		Help:      "Total number of bearer tokens rejected at the HTTP boundary.",
	},
)

// RateLimitedTotal counts requests rejected by the resend rate limiter.
// Label:
//   - operation: the throttled operation (currently only "resend_verification")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"operation"},
)

// EmailsSentTotal counts delivery attempts by the mail queue.
// Labels:
//   - kind: "verification", "otp", or "reset"
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of email delivery attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// MailQueueDepth tracks the number of jobs waiting in each mail worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of jobs pending in each mail dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
