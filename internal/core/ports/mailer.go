package ports

// Mailer delivers a single HTML email. Implementations must wrap transport
// failures into the returned error rather than panicking past the boundary.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// MailJob is one queued delivery. Kind labels the flow that produced the job
// (verification, otp, reset) for logging and metrics.
type MailJob struct {
	To      string
	Subject string
	Body    string
	Kind    string
}

// MailQueue accepts jobs for asynchronous delivery. Enqueue never blocks the
// caller beyond channel backpressure and never reports delivery failures.
// State is persisted before notification, and notification failures are only
// logged.
type MailQueue interface {
	Enqueue(job MailJob)
}
