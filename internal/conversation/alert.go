package conversation

import "context"

// AlertResult reports the outcome of a best-effort admin alert.
type AlertResult struct {
	// Skipped is set when no admin is configured.
	Skipped bool
	Err     error
}

// Delivered reports whether the alert reached the admin.
func (r AlertResult) Delivered() bool {
	return !r.Skipped && r.Err == nil
}

// Alerter forwards incident reports to the bot admin.
type Alerter interface {
	Alert(ctx context.Context, text string) AlertResult
}

// Outbox delivers the replies of a single inbound event.
type Outbox interface {
	// Acknowledge answers the pending button press.
	Acknowledge() error
	Send(r Reply) error
	// Edit replaces the message carrying the pressed button.
	Edit(r Reply) error
}

// DeliveryCounter reports outbound send totals.
type DeliveryCounter interface {
	SentCount() uint64
	ErrorCount() uint64
}
