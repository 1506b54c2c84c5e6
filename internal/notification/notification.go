package notification

import (
	"context"
	"log"
	"time"
)

// Notifier defines the outbound email surface. Every send is best-effort:
// callers dispatch through Dispatch and never see a failure.
type Notifier interface {
	// SendWelcome greets a freshly registered account.
	SendWelcome(ctx context.Context, toEmail, name string) error

	// SendSuspension informs a user their account was suspended and why.
	SendSuspension(ctx context.Context, toEmail, name, reason string) error

	// SendReinstatement informs a user their account is active again.
	SendReinstatement(ctx context.Context, toEmail, name string) error

	// SendBootcampInvite invites a user to a scheduled bootcamp.
	SendBootcampInvite(ctx context.Context, toEmail, name, bootcampTitle string, startTime time.Time) error
}

// Timeout for a single detached send.
const dispatchTimeout = 30 * time.Second

// Dispatch runs a send in the background, decoupled from the triggering
// request. Failures are logged and swallowed; there is no retry and no
// queue.
func Dispatch(send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			log.Printf("WARN: notification send failed: %v", err)
		}
	}()
}

// logNotifier writes sends to the process log instead of delivering them.
// Used when mail is disabled (local development, tests).
type logNotifier struct{}

// NewLogNotifier returns a Notifier that only logs.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) SendWelcome(_ context.Context, toEmail, name string) error {
	log.Printf("INFO: [mail disabled] welcome -> %s (%s)", toEmail, name)
	return nil
}

func (logNotifier) SendSuspension(_ context.Context, toEmail, _ string, reason string) error {
	log.Printf("INFO: [mail disabled] suspension -> %s (reason: %s)", toEmail, reason)
	return nil
}

func (logNotifier) SendReinstatement(_ context.Context, toEmail, _ string) error {
	log.Printf("INFO: [mail disabled] reinstatement -> %s", toEmail)
	return nil
}

func (logNotifier) SendBootcampInvite(_ context.Context, toEmail, _ string, bootcampTitle string, startTime time.Time) error {
	log.Printf("INFO: [mail disabled] bootcamp invite -> %s (%s at %s)", toEmail, bootcampTitle, startTime.Format(time.RFC3339))
	return nil
}
