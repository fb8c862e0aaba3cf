// Package notify sends optional out-of-band confirmations when the assistant
// commits a calendar event.
package notify

import (
	"context"
	"fmt"
)

// Notifier delivers a scheduled-event confirmation to a recipient.
type Notifier interface {
	// Send delivers a confirmation message to the specified recipient
	Send(ctx context.Context, recipient, subject, body string) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}

// Service fans a confirmation out to the configured notifier. A nil service
// or an unconfigured notifier is a no-op; confirmations never fail a turn.
type Service struct {
	email     Notifier
	recipient string
}

// NewService creates a notification service.
func NewService(email Notifier, recipient string) *Service {
	return &Service{email: email, recipient: recipient}
}

// NotifyEventScheduled sends a confirmation for a freshly committed event.
func (s *Service) NotifyEventScheduled(ctx context.Context, summary, date, startTime, endTime string) {
	if s == nil || s.email == nil || !s.email.IsConfigured() || s.recipient == "" {
		return
	}

	subject := "Event scheduled: " + summary
	body := summary + " on " + date + " from " + startTime + " to " + endTime + "."
	if err := s.email.Send(ctx, s.recipient, subject, body); err != nil {
		// Log-only: the event itself was committed.
		fmt.Printf("Warning: failed to send confirmation email: %v\n", err)
	}
}
