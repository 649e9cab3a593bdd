package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a notification.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusFailed
}

func ParseStatusFromString(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid status %q", ErrValidation, s)
	}
	return st, nil
}

// Notification is a single message waiting to be delivered to one recipient.
//
// Status only moves PENDING -> SENT or PENDING -> FAILED, and only through
// MarkSent/MarkFailed. The zero value is not usable; call NewNotification.
// A Notification is not safe for concurrent use.
type Notification struct {
	id           string
	recipient    string
	message      string
	status       Status
	attemptCount int
}

func NewNotification(recipient, message string) *Notification {
	return &Notification{
		id:        uuid.NewString(),
		recipient: recipient,
		message:   message,
		status:    StatusPending,
	}
}

func (n *Notification) ID() string        { return n.id }
func (n *Notification) Recipient() string { return n.recipient }
func (n *Notification) Message() string   { return n.message }
func (n *Notification) Status() Status    { return n.status }
func (n *Notification) AttemptCount() int { return n.attemptCount }

func (n *Notification) MarkSent() error {
	return n.transitionTo(StatusSent)
}

func (n *Notification) MarkFailed() error {
	return n.transitionTo(StatusFailed)
}

// IncrementAttempt records one delivery attempt. It does not look at the
// status, so it keeps counting after a terminal state.
func (n *Notification) IncrementAttempt() {
	n.attemptCount++
}

func (n *Notification) transitionTo(next Status) error {
	if n.status != StatusPending {
		return fmt.Errorf("%w: cannot move notification from %s to %s", ErrInvalidTransition, n.status, next)
	}
	n.status = next
	return nil
}

func (n *Notification) String() string {
	return fmt.Sprintf(`[%s] To:%s "%s" (attempts:%d)`, n.status, n.recipient, n.message, n.attemptCount)
}
