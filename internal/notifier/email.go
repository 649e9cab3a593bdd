package notifier

import (
	"fmt"
	"strings"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

const EmailName = "email"

var _ Notifier = (*EmailNotifier)(nil)

// EmailNotifier simulates SMTP delivery. No connection is made; an address
// is accepted when it contains "@".
type EmailNotifier struct {
	named
	smtpServer string
}

func NewEmailNotifier(smtpServer string, logger *zap.Logger) (*EmailNotifier, error) {
	server := strings.TrimSpace(smtpServer)
	if server == "" {
		return nil, fmt.Errorf("%w: smtp server is required", domain.ErrValidation)
	}

	return &EmailNotifier{
		named:      newNamed(EmailName, logger),
		smtpServer: server,
	}, nil
}

func (e *EmailNotifier) SMTPServer() string { return e.smtpServer }

func (e *EmailNotifier) Send(recipient, message string) bool {
	e.logger.Info("smtp transmission",
		zap.String("server", e.smtpServer),
		zap.String("recipient", recipient),
		zap.String("message", message),
	)

	accepted := strings.Contains(recipient, "@")
	e.logOutcome(accepted, "invalid address")
	return accepted
}
