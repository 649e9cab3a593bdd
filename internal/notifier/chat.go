package notifier

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

const ChatName = "chat"

var _ Notifier = (*ChatNotifier)(nil)

// ChatNotifier simulates posting to a chat webhook. The webhook is never
// called; a recipient is accepted when it is a channel name starting with "#".
type ChatNotifier struct {
	named
	webhookURL string
}

func NewChatNotifier(webhookURL string, logger *zap.Logger) (*ChatNotifier, error) {
	endpoint := strings.TrimSpace(webhookURL)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: webhook url is required", domain.ErrValidation)
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("%w: invalid webhook url: %v", domain.ErrValidation, err)
	}

	return &ChatNotifier{
		named:      newNamed(ChatName, logger),
		webhookURL: endpoint,
	}, nil
}

func (c *ChatNotifier) WebhookURL() string { return c.webhookURL }

func (c *ChatNotifier) Send(recipient, message string) bool {
	c.logger.Info("webhook post",
		zap.String("webhook", c.webhookURL),
		zap.String("channel", recipient),
		zap.String("message", message),
	)

	accepted := strings.HasPrefix(recipient, "#")
	c.logOutcome(accepted, "invalid channel name")
	return accepted
}
