package service

import (
	"context"
	"fmt"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/notifier"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
	"github.com/kursadbilgin/notification-dispatch/internal/retry"
	"go.uber.org/zap"
)

// RetryPolicy repeats a delivery action for one notification.
type RetryPolicy interface {
	Execute(n *domain.Notification, action retry.Action) bool
	String() string
}

// NotificationService delivers notifications through one notifier, delegating
// the attempt loop to a retry policy. Both collaborators may be shared with
// other services.
type NotificationService struct {
	notifier notifier.Notifier
	policy   RetryPolicy
	logger   *zap.Logger
	metrics  *observability.Metrics
}

func NewNotificationService(
	n notifier.Notifier,
	policy RetryPolicy,
	logger *zap.Logger,
) (*NotificationService, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: notifier is required", domain.ErrValidation)
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: retry policy is required", domain.ErrValidation)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NotificationService{
		notifier: n,
		policy:   policy,
		logger:   logger,
	}, nil
}

func (s *NotificationService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// Send attempts delivery of n and moves it to SENT or FAILED. A delivery
// failure is reported through n's status, not the returned error; errors
// only signal misuse, such as passing a notification that is not pending.
// A notification that is already SENT or FAILED is rejected before any
// attempt is made, so its attempt count stays unchanged.
func (s *NotificationService) Send(ctx context.Context, n *domain.Notification) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if n == nil {
		return fmt.Errorf("%w: notification is required", domain.ErrValidation)
	}
	if n.Status() != domain.StatusPending {
		return fmt.Errorf("%w: notification %s is already %s", domain.ErrInvalidTransition, n.ID(), n.Status())
	}

	name := s.notifier.Name()
	logger := observability.DeliveryLogger(s.logger, ctx, n.ID(), name)
	logger.Info("sending notification", zap.String("policy", s.policy.String()))

	delivered := s.policy.Execute(n, func() bool {
		accepted := s.notifier.Send(n.Recipient(), n.Message())
		s.metrics.IncDeliveryAttempt(name, accepted)
		return accepted
	})
	s.metrics.ObserveAttempts(name, n.AttemptCount())

	if delivered {
		if err := n.MarkSent(); err != nil {
			return fmt.Errorf("failed to mark notification as sent: %w", err)
		}
		s.metrics.IncNotificationSent(name)
	} else {
		if err := n.MarkFailed(); err != nil {
			return fmt.Errorf("failed to mark notification as failed: %w", err)
		}
		s.metrics.IncNotificationFailed(name, observability.ReasonRetryExhausted)
	}

	logger.Info("notification finalized",
		zap.String("status", n.Status().String()),
		zap.Int("attempts", n.AttemptCount()),
		zap.Stringer("record", n),
	)

	return nil
}
