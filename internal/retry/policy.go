package retry

import (
	"fmt"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"go.uber.org/zap"
)

// Action performs one delivery attempt and reports whether it succeeded.
type Action func() bool

// Policy runs an Action up to a fixed number of times, stopping at the first
// success. Attempts run back to back with no delay. A Policy holds no
// per-notification state and may be shared across services.
type Policy struct {
	maxAttempts int
	logger      *zap.Logger
}

func NewPolicy(maxAttempts int, logger *zap.Logger) (*Policy, error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts must be at least 1 (got %d)", domain.ErrValidation, maxAttempts)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Policy{
		maxAttempts: maxAttempts,
		logger:      logger,
	}, nil
}

func (p *Policy) MaxAttempts() int { return p.maxAttempts }

// Execute counts every attempt on n before invoking action.
func (p *Policy) Execute(n *domain.Notification, action Action) bool {
	if n == nil || action == nil {
		return false
	}

	for i := 0; i < p.maxAttempts; i++ {
		n.IncrementAttempt()
		p.logger.Info("delivery attempt",
			zap.String("notificationId", n.ID()),
			zap.Int("attempt", n.AttemptCount()),
			zap.Int("maxAttempts", p.maxAttempts),
		)
		if action() {
			return true
		}
	}

	return false
}

func (p *Policy) String() string {
	return fmt.Sprintf("RetryPolicy(max=%d)", p.maxAttempts)
}
