package notifier

import "go.uber.org/zap"

// Notifier is a delivery channel. Send reports whether the channel accepted
// the message; a rejection is a normal result, not an error.
type Notifier interface {
	Name() string
	Send(recipient, message string) bool
}

// named carries the state every notifier shares: its name and a logger whose
// entries are prefixed with that name.
type named struct {
	name   string
	logger *zap.Logger
}

func newNamed(name string, logger *zap.Logger) named {
	if logger == nil {
		logger = zap.NewNop()
	}
	return named{name: name, logger: logger.Named(name)}
}

func (n named) Name() string { return n.name }

func (n named) logOutcome(accepted bool, reason string) {
	if accepted {
		n.logger.Info("delivery accepted")
		return
	}
	n.logger.Warn("delivery rejected", zap.String("reason", reason))
}
