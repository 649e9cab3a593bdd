// Package demo runs the scripted delivery scenarios and prints their progress
// to a line-oriented writer.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/kursadbilgin/notification-dispatch/internal/config"
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/notifier"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
	"github.com/kursadbilgin/notification-dispatch/internal/retry"
	"github.com/kursadbilgin/notification-dispatch/internal/service"
	"go.uber.org/zap"
)

// ScenarioResult is the final state of one delivery scenario.
type ScenarioResult struct {
	Name      string
	Notifier  string
	Recipient string
	Status    domain.Status
	Attempts  int
}

type Summary struct {
	RunID           string
	Scenarios       []ScenarioResult
	TransitionError string
	Totals          observability.Totals
}

type Runner struct {
	out     io.Writer
	logger  *zap.Logger
	metrics *observability.Metrics
	email   *notifier.EmailNotifier
	chat    *notifier.ChatNotifier
	policy  *retry.Policy
}

func NewRunner(out io.Writer, cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	if out == nil {
		return nil, fmt.Errorf("%w: output writer is required", domain.ErrValidation)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", domain.ErrValidation)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	email, err := notifier.NewEmailNotifier(cfg.SMTPServer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create email notifier: %w", err)
	}
	chat, err := notifier.NewChatNotifier(cfg.ChatWebhookURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat notifier: %w", err)
	}
	policy, err := retry.NewPolicy(cfg.MaxAttempts, logger.Named("retry"))
	if err != nil {
		return nil, fmt.Errorf("failed to create retry policy: %w", err)
	}

	return &Runner{
		out:     out,
		logger:  logger,
		metrics: observability.NewMetrics(),
		email:   email,
		chat:    chat,
		policy:  policy,
	}, nil
}

func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	summary := &Summary{RunID: uuid.NewString()}
	ctx = observability.ContextWithRunID(ctx, summary.RunID)
	runLogger := observability.DeliveryLogger(r.logger, ctx, "", "")
	runLogger.Info("demo run started")

	r.printf("=== notification dispatch demo ===\n")

	r.printf("\n# encapsulation: status changes only through the record's own methods\n")
	record := domain.NewNotification("user@example.com", "hello")
	r.printf("  initial state: %s\n", record)

	r.printf("\n# polymorphism: email and chat behind the same Notifier interface\n")
	for _, n := range []notifier.Notifier{r.email, r.chat} {
		accepted := n.Send("user@example.com", "test")
		r.printf("  %s accepted=%t\n", n.Name(), accepted)
	}

	r.printf("\n# delegation: the service hands delivery to a notifier and a retry policy\n")
	emailService, err := r.newService(r.email)
	if err != nil {
		return nil, err
	}
	chatService, err := r.newService(r.chat)
	if err != nil {
		return nil, err
	}

	scenarios := []struct {
		name      string
		svc       *service.NotificationService
		notifier  string
		recipient string
		message   string
	}{
		{name: "email success", svc: emailService, notifier: r.email.Name(), recipient: "dev@example.com", message: "deploy finished"},
		{name: "email retries exhausted", svc: emailService, notifier: r.email.Name(), recipient: "invalid-address", message: "undeliverable"},
		{name: "chat success", svc: chatService, notifier: r.chat.Name(), recipient: "#general", message: "released"},
		{name: "chat retries exhausted", svc: chatService, notifier: r.chat.Name(), recipient: "general", message: "released"},
	}

	var delivered *domain.Notification
	for _, sc := range scenarios {
		r.printf("\n--- %s ---\n", sc.name)
		n := domain.NewNotification(sc.recipient, sc.message)
		if err := sc.svc.Send(ctx, n); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.name, err)
		}
		r.printf("  result: %s\n", n)

		if delivered == nil && n.Status() == domain.StatusSent {
			delivered = n
		}
		summary.Scenarios = append(summary.Scenarios, ScenarioResult{
			Name:      sc.name,
			Notifier:  sc.notifier,
			Recipient: sc.recipient,
			Status:    n.Status(),
			Attempts:  n.AttemptCount(),
		})
	}

	r.printf("\n# guarded transition: marking a sent record as sent again is rejected\n")
	if delivered != nil {
		if err := delivered.MarkSent(); err != nil {
			summary.TransitionError = err.Error()
			r.printf("  rejected: %v\n", err)
		}
	}

	totals, err := r.metrics.Totals()
	if err != nil {
		return nil, err
	}
	summary.Totals = totals
	r.printf("\n# totals: sent=%d failed=%d attempts=%d\n", totals.Sent, totals.Failed, totals.Attempts)
	r.printf("\n=== demo finished ===\n")

	runLogger.Info("demo run finished",
		zap.Int("sent", totals.Sent),
		zap.Int("failed", totals.Failed),
		zap.Int("attempts", totals.Attempts),
	)

	return summary, nil
}

func (r *Runner) newService(n notifier.Notifier) (*service.NotificationService, error) {
	svc, err := service.NewNotificationService(n, r.policy, r.logger.Named("service"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s service: %w", n.Name(), err)
	}
	svc.SetMetrics(r.metrics)
	return svc, nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
