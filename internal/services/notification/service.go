package notification

import (
	"context"

	"payments/internal/models"

	"go.uber.org/zap"
)

// Notifier delivers a transfer message to an account holder.
type Notifier interface {
	NotifyAboutTransfer(ctx context.Context, account models.Account, message string) error
}

// MetricsCollector records notification outcomes.
type MetricsCollector interface {
	RecordNotification(sink, result string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordNotification(string, string) {}

// Service is a notifier that only writes the message to the log.
type Service struct {
	log *zap.Logger
}

// NewService creates a new notification service.
func NewService(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log}
}

// NotifyAboutTransfer logs a transfer notification.
func (s *Service) NotifyAboutTransfer(ctx context.Context, account models.Account, message string) error {
	s.log.Info("transfer notification",
		zap.String("account_id", account.ID),
		zap.String("message", message),
	)
	return nil
}
