package transfer

import (
	"context"
	"time"

	"payments/internal/models"

	"github.com/shopspring/decimal"
)

// AccountStore is the part of the account repository used by transfers.
type AccountStore interface {
	GetByID(id string) (*models.Account, error)
	UpdateBalance(id string, balance decimal.Decimal) error
}

// NotificationService is used to notify account holders about transfers.
type NotificationService interface {
	NotifyAboutTransfer(ctx context.Context, account models.Account, message string) error
}

// MetricsCollector defines the interface for collecting transfer metrics
type MetricsCollector interface {
	RecordTransfer(outcome string, amount decimal.Decimal)
	RecordOperationDuration(operation string, duration time.Duration)
	RecordLockWait(mode string, duration time.Duration)
}

// Service handles money transfers between two accounts.
type Service interface {
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error)
}
