package notification

import (
	"context"
	"errors"

	"payments/internal/models"
)

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) NotifyAboutTransfer(ctx context.Context, account models.Account, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyAboutTransfer(ctx, account, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
