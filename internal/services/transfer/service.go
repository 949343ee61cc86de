package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "payments/internal/errors"
	"payments/internal/models"
	"payments/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transfer outcomes used as metric labels.
const (
	OutcomeSuccess           = "success"
	OutcomeAccountNotFound   = "account_not_found"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeInvalid           = "invalid"
	OutcomeFailed            = "failed"
)

// service implements the transfer Service interface.
type service struct {
	accounts AccountStore
	notifier NotificationService
	locker   Locker
	log      *zap.Logger
	metrics  MetricsCollector
	newRef   func() string
}

// NewService creates a new transfer service instance.
func NewService(
	accounts AccountStore,
	notifier NotificationService,
	locker Locker,
	log *zap.Logger,
	metrics MetricsCollector,
) Service {
	if accounts == nil {
		panic("account store is required")
	}
	if locker == nil {
		locker = NewGlobalLocker()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		accounts: accounts,
		notifier: notifier,
		locker:   locker,
		log:      log,
		metrics:  metrics,
		newRef:   uuid.NewString,
	}
}

// Transfer moves req.Amount from req.From to req.To. Either both balances
// change or neither does; notifications are sent only after the commit.
func (s *service) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("transfer", time.Since(start))
	}()

	if !req.Amount.IsPositive() {
		err := &apperrors.ValidationError{Fields: map[string]string{"amount": "must be positive"}}
		s.reject(OutcomeInvalid, req, err)
		return nil, err
	}

	if err := s.resolve(req); err != nil {
		s.reject(outcomeOf(err), req, err)
		return nil, err
	}

	source, dest, err := s.apply(req)
	if err != nil {
		s.reject(outcomeOf(err), req, err)
		return nil, err
	}

	ref := s.newRef()
	s.notify(ctx, ref, dest, fmt.Sprintf("Received %s from %s", req.Amount, req.From))
	s.notify(ctx, ref, source, fmt.Sprintf("Your payment (%s) to user %s processed successfully", req.Amount, req.To))

	s.metrics.RecordTransfer(OutcomeSuccess, req.Amount)
	s.log.Info("transaction processed successfully",
		zap.String("reference", ref),
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.String("amount", req.Amount.String()),
	)

	return &models.TransferResult{Reference: ref}, nil
}

// resolve checks that both accounts exist. It runs outside the lock.
func (s *service) resolve(req models.TransferRequest) error {
	var missing []string
	for _, id := range []string{req.From, req.To} {
		if _, err := s.accounts.GetByID(id); err != nil {
			if !errors.Is(err, repositories.ErrAccountNotFound) {
				return fmt.Errorf("failed to get account %s: %w", id, err)
			}
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &apperrors.AccountNotFoundError{IDs: missing}
	}
	return nil
}

// apply is the critical section: check the source balance and write both
// sides while holding the locker.
func (s *service) apply(req models.TransferRequest) (models.Account, models.Account, error) {
	waitStart := time.Now()
	unlock := s.locker.Lock(req.From, req.To)
	defer unlock()
	s.metrics.RecordLockWait(s.locker.Mode(), time.Since(waitStart))

	// Balances are re-read under the lock; the lookup above may be stale.
	source, err := s.accounts.GetByID(req.From)
	if err != nil {
		return models.Account{}, models.Account{}, s.lookupError(req.From, err)
	}

	newSource := source.Balance.Sub(req.Amount)
	if newSource.IsNegative() {
		return models.Account{}, models.Account{}, &apperrors.InsufficientFundsError{
			AccountID: source.ID,
			Balance:   source.Balance,
			Amount:    req.Amount,
		}
	}

	dest, err := s.accounts.GetByID(req.To)
	if err != nil {
		return models.Account{}, models.Account{}, s.lookupError(req.To, err)
	}

	if err := s.accounts.UpdateBalance(source.ID, newSource); err != nil {
		return models.Account{}, models.Account{}, fmt.Errorf("failed to debit %s: %w", source.ID, err)
	}

	// A self-transfer credits the balance just written.
	if dest.ID == source.ID {
		dest.Balance = newSource
	}
	newDest := dest.Balance.Add(req.Amount)

	if err := s.accounts.UpdateBalance(dest.ID, newDest); err != nil {
		// The destination vanished after the read; undo the debit.
		if rbErr := s.accounts.UpdateBalance(source.ID, source.Balance); rbErr != nil {
			s.log.Error("failed to roll back debit",
				zap.String("account_id", source.ID),
				zap.Error(rbErr),
			)
		}
		return models.Account{}, models.Account{}, s.lookupError(dest.ID, err)
	}

	source.Balance = newSource
	if dest.ID == source.ID {
		source.Balance = newDest
	}
	dest.Balance = newDest
	return *source, *dest, nil
}

func (s *service) lookupError(id string, err error) error {
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return &apperrors.AccountNotFoundError{IDs: []string{id}}
	}
	return fmt.Errorf("failed to access account %s: %w", id, err)
}

// notify never lets a notifier failure reach the caller.
func (s *service) notify(ctx context.Context, ref string, account models.Account, message string) {
	if s.notifier == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("notifier panicked",
				zap.String("reference", ref),
				zap.String("account_id", account.ID),
				zap.Any("panic", r),
			)
		}
	}()

	if err := s.notifier.NotifyAboutTransfer(ctx, account, message); err != nil {
		s.log.Warn("failed to notify account holder",
			zap.String("reference", ref),
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
}

func (s *service) reject(outcome string, req models.TransferRequest, err error) {
	s.metrics.RecordTransfer(outcome, req.Amount)
	s.log.Info("transfer rejected",
		zap.String("outcome", outcome),
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.String("amount", req.Amount.String()),
		zap.Error(err),
	)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return OutcomeAccountNotFound
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	default:
		return OutcomeFailed
	}
}
