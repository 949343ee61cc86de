package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DomainError is an error with a stable, client-facing code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// AccountNotFoundError reports the account ids that could not be resolved.
type AccountNotFoundError struct {
	IDs []string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account does not exist, ids: %s", strings.Join(e.IDs, ", "))
}

func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// InsufficientFundsError carries the balance seen at check time.
type InsufficientFundsError struct {
	AccountID string
	Balance   decimal.Decimal
	Amount    decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %s has not enough balance for this transaction, bal: %s, payment amount: %s",
		e.AccountID, e.Balance, e.Amount)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// ValidationError lists malformed request fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Code returns the DomainError code of err, or "" if it has none.
func Code(err error) string {
	switch {
	case Is(err, ErrAccountNotFound):
		return ErrAccountNotFound.Code
	case Is(err, ErrInsufficientFunds):
		return ErrInsufficientFunds.Code
	case Is(err, ErrValidation):
		return ErrValidation.Code
	case Is(err, ErrDuplicateAccount):
		return ErrDuplicateAccount.Code
	}
	var de *DomainError
	if As(err, &de) {
		return de.Code
	}
	return ""
}
