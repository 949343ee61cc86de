package repositories

import (
	"errors"

	"payments/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountData = errors.New("invalid account data")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrNegativeBalance    = errors.New("balance cannot be negative")
)

// AccountRepository defines the account store used by the payments service.
// Every method is individually safe for concurrent use; atomicity across
// accounts is the caller's responsibility.
type AccountRepository interface {
	// Lifecycle
	Create(account *models.Account) error
	Delete(id string) error
	Clear()

	// Lookup
	GetByID(id string) (*models.Account, error)
	List() []*models.Account

	// Mutation
	UpdateBalance(id string, balance decimal.Decimal) error
}
