package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"payments/internal/models"

	"github.com/shopspring/decimal"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() AccountRepository {
	return &accountRepository{
		accounts: make(map[string]*models.Account),
	}
}

func (r *accountRepository) Create(account *models.Account) error {
	if account == nil || strings.TrimSpace(account.ID) == "" {
		return ErrInvalidAccountData
	}
	if account.Balance.IsNegative() {
		return fmt.Errorf("failed to create account %s: %w", account.ID, ErrNegativeBalance)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return fmt.Errorf("account id %s: %w", account.ID, ErrDuplicateAccount)
	}
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

// GetByID returns a copy; callers never hold a reference into the store.
func (r *accountRepository) GetByID(id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	found := *account
	return &found, nil
}

func (r *accountRepository) List() []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		found := *account
		accounts = append(accounts, &found)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

func (r *accountRepository) UpdateBalance(id string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("failed to update account %s: %w", id, ErrNegativeBalance)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	account.Balance = balance
	return nil
}

func (r *accountRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *accountRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = make(map[string]*models.Account)
}
