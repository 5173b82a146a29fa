package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

// AccountRepo implements usecase.AccountRepository on a Store.
type AccountRepo struct {
	store *Store
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(store *Store) *AccountRepo {
	return &AccountRepo{store: store}
}

// Create stores a new account.
func (r *AccountRepo) Create(ctx context.Context, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accountNumbers[account.AccountNumber]; exists {
		return fmt.Errorf("memory: account number %s already exists", account.AccountNumber)
	}

	copied := *account
	s.accounts[account.ID] = &copied
	s.accountNumbers[account.AccountNumber] = account.ID
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountLocked(id)
}

// GetByNumber retrieves an account by account number.
func (r *AccountRepo) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountNumbers[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return s.accountLocked(id)
}

// GetByIDForUpdate retrieves an account within a unit of work.
func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if _, err := r.store.openTx(tx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateBalances writes the balance pair of an account.
func (r *AccountRepo) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, balance, available int64, updatedAt time.Time) error {
	if _, err := r.store.openTx(tx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Balance = balance
	account.AvailableBalance = available
	account.UpdatedAt = updatedAt
	return nil
}

func (s *Store) accountLocked(id string) (*domain.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}
