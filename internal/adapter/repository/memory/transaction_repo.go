package memory

import (
	"context"
	"sort"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

// TransactionRepo implements usecase.TransactionRepository on a Store.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create stores a new transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if _, err := r.store.openTx(tx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[txn.ID] = txn.Clone()
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return txn.Clone(), nil
}

// GetByIDForUpdate retrieves a transaction within a unit of work.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if _, err := r.store.openTx(tx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update replaces a stored transaction.
func (r *TransactionRepo) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if _, err := r.store.openTx(tx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	s.transactions[txn.ID] = txn.Clone()
	return nil
}

// Delete removes a transaction.
func (r *TransactionRepo) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if _, err := r.store.openTx(tx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(s.transactions, id)
	return nil
}

// ListByAccount lists transactions of an account, newest first.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txns []*domain.Transaction
	for _, txn := range s.transactions {
		if txn.AccountID == accountID {
			txns = append(txns, txn.Clone())
		}
	}

	sort.Slice(txns, func(i, j int) bool {
		if txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].ID > txns[j].ID
		}
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})

	if offset >= len(txns) {
		return nil, nil
	}
	txns = txns[offset:]
	if limit < len(txns) {
		txns = txns[:limit]
	}
	return txns, nil
}
