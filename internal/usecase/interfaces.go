package usecase

import (
	"context"
	"time"

	"github.com/iho/goteller/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateBalances(ctx context.Context, tx Transaction, id string, balance, available int64, updatedAt time.Time) error
}

// MerchantRepository defines data access for merchants.
type MerchantRepository interface {
	// GetOrCreate resolves a merchant by code, registering it with the
	// given name when absent.
	GetOrCreate(ctx context.Context, tx Transaction, code, name string) (*domain.Merchant, error)
	GetByCode(ctx context.Context, code string) (*domain.Merchant, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles database transaction lifecycle. Every unit
// of work begins here and ends in exactly one Commit or Rollback.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ReceiptCache caches receipts of posted transactions. Get returns
// (nil, nil) on a miss. Implementations are optional collaborators; the
// usecases treat a nil cache as disabled.
type ReceiptCache interface {
	Get(ctx context.Context, transactionID string) (*domain.Receipt, error)
	Set(ctx context.Context, receipt *domain.Receipt) error
	Delete(ctx context.Context, transactionID string) error
}

// Retrier re-runs a unit of work when it fails with a transient conflict
// such as a serialization failure or a deadlock.
type Retrier interface {
	Retry(ctx context.Context, fn func() error) error
}
