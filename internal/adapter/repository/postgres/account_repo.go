package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

const accountColumns = `id, account_number, kind, owner_name, balance, available_balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db querier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithQuerier(pool)
}

func newAccountRepositoryWithQuerier(db querier) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.AccountNumber,
		string(account.Kind),
		account.OwnerName,
		account.Balance,
		account.AvailableBalance,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// GetByNumber retrieves an account by account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1
	`

	return scanAccount(r.db.QueryRow(ctx, query, number))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE row lock.
// Processing serializes same-account work on this lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	q, err := txQuerier(tx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	return scanAccount(q.QueryRow(ctx, query, id))
}

// UpdateBalances writes the balance pair of an account.
func (r *AccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id string, balance, available int64, updatedAt time.Time) error {
	q, err := txQuerier(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE accounts
		SET balance = $2, available_balance = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, balance, available, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var kind string

	err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&kind,
		&account.OwnerName,
		&account.Balance,
		&account.AvailableBalance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	account.Kind = domain.AccountKind(kind)

	return &account, nil
}
