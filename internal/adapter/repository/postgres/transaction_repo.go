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

const transactionColumns = `
	t.id, t.account_id, t.merchant_code, t.type, t.method, t.amount,
	t.state, t.status, t.initial_balance, t.posted_balance, t.description,
	t.created_at, t.updated_at, t.posted_at,
	m.name, m.created_at`

const transactionFrom = `
	FROM transactions t
	LEFT JOIN merchants m ON m.code = t.merchant_code`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db querier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithQuerier(pool)
}

func newTransactionRepositoryWithQuerier(db querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	q, err := txQuerier(tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			id, account_id, merchant_code, type, method, amount,
			state, status, initial_balance, posted_balance, description,
			created_at, updated_at, posted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var merchantCode *string
	if txn.Merchant != nil {
		merchantCode = &txn.Merchant.Code
	}

	_, err = q.Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		merchantCode,
		string(txn.Type),
		string(txn.Method),
		txn.Amount,
		string(txn.Lifecycle.State),
		string(txn.Lifecycle.Status),
		txn.InitialBalance,
		txn.PostedBalance,
		txn.Description,
		txn.CreatedAt,
		txn.UpdatedAt,
		txn.PostedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID together with its merchant.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionFrom + `
		WHERE t.id = $1
	`

	return scanTransaction(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE row
// lock on the transaction row. The joined merchant row is not locked.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	q, err := txQuerier(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT` + transactionColumns + transactionFrom + `
		WHERE t.id = $1
		FOR UPDATE OF t
	`

	return scanTransaction(q.QueryRow(ctx, query, id))
}

// Update writes the fields processing mutates: lifecycle, projected
// balance and timestamps. Everything else is immutable after creation.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	q, err := txQuerier(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET state = $2, status = $3, posted_balance = $4, updated_at = $5, posted_at = $6
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		txn.ID,
		string(txn.Lifecycle.State),
		string(txn.Lifecycle.Status),
		txn.PostedBalance,
		txn.UpdatedAt,
		txn.PostedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	q, err := txQuerier(tx)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByAccount lists transactions of an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionFrom + `
		WHERE t.account_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn             domain.Transaction
		merchantCode    *string
		typ, method     string
		state, status   string
		postedAt        *time.Time
		merchantName    *string
		merchantCreated *time.Time
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&merchantCode,
		&typ,
		&method,
		&txn.Amount,
		&state,
		&status,
		&txn.InitialBalance,
		&txn.PostedBalance,
		&txn.Description,
		&txn.CreatedAt,
		&txn.UpdatedAt,
		&postedAt,
		&merchantName,
		&merchantCreated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(typ)
	txn.Method = domain.TransactionMethod(method)
	txn.Lifecycle = domain.Lifecycle{
		State:  domain.TransactionState(state),
		Status: domain.TransactionStatus(status),
	}
	txn.PostedAt = postedAt

	if merchantCode != nil {
		merchant := &domain.Merchant{Code: *merchantCode}
		if merchantName != nil {
			merchant.Name = *merchantName
		}
		if merchantCreated != nil {
			merchant.CreatedAt = *merchantCreated
		}
		txn.Merchant = merchant
	}

	return &txn, nil
}
