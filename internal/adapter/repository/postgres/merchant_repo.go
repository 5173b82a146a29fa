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

// MerchantRepository implements usecase.MerchantRepository.
type MerchantRepository struct {
	db querier
}

// NewMerchantRepository creates a new MerchantRepository.
func NewMerchantRepository(pool *pgxpool.Pool) *MerchantRepository {
	return newMerchantRepositoryWithQuerier(pool)
}

func newMerchantRepositoryWithQuerier(db querier) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// GetOrCreate resolves a merchant by code, registering it with the given
// name when absent. Registration races resolve to the row that won; the
// stored name is returned either way.
func (r *MerchantRepository) GetOrCreate(ctx context.Context, tx usecase.Transaction, code, name string) (*domain.Merchant, error) {
	q, err := txQuerier(tx)
	if err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO merchants (code, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING
	`

	if _, err := q.Exec(ctx, insert, code, name, time.Now().UTC()); err != nil {
		return nil, err
	}

	query := `
		SELECT code, name, created_at
		FROM merchants
		WHERE code = $1
	`

	return scanMerchant(q.QueryRow(ctx, query, code))
}

// GetByCode retrieves a merchant by code.
func (r *MerchantRepository) GetByCode(ctx context.Context, code string) (*domain.Merchant, error) {
	query := `
		SELECT code, name, created_at
		FROM merchants
		WHERE code = $1
	`

	return scanMerchant(r.db.QueryRow(ctx, query, code))
}

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	var merchant domain.Merchant

	err := row.Scan(&merchant.Code, &merchant.Name, &merchant.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}

	return &merchant, nil
}
