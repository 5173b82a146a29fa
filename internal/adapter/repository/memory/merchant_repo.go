package memory

import (
	"context"
	"time"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

// MerchantRepo implements usecase.MerchantRepository on a Store.
type MerchantRepo struct {
	store *Store
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(store *Store) *MerchantRepo {
	return &MerchantRepo{store: store}
}

// GetOrCreate resolves a merchant by code, registering it when absent.
func (r *MerchantRepo) GetOrCreate(ctx context.Context, tx usecase.Transaction, code, name string) (*domain.Merchant, error) {
	if _, err := r.store.openTx(tx); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if merchant, ok := s.merchants[code]; ok {
		copied := *merchant
		return &copied, nil
	}

	merchant := &domain.Merchant{Code: code, Name: name, CreatedAt: time.Now().UTC()}
	s.merchants[code] = merchant

	copied := *merchant
	return &copied, nil
}

// GetByCode retrieves a merchant by code.
func (r *MerchantRepo) GetByCode(ctx context.Context, code string) (*domain.Merchant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	merchant, ok := s.merchants[code]
	if !ok {
		return nil, domain.ErrMerchantNotFound
	}
	copied := *merchant
	return &copied, nil
}
