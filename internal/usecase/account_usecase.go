package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic. Account management
// proper lives elsewhere; this covers what the transaction pipeline and
// its operators need.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, m *metrics.Metrics, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		metrics:     m,
		logger:      logger,
	}
}

// OpenAccountInput represents input for opening an account.
// OpeningBalance is in the smallest currency unit. AccountNumber is
// generated when empty.
type OpenAccountInput struct {
	Kind           domain.AccountKind
	OwnerName      string
	OpeningBalance int64
	AccountNumber  string
}

// OpenAccount opens a new account. Checking accounts start with their
// available balance equal to the opening balance.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidAccountKind
	}
	if err := domain.ValidateOwnerName(input.OwnerName); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.OpeningBalance); err != nil {
		return nil, err
	}

	number := input.AccountNumber
	if number == "" {
		var err error
		number, err = domain.NewAccountNumber()
		if err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		AccountNumber: number,
		Kind:          input.Kind,
		OwnerName:     input.OwnerName,
		Balance:       input.OpeningBalance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if account.HasAvailableBalance() {
		account.AvailableBalance = input.OpeningBalance
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("account_id", account.ID).
		Str("kind", string(account.Kind)).
		Msg("account opened")

	if uc.metrics != nil {
		uc.metrics.AccountsOpened.Inc()
	}

	return account, nil
}

// GetAccountByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}
