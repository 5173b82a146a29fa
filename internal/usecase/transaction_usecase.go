package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/infrastructure/metrics"
)

// TransactionUseCase runs transactions through their lifecycle: create,
// process (perform, validate, post) and delete.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	merchantRepo    MerchantRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	cache           ReceiptCache
	retrier         Retrier
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase. cache, retrier
// and metrics may be nil; the usecase then runs without them.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	merchantRepo MerchantRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	cache ReceiptCache,
	retrier Retrier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		merchantRepo:    merchantRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		cache:           cache,
		retrier:         retrier,
		metrics:         m,
		logger:          logger,
	}
}

// CreateTransactionInput represents input for creating a transaction.
// Amount is in the smallest currency unit.
type CreateTransactionInput struct {
	Type          domain.TransactionType
	Method        domain.TransactionMethod
	Amount        int64
	AccountNumber string
	CardNumber    string
	MerchantCode  string
	MerchantName  string
	Description   string
}

func (in CreateTransactionInput) validate() error {
	// Card-based requests are rejected before anything else is looked at.
	if in.CardNumber != "" {
		return domain.ErrCardNotSupported
	}
	if !in.Type.Valid() {
		return domain.ErrInvalidTransactionType
	}
	if !in.Method.Valid() {
		return domain.ErrInvalidTransactionMethod
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return err
	}
	if err := domain.ValidateAccountNumber(in.AccountNumber); err != nil {
		return err
	}
	if in.MerchantCode != "" {
		if err := domain.ValidateMerchantCode(in.MerchantCode); err != nil {
			return err
		}
	}
	return nil
}

// CreateTransaction registers a new pending transaction against the
// account with the given number. The account balance at creation time is
// snapshotted into InitialBalance.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	// 1. Validate input before starting the unit of work
	if err := input.validate(); err != nil {
		return nil, err
	}

	// 2. Begin unit of work
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// 3. Resolve the account
	account, err := uc.accountRepo.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		Type:           input.Type,
		Method:         input.Method,
		Amount:         input.Amount,
		Lifecycle:      domain.NewLifecycle(),
		InitialBalance: account.Balance,
		PostedBalance:  account.Balance,
		AccountID:      account.ID,
		Description:    input.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 4. Resolve the merchant, but only for merchant-capable types
	if input.Type.MerchantCapable() && input.MerchantCode != "" {
		merchant, err := uc.merchantRepo.GetOrCreate(ctx, tx, input.MerchantCode, input.MerchantName)
		if err != nil {
			return nil, err
		}
		txn.Merchant = merchant
	}

	// 5. Persist and commit
	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("transaction_id", txn.ID).
		Str("account_id", account.ID).
		Str("type", string(txn.Type)).
		Int64("amount", txn.Amount).
		Msg("transaction created")

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(txn.Type)).Inc()
		uc.metrics.TransactionAmount.Observe(float64(txn.Amount))
	}

	return txn, nil
}

// ProcessTransaction runs a created transaction through the
// perform/validate/post pipeline and returns its receipt. The stored row
// is re-read under a row lock inside one unit of work; on failure the
// work rolls back and the caller's transaction is left untouched. The
// unit of work is retried on transient conflicts when a retrier is
// configured.
func (uc *TransactionUseCase) ProcessTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Receipt, error) {
	if txn == nil || txn.ID == "" {
		return nil, domain.ErrTransactionNotFound
	}

	start := time.Now()

	var receipt *domain.Receipt
	process := func() error {
		var err error
		receipt, err = uc.processOnce(ctx, txn)
		return err
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, process)
	} else {
		err = process()
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ProcessDuration.Observe(time.Since(start).Seconds())
	}

	return receipt, nil
}

func (uc *TransactionUseCase) processOnce(ctx context.Context, txn *domain.Transaction) (*domain.Receipt, error) {
	// 1. Begin unit of work
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// 2. Lock the stored transaction; the caller's copy may be stale
	stored, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, txn.ID)
	if err != nil {
		return nil, err
	}

	if stored.Lifecycle.Posted() {
		return nil, domain.ErrTransactionAlreadyPosted
	}

	// 3. Lock the account
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, stored.AccountID)
	if err != nil {
		return nil, err
	}

	// 4. Run the pipeline on a working copy
	work := stored.Clone()

	work.Lifecycle, err = work.Lifecycle.BeginProcessing()
	if err != nil {
		return nil, err
	}

	uc.performTransaction(work, account)

	if err := uc.validateTransaction(work, account); err != nil {
		return nil, err
	}

	if err := uc.postTransaction(ctx, tx, work, account); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	work.UpdatedAt = now
	work.PostedAt = &now

	// 5. Persist and commit
	if err := uc.transactionRepo.Update(ctx, tx, work); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Only now does the caller's copy advance.
	*txn = *work

	receipt := domain.NewReceipt(work, account)

	uc.logger.Info().
		Str("transaction_id", work.ID).
		Str("account_id", account.ID).
		Str("status", string(work.Lifecycle.Status)).
		Int64("posted_balance", work.PostedBalance).
		Msg("transaction processed")

	if uc.metrics != nil {
		switch work.Lifecycle.Status {
		case domain.StatusApproved:
			uc.metrics.TransactionsApproved.Inc()
		case domain.StatusDenied:
			uc.metrics.TransactionsDenied.Inc()
		}
		uc.metrics.TransactionsPosted.Inc()
	}

	uc.cacheReceipt(ctx, receipt)

	return receipt, nil
}

// performTransaction recomputes the balance projection for the current
// approval status.
func (uc *TransactionUseCase) performTransaction(work *domain.Transaction, account *domain.Account) {
	work.PostedBalance = domain.ProjectPostedBalance(account, work.Lifecycle.Status, work.Type, work.Amount)
}

// validateTransaction settles a pending transaction: deny when the
// projected balance is negative, approve otherwise. Either decision
// recomputes the projection.
func (uc *TransactionUseCase) validateTransaction(work *domain.Transaction, account *domain.Account) error {
	if work.Lifecycle.State != domain.StateProcessing {
		return domain.ErrTransactionNotProcessing
	}
	if work.Lifecycle.Status != domain.StatusPending {
		return domain.ErrTransactionAlreadyValidated
	}

	if work.PostedBalance < 0 {
		if err := uc.deny(work, account); err != nil {
			return err
		}
	}

	if work.Lifecycle.Status == domain.StatusPending {
		return uc.approve(work, account)
	}

	return nil
}

func (uc *TransactionUseCase) approve(work *domain.Transaction, account *domain.Account) error {
	next, err := work.Lifecycle.Approve()
	if err != nil {
		return err
	}
	work.Lifecycle = next
	uc.performTransaction(work, account)
	return nil
}

func (uc *TransactionUseCase) deny(work *domain.Transaction, account *domain.Account) error {
	next, err := work.Lifecycle.Deny()
	if err != nil {
		return err
	}
	work.Lifecycle = next
	uc.performTransaction(work, account)
	return nil
}

// postTransaction moves a settled transaction into its terminal state.
// Approved transactions apply their amount to the account for real;
// denied ones post without touching it.
func (uc *TransactionUseCase) postTransaction(ctx context.Context, tx Transaction, work *domain.Transaction, account *domain.Account) error {
	if work.Lifecycle.Posted() {
		return domain.ErrTransactionAlreadyPosted
	}
	if work.Lifecycle.State != domain.StateProcessing {
		return domain.ErrTransactionNotProcessed
	}
	if work.Lifecycle.Status == domain.StatusPending {
		return domain.ErrTransactionStillPending
	}

	next, err := work.Lifecycle.Post()
	if err != nil {
		return err
	}
	work.Lifecycle = next

	if work.Lifecycle.Status == domain.StatusApproved {
		balance, available := account.ApplyPosting(work.Type, work.Amount)
		now := time.Now().UTC()

		if err := uc.accountRepo.UpdateBalances(ctx, tx, account.ID, balance, available, now); err != nil {
			return err
		}

		account.Balance = balance
		account.AvailableBalance = available
		account.UpdatedAt = now
	}

	return nil
}

// DeleteTransaction removes a transaction that has not posted yet.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txn, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if txn.Lifecycle.Posted() {
		return domain.ErrTransactionPosted
	}

	if err := uc.transactionRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.invalidateReceipt(ctx, id)

	uc.logger.Info().Str("transaction_id", id).Msg("transaction deleted")

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsByAccount lists transactions of the account with the
// given number, newest first.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.Transaction, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	limit, offset = normalizeLimit(limit, offset)

	return uc.transactionRepo.ListByAccount(ctx, account.ID, limit, offset)
}

// GetReceipt returns the receipt of a posted transaction, from cache when
// possible.
func (uc *TransactionUseCase) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	if uc.cache != nil {
		receipt, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn().Err(err).Str("transaction_id", id).Msg("receipt cache read failed")
		} else if receipt != nil {
			return receipt, nil
		}
	}

	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !txn.Lifecycle.Posted() {
		return nil, domain.ErrTransactionNotPosted
	}

	account, err := uc.accountRepo.GetByID(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}

	receipt := domain.NewReceipt(txn, account)
	uc.cacheReceipt(ctx, receipt)

	return receipt, nil
}

// Cache writes are best effort; a failing cache never fails the
// operation.
func (uc *TransactionUseCase) cacheReceipt(ctx context.Context, receipt *domain.Receipt) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, receipt); err != nil {
		uc.logger.Warn().Err(err).Str("transaction_id", receipt.TransactionID).Msg("receipt cache write failed")
	}
}

func (uc *TransactionUseCase) invalidateReceipt(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn().Err(err).Str("transaction_id", id).Msg("receipt cache delete failed")
	}
}
