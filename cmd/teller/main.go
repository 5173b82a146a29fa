package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	memoryRepo "github.com/iho/goteller/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/goteller/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goteller/internal/adapter/repository/redis"
	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/infrastructure/config"
	"github.com/iho/goteller/internal/infrastructure/logger"
	"github.com/iho/goteller/internal/infrastructure/metrics"
	"github.com/iho/goteller/internal/infrastructure/postgres"
	"github.com/iho/goteller/internal/infrastructure/redis"
	"github.com/iho/goteller/internal/usecase"
)

var (
	demoMode bool
	jsonOut  bool
)

// Accounts seeded into the in-memory store in demo mode.
const (
	demoCheckingNumber = "0010001000"
	demoSavingsNumber  = "0020002000"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "teller",
		Short: "Bank transaction processing CLI",
		Long: `teller drives the transaction processing core: open accounts, create
transactions, run them through the processing pipeline and read the
resulting receipts.

Commands run against PostgreSQL (DATABASE_URL) with an optional Redis
receipt cache (REDIS_URL). With --demo they run against an ephemeral
in-memory store seeded with checking account ` + demoCheckingNumber + ` (balance
1000.00) and savings account ` + demoSavingsNumber + ` (balance 500.00); state
lasts a single invocation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&demoMode, "demo", false, "run against an ephemeral in-memory store")
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	root.AddCommand(newAccountsCmd())
	root.AddCommand(newTxCmd())
	root.AddCommand(newDemoCmd())

	return root
}

// Exit codes by error class. Internal failures exit 1.
const (
	exitInternal      = 1
	exitBadRequest    = 2
	exitNotFound      = 3
	exitUnprocessable = 4
	exitConflict      = 5
)

func exitCode(err error) int {
	switch domain.Classify(err) {
	case domain.ClassNotFound:
		return exitNotFound
	case domain.ClassBadRequest:
		return exitBadRequest
	case domain.ClassUnprocessable:
		return exitUnprocessable
	case domain.ClassConflict:
		return exitConflict
	default:
		return exitInternal
	}
}

// app bundles the wired usecases for one command invocation.
type app struct {
	accounts     *usecase.AccountUseCase
	transactions *usecase.TransactionUseCase
	logger       zerolog.Logger
	closers      []func()
}

// Close releases connections in reverse wiring order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// withApp wires an app for the duration of one command.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Logs go to stderr so stdout stays parseable.
	log := logger.NewWithWriter(os.Stderr, logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if demoMode {
		return newDemoApp(ctx, log)
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	a := &app{logger: log}
	a.closers = append(a.closers, pool.Close)

	var cache usecase.ReceiptCache
	if cfg.CacheEnabled() {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		cache = redisRepo.NewReceiptCache(client, cfg.ReceiptCacheTTL)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	merchantRepo := postgresRepo.NewMerchantRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	a.accounts = usecase.NewAccountUseCase(accountRepo, idGen, m, log)
	a.transactions = usecase.NewTransactionUseCase(
		txManager, accountRepo, merchantRepo, transactionRepo,
		idGen, cache, retrier, m, log,
	)

	return a, nil
}

// newDemoApp wires everything against the in-memory store. No cache, no
// retrier, no metrics; the store serializes units of work on its own.
func newDemoApp(ctx context.Context, log zerolog.Logger) (*app, error) {
	store := memoryRepo.NewStore()
	accountRepo := memoryRepo.NewAccountRepo(store)
	merchantRepo := memoryRepo.NewMerchantRepo(store)
	transactionRepo := memoryRepo.NewTransactionRepo(store)
	idGen := postgresRepo.NewULIDGenerator()

	a := &app{logger: log}
	a.accounts = usecase.NewAccountUseCase(accountRepo, idGen, nil, log)
	a.transactions = usecase.NewTransactionUseCase(
		store, accountRepo, merchantRepo, transactionRepo,
		idGen, nil, nil, nil, log,
	)

	if err := seedDemoAccounts(ctx, accountRepo, idGen); err != nil {
		return nil, fmt.Errorf("seed demo accounts: %w", err)
	}

	return a, nil
}

func seedDemoAccounts(ctx context.Context, repo usecase.AccountRepository, idGen usecase.IDGenerator) error {
	now := time.Now().UTC()

	seeds := []*domain.Account{
		{
			ID:               idGen.Generate(),
			AccountNumber:    demoCheckingNumber,
			Kind:             domain.KindChecking,
			OwnerName:        "Demo Checking",
			Balance:          100000,
			AvailableBalance: 100000,
			CreatedAt:        now,
			UpdatedAt:        now,
		},
		{
			ID:            idGen.Generate(),
			AccountNumber: demoSavingsNumber,
			Kind:          domain.KindSavings,
			OwnerName:     "Demo Savings",
			Balance:       50000,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	for _, account := range seeds {
		if err := repo.Create(ctx, account); err != nil {
			return err
		}
	}

	return nil
}
