package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/iho/goteller/internal/domain"
)

func transactionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "account_id", "merchant_code", "type", "method", "amount",
		"state", "status", "initial_balance", "posted_balance", "description",
		"created_at", "updated_at", "posted_at",
		"name", "m_created_at",
	})
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestTransactionRepositoryGetByIDWithMerchant(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(`FROM transactions t`).
		WithArgs("txn-1").
		WillReturnRows(transactionRows().AddRow(
			"txn-1", "acc-1", strPtr("COFFEE01"), "PURCHASE", "CARD", int64(5000),
			"POSTED", "APPROVED", int64(100000), int64(95000), "morning espresso",
			testTime, testTime, timePtr(testTime),
			strPtr("Corner Coffee"), timePtr(testTime),
		))

	repo := newTransactionRepositoryWithQuerier(mockPool)
	txn, err := repo.GetByID(context.Background(), "txn-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Type != domain.TypePurchase || txn.Method != domain.MethodCard {
		t.Errorf("unexpected type/method: %s/%s", txn.Type, txn.Method)
	}
	want := domain.Lifecycle{State: domain.StatePosted, Status: domain.StatusApproved}
	if txn.Lifecycle != want {
		t.Errorf("lifecycle = %+v, want %+v", txn.Lifecycle, want)
	}
	if txn.Merchant == nil || txn.Merchant.Code != "COFFEE01" || txn.Merchant.Name != "Corner Coffee" {
		t.Errorf("unexpected merchant: %+v", txn.Merchant)
	}
	if txn.PostedAt == nil || !txn.PostedAt.Equal(testTime) {
		t.Errorf("unexpected posted at: %v", txn.PostedAt)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryGetByIDWithoutMerchant(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(`FROM transactions t`).
		WithArgs("txn-2").
		WillReturnRows(transactionRows().AddRow(
			"txn-2", "acc-1", nil, "WITHDRAWAL", "ATM", int64(2000),
			"CREATED", "PENDING", int64(100000), int64(100000), "",
			testTime, testTime, nil,
			nil, nil,
		))

	repo := newTransactionRepositoryWithQuerier(mockPool)
	txn, err := repo.GetByID(context.Background(), "txn-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txn.Merchant != nil {
		t.Errorf("expected no merchant, got %+v", txn.Merchant)
	}
	if txn.PostedAt != nil {
		t.Errorf("expected no posted timestamp, got %v", txn.PostedAt)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryGetByIDNotFound(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(`FROM transactions t`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	repo := newTransactionRepositoryWithQuerier(mockPool)
	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepositoryCreate(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	mockPool.ExpectExec(`INSERT INTO transactions`).
		WithArgs("txn-1", "acc-1", strPtr("COFFEE01"), "PURCHASE", "CARD", int64(5000),
			"CREATED", "PENDING", int64(100000), int64(100000), "",
			testTime, testTime, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newTransactionRepositoryWithQuerier(mockPool)
	err := repo.Create(context.Background(), tx, &domain.Transaction{
		ID:             "txn-1",
		Type:           domain.TypePurchase,
		Method:         domain.MethodCard,
		Amount:         5000,
		Lifecycle:      domain.NewLifecycle(),
		InitialBalance: 100000,
		PostedBalance:  100000,
		AccountID:      "acc-1",
		Merchant:       &domain.Merchant{Code: "COFFEE01", Name: "Corner Coffee"},
		CreatedAt:      testTime,
		UpdatedAt:      testTime,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryUpdate(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	mockPool.ExpectExec(`UPDATE transactions`).
		WithArgs("txn-1", "POSTED", "APPROVED", int64(95000), testTime, timePtr(testTime)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := newTransactionRepositoryWithQuerier(mockPool)
	err := repo.Update(context.Background(), tx, &domain.Transaction{
		ID:            "txn-1",
		Lifecycle:     domain.Lifecycle{State: domain.StatePosted, Status: domain.StatusApproved},
		PostedBalance: 95000,
		UpdatedAt:     testTime,
		PostedAt:      timePtr(testTime),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryDeleteNotFound(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	mockPool.ExpectExec(`DELETE FROM transactions`).
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := newTransactionRepositoryWithQuerier(mockPool)
	err := repo.Delete(context.Background(), tx, "ghost")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepositoryListByAccount(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(`FROM transactions t`).
		WithArgs("acc-1", 20, 0).
		WillReturnRows(transactionRows().
			AddRow("txn-2", "acc-1", nil, "DEPOSIT", "ACH", int64(1000),
				"POSTED", "APPROVED", int64(0), int64(1000), "",
				testTime.Add(time.Hour), testTime.Add(time.Hour), timePtr(testTime.Add(time.Hour)),
				nil, nil).
			AddRow("txn-1", "acc-1", nil, "WITHDRAWAL", "ATM", int64(500),
				"POSTED", "DENIED", int64(0), int64(0), "",
				testTime, testTime, timePtr(testTime),
				nil, nil))

	repo := newTransactionRepositoryWithQuerier(mockPool)
	txns, err := repo.ListByAccount(context.Background(), "acc-1", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if txns[0].ID != "txn-2" || txns[1].ID != "txn-1" {
		t.Errorf("unexpected order: %s, %s", txns[0].ID, txns[1].ID)
	}

	assertExpectations(t, mockPool)
}
