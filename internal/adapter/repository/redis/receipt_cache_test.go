package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/goteller/internal/domain"
)

func newTestCache(t *testing.T) (*ReceiptCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewReceiptCache(client, time.Minute), mr
}

func testReceipt(id string) *domain.Receipt {
	return &domain.Receipt{
		TransactionID:   id,
		Type:            domain.TypePurchase,
		Method:          domain.MethodCard,
		Amount:          5000,
		FormattedAmount: "50.00",
		Status:          domain.StatusApproved,
		State:           domain.StatePosted,
		InitialBalance:  100000,
		PostedBalance:   95000,
		AccountNumber:   "******1234",
		Merchant:        &domain.MerchantSummary{Code: "COFFEE01", Name: "Corner Coffee"},
		PostedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReceiptCacheSetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, testReceipt("txn-1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "txn-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected cached receipt")
	}

	if got.TransactionID != "txn-1" || got.PostedBalance != 95000 {
		t.Errorf("unexpected receipt: %+v", got)
	}
	if got.Merchant == nil || got.Merchant.Code != "COFFEE01" {
		t.Errorf("merchant summary did not survive the round trip: %+v", got.Merchant)
	}
}

func TestReceiptCacheGetMissIsNotAnError(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected miss to be silent, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil receipt on miss, got %+v", got)
	}
}

func TestReceiptCacheDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, testReceipt("txn-1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Delete(ctx, "txn-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := cache.Get(ctx, "txn-1")
	if err != nil || got != nil {
		t.Fatalf("expected miss after delete, got receipt=%+v err=%v", got, err)
	}
}

func TestReceiptCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, testReceipt("txn-1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "txn-1")
	if err != nil || got != nil {
		t.Fatalf("expected entry to expire, got receipt=%+v err=%v", got, err)
	}
}
