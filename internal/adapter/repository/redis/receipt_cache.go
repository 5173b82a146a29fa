package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/goteller/internal/domain"
)

const receiptKeyPrefix = "receipt:"

// ReceiptCache implements usecase.ReceiptCache using Redis. Receipts are
// stored as JSON under receipt:<transaction-id> with a TTL; a miss is not
// an error.
type ReceiptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReceiptCache creates a new ReceiptCache.
func NewReceiptCache(client *redis.Client, ttl time.Duration) *ReceiptCache {
	return &ReceiptCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cached receipt. It returns (nil, nil) on a miss.
func (c *ReceiptCache) Get(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	data, err := c.client.Get(ctx, receiptKeyPrefix+transactionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("receipt cache get: %w", err)
	}

	var receipt domain.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("receipt cache decode: %w", err)
	}

	return &receipt, nil
}

// Set stores a receipt under its transaction ID.
func (c *ReceiptCache) Set(ctx context.Context, receipt *domain.Receipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("receipt cache encode: %w", err)
	}

	return c.client.Set(ctx, receiptKeyPrefix+receipt.TransactionID, data, c.ttl).Err()
}

// Delete drops the cached receipt of a transaction.
func (c *ReceiptCache) Delete(ctx context.Context, transactionID string) error {
	return c.client.Del(ctx, receiptKeyPrefix+transactionID).Err()
}
