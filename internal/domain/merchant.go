package domain

import "time"

// Merchant is a payee that merchant-capable transactions settle against.
// Code is the natural key.
type Merchant struct {
	Code      string
	Name      string
	CreatedAt time.Time
}
