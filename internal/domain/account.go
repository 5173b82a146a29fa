package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// AccountKind identifies what kind of bank account transactions settle
// against.
type AccountKind string

const (
	KindChecking AccountKind = "CHECKING"
	KindSavings  AccountKind = "SAVINGS"
)

// Valid reports whether the kind is known.
func (k AccountKind) Valid() bool {
	return k == KindChecking || k == KindSavings
}

// Account represents a bank account. Balances are integers in the
// smallest currency unit.
type Account struct {
	ID               string
	AccountNumber    string
	Kind             AccountKind
	OwnerName        string
	Balance          int64
	AvailableBalance int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasAvailableBalance reports whether the account tracks an available
// balance separately from its real balance. Only checking accounts do;
// AvailableBalance is meaningless otherwise.
func (a *Account) HasAvailableBalance() bool {
	return a.Kind == KindChecking
}

// ApplyPosting returns the balance pair after posting an approved
// transaction of the given type and amount. The receiver is not modified.
// Accounts without an available balance get theirs back unchanged.
func (a *Account) ApplyPosting(typ TransactionType, amount int64) (balance, available int64) {
	balance = a.Balance
	available = a.AvailableBalance

	switch typ.Direction() {
	case DirectionIncreasing:
		balance += amount
		if a.HasAvailableBalance() {
			available += amount
		}
	case DirectionDecreasing:
		balance -= amount
		if a.HasAvailableBalance() {
			available -= amount
		}
	}

	return balance, available
}

const accountNumberLength = 10

// NewAccountNumber generates a random 10-digit account number.
func NewAccountNumber() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberLength), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("%0*d", accountNumberLength, n), nil
}

// MaskAccountNumber hides all but the last four digits of an account
// number, e.g. "0011011234" becomes "******1234".
func MaskAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
