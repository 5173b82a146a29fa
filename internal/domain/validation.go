package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidAmount            = errors.New("amount must be a non-negative integer")
	ErrAmountTooLarge           = errors.New("amount exceeds maximum allowed")
	ErrInvalidTransactionType   = errors.New("unknown transaction type")
	ErrInvalidTransactionMethod = errors.New("unknown transaction method")
	ErrInvalidAccountNumber     = errors.New("invalid account number")
	ErrInvalidAccountKind       = errors.New("unknown account kind")
	ErrInvalidMerchantCode      = errors.New("invalid merchant code")
	ErrInvalidOwnerName         = errors.New("invalid owner name")
)

// Validation constants
const (
	MaxTransactionAmount int64 = 100_000_000 // 1,000,000.00 in minor units
	MaxOwnerNameLength         = 255
	MaxDescriptionLength       = 255
)

var (
	accountNumberRegex = regexp.MustCompile(`^[0-9]{8,12}$`)
	merchantCodeRegex  = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)
)

// ValidateAmount checks that amount is a well-formed minor-unit amount.
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount > MaxTransactionAmount {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, FormatAmount(MaxTransactionAmount))
	}
	return nil
}

// ValidateAccountNumber checks the account number shape.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: must be 8 to 12 digits", ErrInvalidAccountNumber)
	}
	return nil
}

// ValidateMerchantCode checks the merchant code shape.
func ValidateMerchantCode(code string) error {
	if !merchantCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: must be 4 to 12 uppercase letters or digits", ErrInvalidMerchantCode)
	}
	return nil
}

// ValidateOwnerName checks the account owner name.
func ValidateOwnerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidOwnerName)
	}
	if len(name) > MaxOwnerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidOwnerName, MaxOwnerNameLength)
	}

	return nil
}
