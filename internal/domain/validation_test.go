package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr error
	}{
		{"zero is allowed", 0, nil},
		{"positive amount", 5000, nil},
		{"maximum amount", MaxTransactionAmount, nil},
		{"negative amount", -1, ErrInvalidAmount},
		{"over maximum", MaxTransactionAmount + 1, ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAccountNumber(t *testing.T) {
	valid := []string{"00110112", "0011011234", "123456789012"}
	for _, number := range valid {
		if err := ValidateAccountNumber(number); err != nil {
			t.Errorf("expected %q to be valid, got %v", number, err)
		}
	}

	invalid := []string{"", "1234567", "1234567890123", "00110a1234", "0011 01123"}
	for _, number := range invalid {
		if err := ValidateAccountNumber(number); !errors.Is(err, ErrInvalidAccountNumber) {
			t.Errorf("expected %q to be invalid, got %v", number, err)
		}
	}
}

func TestValidateMerchantCode(t *testing.T) {
	valid := []string{"MERCH123", "ACME", "A1B2C3D4E5F6"}
	for _, code := range valid {
		if err := ValidateMerchantCode(code); err != nil {
			t.Errorf("expected %q to be valid, got %v", code, err)
		}
	}

	invalid := []string{"", "abc", "AB", "merch123", "TOOLONGMERCHANT"}
	for _, code := range invalid {
		if err := ValidateMerchantCode(code); !errors.Is(err, ErrInvalidMerchantCode) {
			t.Errorf("expected %q to be invalid, got %v", code, err)
		}
	}
}

func TestValidateOwnerName(t *testing.T) {
	if err := ValidateOwnerName("Jane Doe"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateOwnerName("   "); !errors.Is(err, ErrInvalidOwnerName) {
		t.Errorf("expected blank name to be invalid, got %v", err)
	}

	long := strings.Repeat("a", MaxOwnerNameLength+1)
	if err := ValidateOwnerName(long); !errors.Is(err, ErrInvalidOwnerName) {
		t.Errorf("expected oversized name to be invalid, got %v", err)
	}
}
