package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorClass
	}{
		{ErrAccountNotFound, ClassNotFound},
		{ErrTransactionNotFound, ClassNotFound},
		{ErrMerchantNotFound, ClassNotFound},
		{ErrCardNotSupported, ClassBadRequest},
		{ErrInvalidAmount, ClassBadRequest},
		{ErrAmountTooLarge, ClassBadRequest},
		{ErrInvalidTransactionType, ClassBadRequest},
		{ErrInvalidTransactionMethod, ClassBadRequest},
		{ErrInvalidAccountNumber, ClassBadRequest},
		{ErrInvalidMerchantCode, ClassBadRequest},
		{ErrTransactionAlreadyPosted, ClassUnprocessable},
		{ErrTransactionNotProcessing, ClassUnprocessable},
		{ErrTransactionAlreadyValidated, ClassUnprocessable},
		{ErrTransactionNotProcessed, ClassUnprocessable},
		{ErrTransactionStillPending, ClassUnprocessable},
		{ErrInvalidTransition, ClassUnprocessable},
		{ErrTransactionPosted, ClassConflict},
		{errors.New("database exploded"), ClassInternal},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestClassifySeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("create transaction: %w", ErrAccountNotFound)

	if got := Classify(wrapped); got != ClassNotFound {
		t.Errorf("Classify(wrapped) = %v, want ClassNotFound", got)
	}
}
