package domain

import (
	"errors"
	"testing"
)

func TestTransactionType_Direction(t *testing.T) {
	tests := []struct {
		typ  TransactionType
		want Direction
	}{
		{TypeDeposit, DirectionIncreasing},
		{TypeRefund, DirectionIncreasing},
		{TypeTransferIn, DirectionIncreasing},
		{TypePurchase, DirectionDecreasing},
		{TypePayment, DirectionDecreasing},
		{TypeWithdrawal, DirectionDecreasing},
		{TypeTransferOut, DirectionDecreasing},
		{TypeVoid, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.Direction(); got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}

			if tt.typ.IsIncreasing() && tt.typ.IsDecreasing() {
				t.Error("type reports both increasing and decreasing")
			}
		})
	}
}

func TestTransactionType_Valid(t *testing.T) {
	if !TypePurchase.Valid() {
		t.Error("expected PURCHASE to be valid")
	}

	if TransactionType("CHARGEBACK").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}

func TestTransactionType_MerchantCapable(t *testing.T) {
	capable := []TransactionType{TypePurchase, TypePayment, TypeRefund, TypeVoid, TypeDeposit}
	for _, typ := range capable {
		if !typ.MerchantCapable() {
			t.Errorf("expected %s to be merchant capable", typ)
		}
	}

	notCapable := []TransactionType{TypeWithdrawal, TypeTransferIn, TypeTransferOut}
	for _, typ := range notCapable {
		if typ.MerchantCapable() {
			t.Errorf("expected %s to not be merchant capable", typ)
		}
	}
}

func TestLifecycle_FullChain(t *testing.T) {
	lc := NewLifecycle()
	if lc.State != StateCreated || lc.Status != StatusPending {
		t.Fatalf("unexpected initial lifecycle: %+v", lc)
	}

	lc, err := lc.BeginProcessing()
	if err != nil {
		t.Fatalf("begin processing: %v", err)
	}
	if lc.State != StateProcessing || lc.Status != StatusPending {
		t.Fatalf("unexpected lifecycle after begin: %+v", lc)
	}

	approved, err := lc.Approve()
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("unexpected status after approve: %+v", approved)
	}

	// the original value is untouched
	if lc.Status != StatusPending {
		t.Fatalf("receiver was modified: %+v", lc)
	}

	denied, err := lc.Deny()
	if err != nil {
		t.Fatalf("deny: %v", err)
	}
	if denied.Status != StatusDenied {
		t.Fatalf("unexpected status after deny: %+v", denied)
	}

	posted, err := approved.Post()
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if !posted.Posted() || posted.Status != StatusApproved {
		t.Fatalf("unexpected lifecycle after post: %+v", posted)
	}
}

func TestLifecycle_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Lifecycle
		move func(Lifecycle) (Lifecycle, error)
	}{
		{
			name: "approve before processing",
			from: NewLifecycle(),
			move: Lifecycle.Approve,
		},
		{
			name: "deny before processing",
			from: NewLifecycle(),
			move: Lifecycle.Deny,
		},
		{
			name: "post while pending",
			from: Lifecycle{State: StateProcessing, Status: StatusPending},
			move: Lifecycle.Post,
		},
		{
			name: "post twice",
			from: Lifecycle{State: StatePosted, Status: StatusApproved},
			move: Lifecycle.Post,
		},
		{
			name: "reprocess posted",
			from: Lifecycle{State: StatePosted, Status: StatusDenied},
			move: Lifecycle.BeginProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.move(tt.from)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if got != tt.from {
				t.Fatalf("failed transition moved the lifecycle: %+v", got)
			}
		})
	}
}

func TestProjectPostedBalance(t *testing.T) {
	checking := &Account{Kind: KindChecking, Balance: 1000, AvailableBalance: 800}
	savings := &Account{Kind: KindSavings, Balance: 1000}

	tests := []struct {
		name    string
		account *Account
		status  TransactionStatus
		typ     TransactionType
		amount  int64
		want    int64
	}{
		{
			name:    "approved purchase moves real balance",
			account: checking,
			status:  StatusApproved,
			typ:     TypePurchase,
			amount:  50,
			want:    950,
		},
		{
			name:    "approved deposit moves real balance",
			account: checking,
			status:  StatusApproved,
			typ:     TypeDeposit,
			amount:  50,
			want:    1050,
		},
		{
			name:    "approved void leaves balance",
			account: checking,
			status:  StatusApproved,
			typ:     TypeVoid,
			amount:  50,
			want:    1000,
		},
		{
			name:    "pending withdrawal on checking uses available balance",
			account: checking,
			status:  StatusPending,
			typ:     TypeWithdrawal,
			amount:  50,
			want:    750,
		},
		{
			name:    "pending refund on checking uses available balance",
			account: checking,
			status:  StatusPending,
			typ:     TypeRefund,
			amount:  50,
			want:    850,
		},
		{
			name:    "pending void on checking stays at real balance",
			account: checking,
			status:  StatusPending,
			typ:     TypeVoid,
			amount:  50,
			want:    1000,
		},
		{
			// pending carryover: a savings account has no available
			// balance, so the projection keeps the current balance until
			// the decision lands
			name:    "pending purchase on savings carries balance forward",
			account: savings,
			status:  StatusPending,
			typ:     TypePurchase,
			amount:  50,
			want:    1000,
		},
		{
			name:    "denied withdrawal leaves balance",
			account: savings,
			status:  StatusDenied,
			typ:     TypeWithdrawal,
			amount:  2000,
			want:    1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectPostedBalance(tt.account, tt.status, tt.typ, tt.amount)
			if got != tt.want {
				t.Errorf("ProjectPostedBalance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTransaction_Clone(t *testing.T) {
	original := &Transaction{
		ID:       "txn-1",
		Type:     TypePurchase,
		Amount:   500,
		Merchant: &Merchant{Code: "MERCH123", Name: "Coffee"},
	}

	clone := original.Clone()
	clone.Amount = 900
	clone.Merchant.Name = "Bakery"

	if original.Amount != 500 {
		t.Errorf("clone mutation leaked into original amount: %d", original.Amount)
	}
	if original.Merchant.Name != "Coffee" {
		t.Errorf("clone mutation leaked into original merchant: %s", original.Merchant.Name)
	}
}
