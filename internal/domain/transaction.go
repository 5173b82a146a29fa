package domain

import (
	"fmt"
	"time"
)

// TransactionType identifies what kind of money movement a transaction is.
type TransactionType string

const (
	TypePurchase    TransactionType = "PURCHASE"
	TypePayment     TransactionType = "PAYMENT"
	TypeRefund      TransactionType = "REFUND"
	TypeVoid        TransactionType = "VOID"
	TypeDeposit     TransactionType = "DEPOSIT"
	TypeWithdrawal  TransactionType = "WITHDRAWAL"
	TypeTransferIn  TransactionType = "TRANSFER_IN"
	TypeTransferOut TransactionType = "TRANSFER_OUT"
)

// Direction is the way a transaction type moves an account balance.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionIncreasing
	DirectionDecreasing
)

// transactionDirections is the single source of truth for balance
// direction. A type is increasing, decreasing, or directionless; it can
// never be two of those at once.
var transactionDirections = map[TransactionType]Direction{
	TypeDeposit:     DirectionIncreasing,
	TypeRefund:      DirectionIncreasing,
	TypeTransferIn:  DirectionIncreasing,
	TypePurchase:    DirectionDecreasing,
	TypePayment:     DirectionDecreasing,
	TypeWithdrawal:  DirectionDecreasing,
	TypeTransferOut: DirectionDecreasing,
	TypeVoid:        DirectionNone,
}

// merchantCapableTypes lists the types that settle against a merchant.
var merchantCapableTypes = map[TransactionType]bool{
	TypePurchase: true,
	TypePayment:  true,
	TypeRefund:   true,
	TypeVoid:     true,
	TypeDeposit:  true,
}

// Direction returns the balance direction of the type.
func (t TransactionType) Direction() Direction {
	return transactionDirections[t]
}

// IsIncreasing reports whether the type adds to the account balance.
func (t TransactionType) IsIncreasing() bool {
	return t.Direction() == DirectionIncreasing
}

// IsDecreasing reports whether the type subtracts from the account balance.
func (t TransactionType) IsDecreasing() bool {
	return t.Direction() == DirectionDecreasing
}

// MerchantCapable reports whether the type settles against a merchant.
func (t TransactionType) MerchantCapable() bool {
	return merchantCapableTypes[t]
}

// Valid reports whether the type is known.
func (t TransactionType) Valid() bool {
	_, ok := transactionDirections[t]
	return ok
}

// TransactionMethod is the payment channel a transaction arrived through.
type TransactionMethod string

const (
	MethodACH   TransactionMethod = "ACH"
	MethodATM   TransactionMethod = "ATM"
	MethodCard  TransactionMethod = "CARD"
	MethodCheck TransactionMethod = "CHECK"
	MethodApp   TransactionMethod = "APP"
)

var validMethods = map[TransactionMethod]bool{
	MethodACH:   true,
	MethodATM:   true,
	MethodCard:  true,
	MethodCheck: true,
	MethodApp:   true,
}

// Valid reports whether the method is known.
func (m TransactionMethod) Valid() bool {
	return validMethods[m]
}

// TransactionStatus is the approval decision of a transaction.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusDenied   TransactionStatus = "DENIED"
)

// TransactionState is the processing progress of a transaction.
type TransactionState string

const (
	StateCreated    TransactionState = "CREATED"
	StateProcessing TransactionState = "PROCESSING"
	StatePosted     TransactionState = "POSTED"
)

// Lifecycle pairs processing state with approval status. Values move only
// along the transition table, so combinations like POSTED/PENDING cannot
// be reached.
//
// Transitions: CREATED/PENDING -> PROCESSING/PENDING ->
// PROCESSING/APPROVED or PROCESSING/DENIED -> POSTED/APPROVED or
// POSTED/DENIED. POSTED is terminal.
type Lifecycle struct {
	State  TransactionState
	Status TransactionStatus
}

// NewLifecycle returns the lifecycle every transaction starts in.
func NewLifecycle() Lifecycle {
	return Lifecycle{State: StateCreated, Status: StatusPending}
}

var lifecycleTransitions = map[Lifecycle][]Lifecycle{
	{StateCreated, StatusPending}: {
		{StateProcessing, StatusPending},
	},
	{StateProcessing, StatusPending}: {
		{StateProcessing, StatusApproved},
		{StateProcessing, StatusDenied},
	},
	{StateProcessing, StatusApproved}: {
		{StatePosted, StatusApproved},
	},
	{StateProcessing, StatusDenied}: {
		{StatePosted, StatusDenied},
	},
}

// CanTransition reports whether moving to next is legal.
func (l Lifecycle) CanTransition(next Lifecycle) bool {
	for _, allowed := range lifecycleTransitions[l] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns the lifecycle after moving to next. The receiver is
// not modified.
func (l Lifecycle) Transition(next Lifecycle) (Lifecycle, error) {
	if !l.CanTransition(next) {
		return l, fmt.Errorf("%w: %s/%s to %s/%s",
			ErrInvalidTransition, l.State, l.Status, next.State, next.Status)
	}
	return next, nil
}

// BeginProcessing moves a created transaction into processing.
func (l Lifecycle) BeginProcessing() (Lifecycle, error) {
	return l.Transition(Lifecycle{State: StateProcessing, Status: StatusPending})
}

// Approve settles a pending transaction as approved.
func (l Lifecycle) Approve() (Lifecycle, error) {
	return l.Transition(Lifecycle{State: StateProcessing, Status: StatusApproved})
}

// Deny settles a pending transaction as denied.
func (l Lifecycle) Deny() (Lifecycle, error) {
	return l.Transition(Lifecycle{State: StateProcessing, Status: StatusDenied})
}

// Post moves a settled transaction into its terminal state.
func (l Lifecycle) Post() (Lifecycle, error) {
	return l.Transition(Lifecycle{State: StatePosted, Status: l.Status})
}

// Posted reports whether the lifecycle reached its terminal state.
func (l Lifecycle) Posted() bool {
	return l.State == StatePosted
}

// Transaction is a single money movement against an account. Amounts are
// integers in the smallest currency unit.
type Transaction struct {
	ID             string
	Type           TransactionType
	Method         TransactionMethod
	Amount         int64
	Lifecycle      Lifecycle
	InitialBalance int64
	PostedBalance  int64
	AccountID      string
	Merchant       *Merchant
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PostedAt       *time.Time
}

// Clone returns a copy safe to mutate while the original stays intact.
func (t *Transaction) Clone() *Transaction {
	clone := *t
	if t.Merchant != nil {
		m := *t.Merchant
		clone.Merchant = &m
	}
	if t.PostedAt != nil {
		at := *t.PostedAt
		clone.PostedAt = &at
	}
	return &clone
}

// ProjectPostedBalance computes the balance a transaction of the given
// type and amount would leave on account, under the given status. Cases,
// checked in order:
//
//  1. approved: the real balance moves by the amount
//  2. pending on an account with an available balance: the available
//     balance moves by the amount (directionless types stay at the real
//     balance); this case short-circuits
//  3. pending otherwise: the current real balance is carried forward
//     unmodified (pending carryover)
//  4. denied, or a directionless type elsewhere: the current real balance
func ProjectPostedBalance(account *Account, status TransactionStatus, typ TransactionType, amount int64) int64 {
	projected := account.Balance

	switch status {
	case StatusApproved:
		switch typ.Direction() {
		case DirectionIncreasing:
			projected = account.Balance + amount
		case DirectionDecreasing:
			projected = account.Balance - amount
		}
	case StatusPending:
		if account.HasAvailableBalance() {
			switch typ.Direction() {
			case DirectionIncreasing:
				projected = account.AvailableBalance + amount
			case DirectionDecreasing:
				projected = account.AvailableBalance - amount
			}
			return projected
		}
		// pending carryover: accounts without an available balance keep
		// the current balance until the decision lands
	}

	return projected
}
