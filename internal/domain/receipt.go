package domain

import "time"

// MerchantSummary is the merchant slice of a receipt.
type MerchantSummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Receipt is the read-only projection of a processed transaction. The
// account number is masked; amounts carry a formatted rendering alongside
// the minor-unit integer.
type Receipt struct {
	TransactionID   string            `json:"transactionId"`
	Type            TransactionType   `json:"type"`
	Method          TransactionMethod `json:"method"`
	Amount          int64             `json:"amount"`
	FormattedAmount string            `json:"formattedAmount"`
	Status          TransactionStatus `json:"status"`
	State           TransactionState  `json:"state"`
	InitialBalance  int64             `json:"initialBalance"`
	PostedBalance   int64             `json:"postedBalance"`
	AccountNumber   string            `json:"accountNumber"`
	Description     string            `json:"description,omitempty"`
	Merchant        *MerchantSummary  `json:"merchant,omitempty"`
	PostedAt        time.Time         `json:"postedAt"`
}

// NewReceipt builds a receipt from a transaction and the account it
// settled against.
func NewReceipt(txn *Transaction, account *Account) *Receipt {
	r := &Receipt{
		TransactionID:   txn.ID,
		Type:            txn.Type,
		Method:          txn.Method,
		Amount:          txn.Amount,
		FormattedAmount: FormatAmount(txn.Amount),
		Status:          txn.Lifecycle.Status,
		State:           txn.Lifecycle.State,
		InitialBalance:  txn.InitialBalance,
		PostedBalance:   txn.PostedBalance,
		AccountNumber:   MaskAccountNumber(account.AccountNumber),
		Description:     txn.Description,
	}

	if txn.PostedAt != nil {
		r.PostedAt = *txn.PostedAt
	}

	if txn.Merchant != nil {
		r.Merchant = &MerchantSummary{Code: txn.Merchant.Code, Name: txn.Merchant.Name}
	}

	return r
}
