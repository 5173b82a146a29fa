package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/iho/goteller/internal/domain"
)

// printJSON pretty-prints v to stdout.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode json: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// truncate shortens s to at most max bytes, ellipsized.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

type accountView struct {
	ID                 string    `json:"id"`
	AccountNumber      string    `json:"accountNumber"`
	Kind               string    `json:"kind"`
	OwnerName          string    `json:"ownerName"`
	Balance            int64     `json:"balance"`
	FormattedBalance   string    `json:"formattedBalance"`
	AvailableBalance   *int64    `json:"availableBalance,omitempty"`
	FormattedAvailable string    `json:"formattedAvailable,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func newAccountView(account *domain.Account) accountView {
	view := accountView{
		ID:               account.ID,
		AccountNumber:    account.AccountNumber,
		Kind:             string(account.Kind),
		OwnerName:        account.OwnerName,
		Balance:          account.Balance,
		FormattedBalance: domain.FormatAmount(account.Balance),
		CreatedAt:        account.CreatedAt,
	}

	if account.HasAvailableBalance() {
		available := account.AvailableBalance
		view.AvailableBalance = &available
		view.FormattedAvailable = domain.FormatAmount(available)
	}

	return view
}

func renderAccount(account *domain.Account) {
	if jsonOut {
		printJSON(newAccountView(account))
		return
	}

	fmt.Printf("Account:   %s (%s)\n", account.AccountNumber, account.Kind)
	fmt.Printf("Owner:     %s\n", account.OwnerName)
	fmt.Printf("Balance:   %s\n", domain.FormatAmount(account.Balance))
	if account.HasAvailableBalance() {
		fmt.Printf("Available: %s\n", domain.FormatAmount(account.AvailableBalance))
	}
	fmt.Printf("Opened:    %s\n", account.CreatedAt.Format(time.RFC3339))
}

type transactionView struct {
	ID              string                  `json:"id"`
	Type            string                  `json:"type"`
	Method          string                  `json:"method"`
	Amount          int64                   `json:"amount"`
	FormattedAmount string                  `json:"formattedAmount"`
	State           string                  `json:"state"`
	Status          string                  `json:"status"`
	InitialBalance  int64                   `json:"initialBalance"`
	PostedBalance   int64                   `json:"postedBalance"`
	AccountID       string                  `json:"accountId"`
	Merchant        *domain.MerchantSummary `json:"merchant,omitempty"`
	Description     string                  `json:"description,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	PostedAt        *time.Time              `json:"postedAt,omitempty"`
}

func newTransactionView(txn *domain.Transaction) transactionView {
	view := transactionView{
		ID:              txn.ID,
		Type:            string(txn.Type),
		Method:          string(txn.Method),
		Amount:          txn.Amount,
		FormattedAmount: domain.FormatAmount(txn.Amount),
		State:           string(txn.Lifecycle.State),
		Status:          string(txn.Lifecycle.Status),
		InitialBalance:  txn.InitialBalance,
		PostedBalance:   txn.PostedBalance,
		AccountID:       txn.AccountID,
		Description:     txn.Description,
		CreatedAt:       txn.CreatedAt,
		PostedAt:        txn.PostedAt,
	}

	if txn.Merchant != nil {
		view.Merchant = &domain.MerchantSummary{Code: txn.Merchant.Code, Name: txn.Merchant.Name}
	}

	return view
}

func renderTransaction(txn *domain.Transaction) {
	if jsonOut {
		printJSON(newTransactionView(txn))
		return
	}

	fmt.Printf("Transaction: %s\n", txn.ID)
	fmt.Printf("Type:        %s via %s\n", txn.Type, txn.Method)
	fmt.Printf("Amount:      %s\n", domain.FormatAmount(txn.Amount))
	fmt.Printf("Lifecycle:   %s/%s\n", txn.Lifecycle.State, txn.Lifecycle.Status)
	fmt.Printf("Balances:    initial %s, posted %s\n",
		domain.FormatAmount(txn.InitialBalance), domain.FormatAmount(txn.PostedBalance))
	if txn.Merchant != nil {
		fmt.Printf("Merchant:    %s (%s)\n", txn.Merchant.Name, txn.Merchant.Code)
	}
	if txn.Description != "" {
		fmt.Printf("Description: %s\n", txn.Description)
	}
	fmt.Printf("Created:     %s\n", txn.CreatedAt.Format(time.RFC3339))
	if txn.PostedAt != nil {
		fmt.Printf("Posted:      %s\n", txn.PostedAt.Format(time.RFC3339))
	}
}

func renderReceipt(receipt *domain.Receipt) {
	if jsonOut {
		printJSON(receipt)
		return
	}

	fmt.Printf("Receipt %s\n", receipt.TransactionID)
	fmt.Printf("Account:   %s\n", receipt.AccountNumber)
	fmt.Printf("Type:      %s via %s\n", receipt.Type, receipt.Method)
	fmt.Printf("Amount:    %s\n", receipt.FormattedAmount)
	fmt.Printf("Decision:  %s (%s)\n", receipt.Status, receipt.State)
	fmt.Printf("Balance:   %s -> %s\n",
		domain.FormatAmount(receipt.InitialBalance), domain.FormatAmount(receipt.PostedBalance))
	if receipt.Merchant != nil {
		fmt.Printf("Merchant:  %s (%s)\n", receipt.Merchant.Name, receipt.Merchant.Code)
	}
	if receipt.Description != "" {
		fmt.Printf("For:       %s\n", receipt.Description)
	}
	if !receipt.PostedAt.IsZero() {
		fmt.Printf("Posted at: %s\n", receipt.PostedAt.Format(time.RFC3339))
	}
}

func renderTransactionList(txns []*domain.Transaction) {
	if jsonOut {
		views := make([]transactionView, 0, len(txns))
		for _, txn := range txns {
			views = append(views, newTransactionView(txn))
		}
		printJSON(views)
		return
	}

	if len(txns) == 0 {
		fmt.Println("no transactions")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tMETHOD\tAMOUNT\tSTATE\tSTATUS\tPOSTED BALANCE\tDESCRIPTION")
	for _, txn := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.ID, txn.Type, txn.Method,
			domain.FormatAmount(txn.Amount),
			txn.Lifecycle.State, txn.Lifecycle.Status,
			domain.FormatAmount(txn.PostedBalance),
			truncate(txn.Description, 24),
		)
	}
	_ = w.Flush()
}
