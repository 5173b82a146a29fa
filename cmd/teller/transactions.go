package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	cmd.AddCommand(newTxCreateCmd())
	cmd.AddCommand(newTxProcessCmd())
	cmd.AddCommand(newTxShowCmd())
	cmd.AddCommand(newTxReceiptCmd())
	cmd.AddCommand(newTxListCmd())
	cmd.AddCommand(newTxDeleteCmd())

	return cmd
}

func newTxCreateCmd() *cobra.Command {
	var (
		accountNumber string
		txType        string
		method        string
		amount        int64
		cardNumber    string
		merchantCode  string
		merchantName  string
		description   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pending transaction against an account",
		Example: `  teller tx create --account 0010001000 --type PURCHASE --method APP \
    --amount 5000 --merchant-code COFFEE01 --merchant-name "Coffee Shop"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				txn, err := a.transactions.CreateTransaction(ctx, usecase.CreateTransactionInput{
					Type:          domain.TransactionType(strings.ToUpper(txType)),
					Method:        domain.TransactionMethod(strings.ToUpper(method)),
					Amount:        amount,
					AccountNumber: accountNumber,
					CardNumber:    cardNumber,
					MerchantCode:  strings.ToUpper(merchantCode),
					MerchantName:  merchantName,
					Description:   description,
				})
				if err != nil {
					return err
				}

				renderTransaction(txn)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "account number to transact against")
	cmd.Flags().StringVar(&txType, "type", "", "transaction type (PURCHASE, PAYMENT, REFUND, VOID, DEPOSIT, WITHDRAWAL, TRANSFER_IN, TRANSFER_OUT)")
	cmd.Flags().StringVar(&method, "method", "", "payment method (ACH, ATM, CARD, CHECK, APP)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in cents")
	cmd.Flags().StringVar(&cardNumber, "card", "", "card number (card services are unavailable; requests are rejected)")
	cmd.Flags().StringVar(&merchantCode, "merchant-code", "", "merchant code for merchant-capable types")
	cmd.Flags().StringVar(&merchantName, "merchant-name", "", "merchant name, registered on first use")
	cmd.Flags().StringVar(&description, "desc", "", "free-text description")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("method")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTxProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process ID",
		Short: "Run a transaction through the processing pipeline",
		Long: `Process performs, validates and posts the transaction in one unit of
work, then prints the receipt. Posted transactions cannot be processed
again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				txn, err := a.transactions.GetTransaction(ctx, args[0])
				if err != nil {
					return err
				}

				receipt, err := a.transactions.ProcessTransaction(ctx, txn)
				if err != nil {
					return err
				}

				renderReceipt(receipt)
				return nil
			})
		},
	}
}

func newTxShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				txn, err := a.transactions.GetTransaction(ctx, args[0])
				if err != nil {
					return err
				}

				renderTransaction(txn)
				return nil
			})
		},
	}
}

func newTxReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt ID",
		Short: "Show the receipt of a posted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				receipt, err := a.transactions.GetReceipt(ctx, args[0])
				if err != nil {
					return err
				}

				renderReceipt(receipt)
				return nil
			})
		},
	}
}

func newTxListCmd() *cobra.Command {
	var (
		accountNumber string
		limit         int
		offset        int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions of an account, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				txns, err := a.transactions.ListTransactionsByAccount(ctx, accountNumber, limit, offset)
				if err != nil {
					return err
				}

				renderTransactionList(txns)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "account number to list")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of transactions")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of transactions to skip")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newTxDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a transaction that has not posted yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.transactions.DeleteTransaction(ctx, args[0]); err != nil {
					return err
				}

				if jsonOut {
					printJSON(struct {
						Deleted string `json:"deleted"`
					}{Deleted: args[0]})
					return nil
				}

				fmt.Printf("transaction %s deleted\n", args[0])
				return nil
			})
		},
	}
}
