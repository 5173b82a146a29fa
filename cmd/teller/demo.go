package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted scenario against the in-memory store",
		Long: `Demo opens a checking account, processes an approved purchase and a
denied withdrawal, and shows that posted transactions cannot be
deleted. Everything runs in memory; nothing survives the invocation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			demoMode = true
			return withApp(cmd, runDemo)
		},
	}
}

func runDemo(ctx context.Context, a *app) error {
	fmt.Println("opening a checking account with balance 1000.00")
	account, err := a.accounts.OpenAccount(ctx, usecase.OpenAccountInput{
		Kind:           domain.KindChecking,
		OwnerName:      "Ada Lovelace",
		OpeningBalance: 100000,
	})
	if err != nil {
		return err
	}
	renderAccount(account)

	fmt.Println()
	fmt.Println("creating a 50.00 purchase at COFFEE01 and processing it")
	purchase, err := a.transactions.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Type:          domain.TypePurchase,
		Method:        domain.MethodApp,
		Amount:        5000,
		AccountNumber: account.AccountNumber,
		MerchantCode:  "COFFEE01",
		MerchantName:  "Coffee Shop",
		Description:   "flat white",
	})
	if err != nil {
		return err
	}

	receipt, err := a.transactions.ProcessTransaction(ctx, purchase)
	if err != nil {
		return err
	}
	renderReceipt(receipt)

	fmt.Println()
	fmt.Println("creating a 2000.00 withdrawal (more than the balance) and processing it")
	withdrawal, err := a.transactions.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Type:          domain.TypeWithdrawal,
		Method:        domain.MethodATM,
		Amount:        200000,
		AccountNumber: account.AccountNumber,
	})
	if err != nil {
		return err
	}

	receipt, err = a.transactions.ProcessTransaction(ctx, withdrawal)
	if err != nil {
		return err
	}
	renderReceipt(receipt)

	fmt.Println()
	fmt.Println("deleting the posted purchase must be refused")
	err = a.transactions.DeleteTransaction(ctx, purchase.ID)
	if err == nil {
		return errors.New("demo: posted transaction was deleted")
	}
	fmt.Printf("delete refused: %v\n", err)

	final, err := a.accounts.GetAccountByNumber(ctx, account.AccountNumber)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("final account state")
	renderAccount(final)

	return nil
}
