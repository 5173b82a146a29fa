package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iho/goteller/internal/domain"
	"github.com/iho/goteller/internal/usecase"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(newAccountsOpenCmd())
	cmd.AddCommand(newAccountsShowCmd())

	return cmd
}

func newAccountsOpenCmd() *cobra.Command {
	var (
		kind    string
		owner   string
		balance int64
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		Example: `  teller accounts open --kind checking --owner "Ada Lovelace" --balance 100000
  teller accounts open --kind savings --owner "Grace Hopper"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				account, err := a.accounts.OpenAccount(ctx, usecase.OpenAccountInput{
					Kind:           domain.AccountKind(strings.ToUpper(kind)),
					OwnerName:      owner,
					OpeningBalance: balance,
				})
				if err != nil {
					return err
				}

				renderAccount(account)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "checking", "account kind (checking or savings)")
	cmd.Flags().StringVar(&owner, "owner", "", "account owner name")
	cmd.Flags().Int64Var(&balance, "balance", 0, "opening balance in cents")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newAccountsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NUMBER",
		Short: "Show an account by its account number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				account, err := a.accounts.GetAccountByNumber(ctx, args[0])
				if err != nil {
					return err
				}

				renderAccount(account)
				return nil
			})
		},
	}
}
