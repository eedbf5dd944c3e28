package cmd

import (
	"firefly-assistant/internal/app"
	"firefly-assistant/internal/dto"

	"github.com/spf13/cobra"
)

func newVocabCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the ledger's categories and tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd.Context(), opts, func(deps *app.Deps) error {
				vocab, err := deps.Vocabulary.Fetch(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.TagsAndCategoriesResponse{
					Categories: vocab.CategoryNames(),
					Tags:       vocab.TagNames(),
				})
			})
		},
	}
}

func newAccountsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List ledger accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd.Context(), opts, func(deps *app.Deps) error {
				accounts, err := deps.Ledger.Accounts(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), accounts)
			})
		},
	}
}

func newTransactionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "Show the latest ledger transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd.Context(), opts, func(deps *app.Deps) error {
				transactions, err := deps.Ledger.LatestTransactions(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), transactions)
			})
		},
	}
}
