package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"zenith/internal/bootstrap"
	financedto "zenith/internal/modules/finance/dto"
	"zenith/internal/platform/clock"
	financeview "zenith/internal/ui/views/finance"
)

func newFinanceCmd(o *rootOptions) *cobra.Command {
	finance := &cobra.Command{Use: "finance", Short: "Income and expenses"}

	finance.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List transactions, newest date first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				txs := app.FinanceCLI.List(ctx)
				if len(txs) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no transactions")
					return nil
				}
				for _, t := range txs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, financeview.Money(t.Signed), t.Category, t.Title)
				}
				return nil
			})
		},
	})

	var in financedto.TransactionInput
	add := &cobra.Command{
		Use:   "add --type <income|expense> --amount <n> --category <c> --title <t>",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("title", in.Title); err != nil {
				return err
			}
			input := in
			if input.Date == "" {
				input.Date = time.Now().Format(time.DateOnly)
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				id, err := app.FinanceCLI.Add(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "transaction added: %s\n", id)
				return nil
			})
		},
	}
	transactionFlags(add, &in)

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change transaction fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", id); err != nil {
				return err
			}
			input := financedto.UpdateInput{
				ID:       id,
				Title:    optional(cmd, "title", in.Title),
				Amount:   optional(cmd, "amount", in.Amount),
				Type:     optional(cmd, "type", in.Type),
				Category: optional(cmd, "category", in.Category),
				Date:     optional(cmd, "date", in.Date),
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.FinanceCLI.Update(ctx, input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "transaction updated")
				return nil
			})
		},
	}
	update.Flags().StringVar(&id, "id", "", "transaction id")
	transactionFlags(update, &in)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.FinanceCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "transaction deleted")
				return nil
			})
		},
	}

	var period, anchor string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Income, expenses and spending by category for a month or year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := time.Now()
			if anchor != "" {
				var err error
				if at, err = clock.ParseDate(anchor, time.Local); err != nil {
					return err
				}
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.FinanceCLI.Summary(ctx, period, at)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s\nincome\t%s\nexpenses\t%s\nbalance\t%s\n",
					financeview.PeriodLabel(s), financeview.Money(s.Income), financeview.Money(s.Expenses), financeview.Money(s.Balance))
				for _, c := range s.ByCategory {
					_, _ = fmt.Fprintf(out, "  %-14s %5.1f%%  %s\n", c.Category, c.Percent, financeview.Money(c.Amount))
				}
				return nil
			})
		},
	}
	summary.Flags().StringVar(&period, "period", "month", "month or year")
	summary.Flags().StringVar(&anchor, "date", "", "any day in the period (YYYY-MM-DD, default today)")

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List the categories for each transaction type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				c := app.FinanceCLI.Categories(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "income: %s\nexpense: %s\n", strings.Join(c.Income, ", "), strings.Join(c.Expense, ", "))
				return nil
			})
		},
	}

	finance.AddCommand(add, update, del, summary, categories)
	return finance
}

func transactionFlags(cmd *cobra.Command, in *financedto.TransactionInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "description")
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "positive amount")
	cmd.Flags().StringVar(&in.Type, "type", "", "income or expense")
	cmd.Flags().StringVar(&in.Category, "category", "", "category for the type")
	cmd.Flags().StringVar(&in.Date, "date", "", "date (YYYY-MM-DD, default today)")
}
