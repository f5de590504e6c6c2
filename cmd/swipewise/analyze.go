package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/diagnostics"
	"github.com/swipewise/swipewise/internal/heuristic"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/sheets"
	"github.com/swipewise/swipewise/internal/storage"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run wallet diagnostics over imported transactions",
		Long: `Scan imported transaction history for recurring subscriptions, unused
card credits, and rewards lost to wrong-card spending.`,
		RunE: runAnalyze,
	}

	cmd.Flags().Int("months", 6, "how many months of history to analyze")
	cmd.Flags().Bool("export", false, "export the report to Google Sheets")
	cmd.Flags().Bool("reresolve", false, "persist re-resolved categories for unknown transactions")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	months, _ := cmd.Flags().GetInt("months")
	export, _ := cmd.Flags().GetBool("export")
	reresolve, _ := cmd.Flags().GetBool("reresolve")

	user, err := requireUser()
	if err != nil {
		return err
	}

	return withStore(cmd, func(store *storage.Store) error {
		ctx := cmd.Context()
		now := time.Now().UTC()
		since := now.AddDate(0, -months, 0)

		txns, err := store.ListTransactions(ctx, since)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		if len(txns) == 0 {
			fmt.Println(cli.FormatInfo("No transactions to analyze. Import some with: swipewise import ofx"))
			return nil
		}

		wallet, err := store.GetWallet(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to load wallet: %w", err)
		}

		if reresolve {
			if err := reresolveCategories(ctx, store, txns); err != nil {
				return err
			}
		} else {
			categorize(txns)
		}

		subs := diagnostics.DetectSubscriptions(txns)
		benefits := diagnostics.FindMissedBenefits(wallet, txns, now)
		opportunity := diagnostics.AnalyzeOpportunityCost(wallet, txns)

		printSubscriptions(subs)
		printMissedBenefits(benefits)
		printOpportunity(opportunity)

		if export {
			return exportReport(cmd, &sheets.Report{
				DateRange:      sheets.DateRange{Start: since, End: now},
				Subscriptions:  subs,
				MissedBenefits: benefits,
				Opportunity:    opportunity,
			})
		}
		return nil
	})
}

// categorize fills in unknown transaction categories from the merchant
// name heuristics. Low confidence is fine here; diagnostics aggregate.
func categorize(txns []model.Transaction) {
	classifier, err := heuristic.NewDefaultClassifier()
	if err != nil {
		return
	}
	for i := range txns {
		if txns[i].Category != model.CategoryUnknown && txns[i].Category != "" {
			continue
		}
		if res := classifier.Classify("", txns[i].MerchantName); res != nil {
			txns[i].Category = res.Category
		}
	}
}

// reresolveCategories is the persistent variant of categorize: classifier
// hits on unknown transactions are written back to the store.
func reresolveCategories(ctx context.Context, store *storage.Store, txns []model.Transaction) error {
	classifier, err := heuristic.NewDefaultClassifier()
	if err != nil {
		return fmt.Errorf("failed to build heuristic classifier: %w", err)
	}

	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Re-resolving categories..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	updated := 0
	for i := range txns {
		_ = bar.Add(1)
		if txns[i].Category != model.CategoryUnknown && txns[i].Category != "" {
			continue
		}
		res := classifier.Classify("", txns[i].MerchantName)
		if res == nil {
			continue
		}
		if err := store.UpdateTransactionCategory(ctx, txns[i].Hash, res.Category); err != nil {
			return fmt.Errorf("failed to update %s: %w", txns[i].MerchantName, err)
		}
		txns[i].Category = res.Category
		updated++
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Re-resolved %d transactions", updated)))
	return nil
}

func printSubscriptions(subs []diagnostics.SubscriptionCandidate) {
	fmt.Println(cli.FormatTitle("Recurring subscriptions"))
	if len(subs) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  none detected"))
		return
	}
	for _, sub := range subs {
		fmt.Printf("  %-28s %-8s $%-8.2f ~$%.0f/yr  (%s confidence)\n",
			sub.MerchantName, sub.Cadence, sub.Amount, sub.AnnualCost, sub.Confidence)
	}
}

func printMissedBenefits(benefits []diagnostics.MissedBenefit) {
	fmt.Println(cli.FormatTitle("Unused card credits"))
	if len(benefits) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  all credits used this period"))
		return
	}
	for _, b := range benefits {
		fmt.Printf("  %-28s %-28s $%.0f %s\n", b.CardName, b.BenefitName, b.Amount, b.Period)
	}
}

func printOpportunity(report *diagnostics.OpportunityReport) {
	fmt.Println(cli.FormatTitle("Opportunity cost"))
	if report == nil || report.Transactions == 0 {
		fmt.Println(cli.SubtleStyle.Render("  nothing to compare"))
		return
	}
	fmt.Printf("  %d transactions, %.0f points earned, %.0f available\n",
		report.Transactions, report.TotalEarned, report.TotalBest)
	if missed := report.TotalMissed(); missed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%.0f points left on the table", missed)))
		for _, miss := range report.Categories {
			if miss.PointsMissed() <= 0 {
				continue
			}
			fmt.Printf("  %-18s $%-8.0f spend: use %s (+%.0f points)\n",
				miss.Category, miss.Spend, miss.BestCardName, miss.PointsMissed())
		}
	}
}

func exportReport(cmd *cobra.Command, report *sheets.Report) error {
	cfg := sheets.DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}

	writer, err := sheets.NewWriter(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	if err := writer.Write(cmd.Context(), report); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	fmt.Println(cli.FormatSuccess("Report exported to Google Sheets"))
	return nil
}
