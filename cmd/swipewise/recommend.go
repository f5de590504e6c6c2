package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/recommend"
	"github.com/swipewise/swipewise/internal/storage"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <url>",
		Short: "Pick the best wallet card for a merchant",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecommend,
	}

	cmd.Flags().String("title", "", "page title, improves heuristic matching")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	user, err := requireUser()
	if err != nil {
		return err
	}

	return withStore(cmd, func(store *storage.Store) error {
		ctx := cmd.Context()

		resolver, err := buildResolver(store, nil)
		if err != nil {
			return err
		}

		mc, err := resolver.Resolve(ctx, args[0], title)
		if err != nil {
			return err
		}

		wallet, err := store.GetWallet(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to load wallet: %w", err)
		}

		rec := recommend.New().Recommend(mc, wallet)
		if rec.NoWallet {
			fmt.Println(cli.FormatWarning("No cards in your wallet yet. Add some with: swipewise wallet add <card-id>"))
			return nil
		}

		if rec.Best != nil {
			content := fmt.Sprintf("%s\n%s",
				cli.BoldStyle.Render(fmt.Sprintf("%s  (%.1fx)", rec.Best.Card.Name, rec.Best.EffectiveMultiplier)),
				rec.Reason)
			fmt.Println(cli.RenderBox(fmt.Sprintf("Best card at %s", mc.MerchantName), content))
		}

		if len(rec.Alternatives) > 0 {
			fmt.Println(cli.SubtleStyle.Render("Alternatives:"))
			for _, alt := range rec.Alternatives {
				fmt.Println(cli.SubtleStyle.Render("  " + formatRankedCard(alt)))
			}
		}
		return nil
	})
}

func formatRankedCard(rc model.RankedCard) string {
	if rc.Excluded {
		return fmt.Sprintf("%-28s excluded: %s", rc.Card.Name, rc.ExclusionReason)
	}
	return fmt.Sprintf("%-28s %.1fx", rc.Card.Name, rc.EffectiveMultiplier)
}
