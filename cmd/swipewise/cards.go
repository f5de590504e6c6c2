package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/storage"
)

func cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage the card catalog",
	}

	cmd.AddCommand(cardsListCmd())
	cmd.AddCommand(cardsLoadCmd())

	return cmd
}

func cardsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all known cards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(store *storage.Store) error {
				cards, err := store.ListCards(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list cards: %w", err)
				}
				if len(cards) == 0 {
					fmt.Println(cli.FormatInfo("No cards yet. Load a catalog with: swipewise cards load <file.json>"))
					return nil
				}
				for _, card := range cards {
					fmt.Printf("%-24s %-32s base %.1fx  fee $%.0f  rules %d\n",
						card.ID, card.Name, card.BaseRate, card.AnnualFee, len(card.Rules))
				}
				return nil
			})
		},
	}
}

func cardsLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.json>",
		Short: "Load card definitions from a JSON file",
		Long: `Load a JSON array of card definitions into the catalog. Existing cards
with the same ID are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0]) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to read card file: %w", err)
			}

			var cards []model.Card
			if err := json.Unmarshal(data, &cards); err != nil {
				return fmt.Errorf("failed to parse card file: %w", err)
			}

			return withStore(cmd, func(store *storage.Store) error {
				for i := range cards {
					cards[i].Kind = model.CardKindDB
					if err := store.SaveCard(cmd.Context(), &cards[i]); err != nil {
						return fmt.Errorf("failed to save card %s: %w", cards[i].ID, err)
					}
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Loaded %d cards", len(cards))))
				return nil
			})
		},
	}
}

// withStore opens and migrates the store, runs fn, then closes.
func withStore(cmd *cobra.Command, fn func(*storage.Store) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return fn(store)
}
