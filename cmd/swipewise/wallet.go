package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/storage"
)

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage your wallet",
	}

	cmd.AddCommand(walletListCmd())
	cmd.AddCommand(walletAddCmd())
	cmd.AddCommand(walletRemoveCmd())

	return cmd
}

func walletListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cards in your wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			return withStore(cmd, func(store *storage.Store) error {
				wallet, err := store.GetWallet(cmd.Context(), user)
				if err != nil {
					return fmt.Errorf("failed to load wallet: %w", err)
				}
				if len(wallet) == 0 {
					fmt.Println(cli.FormatInfo("Your wallet is empty."))
					return nil
				}
				for _, card := range wallet {
					fmt.Printf("%-24s %-32s base %.1fx  fee $%.0f\n",
						card.ID, card.Name, card.BaseRate, card.AnnualFee)
				}
				return nil
			})
		},
	}
}

func walletAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <card-id>",
		Short: "Add a card to your wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			return withStore(cmd, func(store *storage.Store) error {
				if err := store.AddToWallet(cmd.Context(), user, args[0]); err != nil {
					return fmt.Errorf("failed to add card: %w", err)
				}
				fmt.Println(cli.FormatSuccess(args[0] + " added to wallet"))
				return nil
			})
		},
	}
}

func walletRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <card-id>",
		Short: "Remove a card from your wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			return withStore(cmd, func(store *storage.Store) error {
				if err := store.RemoveFromWallet(cmd.Context(), user, args[0]); err != nil {
					return fmt.Errorf("failed to remove card: %w", err)
				}
				fmt.Println(cli.FormatSuccess(args[0] + " removed from wallet"))
				return nil
			})
		},
	}
}
