package main

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/storage"
)

func overridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage approved merchant overrides",
		Long: `Overrides pin a domain to a category and win over every other
resolution tier. They are created here directly or by approving AI
suggestions in the review queue.`,
	}

	cmd.AddCommand(overridesListCmd())
	cmd.AddCommand(overridesSetCmd())
	cmd.AddCommand(overridesDeleteCmd())

	return cmd
}

func overridesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(store *storage.Store) error {
				overrides, err := store.ListOverrides(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list overrides: %w", err)
				}
				if len(overrides) == 0 {
					fmt.Println(cli.FormatInfo("No overrides yet."))
					return nil
				}
				for _, o := range overrides {
					fmt.Printf("%-32s %-18s approved by %s on %s\n",
						o.Domain, o.Category, o.ApprovedBy, o.ApprovedAt.Format("2006-01-02"))
				}
				return nil
			})
		},
	}
}

func overridesSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <domain> <category>",
		Short: "Pin a domain to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := model.ParseCategory(args[1])
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			return withStore(cmd, func(store *storage.Store) error {
				err := store.SetOverride(cmd.Context(), &model.MerchantOverride{
					Domain:     args[0],
					Name:       name,
					Category:   category,
					ApprovedBy: localUser(),
				})
				if err != nil {
					return fmt.Errorf("failed to set override: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s pinned to %s", args[0], category)))
				return nil
			})
		},
	}

	cmd.Flags().String("name", "", "display name for the merchant")

	return cmd
}

func overridesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <domain>",
		Short: "Remove an override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(store *storage.Store) error {
				if err := store.DeleteOverride(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to delete override: %w", err)
				}
				fmt.Println(cli.FormatSuccess(args[0] + " override removed"))
				return nil
			})
		},
	}
}

// localUser is the reviewer identity recorded on approvals.
func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "admin"
}
