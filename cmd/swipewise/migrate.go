package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Create or upgrade the local SQLite database. Other commands migrate
automatically; this exists for scripted setups and troubleshooting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(_ *storage.Store) error {
				fmt.Println(cli.FormatSuccess("Database is up to date"))
				return nil
			})
		},
	}
}
