package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/ofx"
	"github.com/swipewise/swipewise/internal/plaid"
	"github.com/swipewise/swipewise/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transaction history",
	}

	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(importPlaidCmd())

	return cmd
}

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX files exported from your bank.

Examples:
  # Import a single file
  swipewise import ofx ~/Downloads/chase_jan_2026.qfx

  # Import everything in a directory
  swipewise import ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		allFiles = append(allFiles, matches...)
	}
	if len(allFiles) == 0 {
		return fmt.Errorf("no files to import")
	}

	return withStore(cmd, func(store *storage.Store) error {
		parser := ofx.NewParser()
		ctx := cmd.Context()

		bar := progressbar.NewOptions(len(allFiles),
			progressbar.OptionSetWriter(os.Stdout),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing statements..."),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)

		var parsed, saved int
		for _, file := range allFiles {
			f, err := os.Open(file) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", file, err)
			}

			txns, err := parser.ParseFile(ctx, f)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", file, err)
			}
			parsed += len(txns)

			if !dryRun {
				n, err := store.SaveTransactions(ctx, txns)
				if err != nil {
					return fmt.Errorf("failed to save transactions from %s: %w", file, err)
				}
				saved += n
			}
			_ = bar.Add(1)
		}

		if dryRun {
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions in %d files", parsed, len(allFiles))))
			return nil
		}

		// Saved can be lower than parsed; duplicate hashes are skipped.
		fmt.Println(cli.FormatSuccess(fmt.Sprintf(
			"Imported %d new transactions (%d parsed, %d duplicates skipped)",
			saved, parsed, parsed-saved)))
		return nil
	})
}

func importPlaidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Import transactions from Plaid",
		RunE:  runImportPlaid,
	}

	cmd.Flags().Int("months", 3, "how many months of history to fetch")

	return cmd
}

func runImportPlaid(cmd *cobra.Command, _ []string) error {
	months, _ := cmd.Flags().GetInt("months")

	client, err := plaid.NewClient(plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
		AccessToken: viper.GetString("plaid.access_token"),
	})
	if err != nil {
		return err
	}

	return withStore(cmd, func(store *storage.Store) error {
		ctx := cmd.Context()
		end := time.Now().UTC()
		start := end.AddDate(0, -months, 0)

		txns, err := client.GetTransactions(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to fetch transactions: %w", err)
		}

		saved, err := store.SaveTransactions(ctx, txns)
		if err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}

		fmt.Println(cli.FormatSuccess(fmt.Sprintf(
			"Imported %d new transactions (%d fetched, %d duplicates skipped)",
			saved, len(txns), len(txns)-saved)))
		return nil
	})
}
