package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/storage"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve a checkout URL to a merchant category",
		Long: `Run the merchant resolution chain for a URL: approved overrides first,
then the curated registry, then URL heuristics, then the AI classifier.
The full decision trace is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().String("title", "", "page title, improves heuristic matching")
	cmd.Flags().Bool("fast", false, "skip the AI tier")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	fast, _ := cmd.Flags().GetBool("fast")

	return withStore(cmd, func(store *storage.Store) error {
		resolver, err := buildResolver(store, nil)
		if err != nil {
			return err
		}

		resolve := resolver.Resolve
		if fast {
			resolve = resolver.ResolveFast
		}

		mc, err := resolve(cmd.Context(), args[0], title)
		if err != nil {
			return err
		}

		content := fmt.Sprintf(
			"Merchant:   %s\nCategory:   %s\nConfidence: %s\nSource:     %s",
			mc.MerchantName, mc.Category, mc.Confidence, mc.Source)
		if mc.IsWarehouse {
			content += "\nWarehouse:  yes"
		}
		for _, exclusion := range mc.Exclusions {
			content += "\nExcluded:   " + exclusion
		}
		fmt.Println(cli.RenderBox(mc.Domain, content))

		fmt.Println(cli.SubtleStyle.Render("Trace:"))
		for _, s := range mc.Trace {
			line := fmt.Sprintf("  %-10s %s", s.Step, s.Outcome)
			if s.Detail != "" {
				line += "  " + s.Detail
			}
			fmt.Println(cli.SubtleStyle.Render(line))
		}
		return nil
	})
}
