package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/storage"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review pending merchant suggestions",
		Long: `Walk through the AI suggestion queue. Approving a suggestion promotes
it to an override; rejecting it records the reason. Ctrl+C keeps the
decisions already made.`,
		RunE: runReview,
	}
}

func runReview(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(store *storage.Store) error {
		handler := cli.NewInterruptHandler(os.Stdout)
		ctx := handler.HandleInterrupts(cmd.Context(), true)

		prompter := cli.NewPrompter(store, localUser(), os.Stdin, os.Stdout)
		_, err := prompter.Run(ctx)
		return err
	})
}
