package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/pathway"
	"github.com/swipewise/swipewise/internal/storage"
)

func pathwayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathway",
		Short: "Show your credit pathway plan",
		Long: `Classify your credit profile into a stage and print the stage plan:
what to focus on, the next moves, and what to avoid.`,
		RunE: runPathway,
	}

	cmd.AddCommand(profileSetCmd())

	return cmd
}

func runPathway(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	return withStore(cmd, func(store *storage.Store) error {
		profile, err := store.GetProfile(cmd.Context(), user)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("no profile yet; create one with: swipewise pathway profile")
			}
			return fmt.Errorf("failed to load profile: %w", err)
		}

		out, err := pathway.BuildPathway(profile, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to build pathway: %w", err)
		}

		fmt.Println(cli.RenderBox(
			fmt.Sprintf("Stage: %s (%d%% confidence)", out.Stage, out.Confidence),
			"Why:\n  - "+joinLines(out.StageReasons, "\n  - ")))

		fmt.Println(cli.FormatTitle("Focus now"))
		for _, focus := range out.ImmediateFocus {
			fmt.Println("  • " + focus)
		}

		fmt.Println(cli.FormatTitle("Next moves"))
		for _, move := range out.NextMoves {
			line := fmt.Sprintf("  [%s] %s", move.Priority, move.Action)
			if move.Condition != "" {
				line += cli.SubtleStyle.Render(" (when: " + move.Condition + ")")
			}
			fmt.Println(line)
		}

		fmt.Println(cli.FormatTitle("Do not"))
		for _, dont := range out.DoNots {
			fmt.Println("  ✗ " + dont)
		}

		if len(out.RecommendedCards) > 0 {
			fmt.Println(cli.FormatTitle("Card types to consider"))
			for _, card := range out.RecommendedCards {
				fmt.Println("  • " + card)
			}
		}

		if len(out.BehaviorRules) > 0 {
			fmt.Println(cli.FormatTitle("Habits"))
			for _, rule := range out.BehaviorRules {
				fmt.Println("  • " + rule)
			}
		}

		fmt.Println(cli.FormatTitle("Timeline"))
		for _, milestone := range out.Timeline {
			fmt.Printf("  %2d months: %s\n", milestone.TargetMonths, milestone.Label)
		}

		fmt.Println(cli.SubtleStyle.Render(
			"Next review: " + out.NextReviewDate.Format("January 2006")))
		return nil
	})
}

func profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Create or update your credit profile",
		RunE:  runProfileSet,
	}

	cmd.Flags().String("experience", "some", "credit experience (new, some, advanced)")
	cmd.Flags().String("intent", "both", "primary goal (score, rewards, both)")
	cmd.Flags().String("history", "thin", "credit history length (none, thin, established, long)")
	cmd.Flags().String("income", "", "income bucket, optional")
	cmd.Flags().Int("cards", 0, "how many cards you hold")
	cmd.Flags().Bool("carries-balance", false, "you carry a revolving balance")
	cmd.Flags().Bool("bnpl", false, "you use buy-now-pay-later plans")
	cmd.Flags().Bool("derogatories", false, "you have derogatory marks")
	cmd.Flags().Bool("premium", false, "you hold a premium card")
	cmd.Flags().Bool("fee-tolerant", false, "you accept annual fees")

	return cmd
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	experience, _ := cmd.Flags().GetString("experience")
	intent, _ := cmd.Flags().GetString("intent")
	history, _ := cmd.Flags().GetString("history")
	income, _ := cmd.Flags().GetString("income")
	cards, _ := cmd.Flags().GetInt("cards")
	carriesBalance, _ := cmd.Flags().GetBool("carries-balance")
	bnpl, _ := cmd.Flags().GetBool("bnpl")
	derogatories, _ := cmd.Flags().GetBool("derogatories")
	premium, _ := cmd.Flags().GetBool("premium")
	feeTolerant, _ := cmd.Flags().GetBool("fee-tolerant")

	profile := &model.CreditProfile{
		UserID:             user,
		Experience:         model.ExperienceLevel(experience),
		Intent:             model.Intent(intent),
		History:            model.HistoryBucket(history),
		IncomeBucket:       income,
		CardCount:          cards,
		CarriesBalance:     carriesBalance,
		UsesBNPL:           bnpl,
		HasDerogatories:    derogatories,
		HasPremiumCard:     premium,
		FeeTolerant:        feeTolerant,
		OnboardingComplete: true,
	}

	return withStore(cmd, func(store *storage.Store) error {
		if err := store.SaveProfile(cmd.Context(), profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Profile saved"))
		return nil
	})
}

func joinLines(lines []string, sep string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += sep
		}
		out += line
	}
	return out
}
