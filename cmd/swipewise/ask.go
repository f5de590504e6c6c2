package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swipewise/swipewise/internal/askguard"
	"github.com/swipewise/swipewise/internal/cli"
	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/llm"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/storage"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a hard credit question",
		Long: `Ask a credit question through the guarded answer pipeline. Questions
built on myths or about high-risk products are blocked with an
explanation instead of answered. Every exchange is logged locally.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().String("depth", "", "answer depth (beginner, intermediate, advanced)")

	cmd.AddCommand(calibrateCmd())
	cmd.AddCommand(askLogCmd())

	return cmd
}

func askLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show your recent questions",
		Long:  `List the audit log of past questions. Logged questions are PII-redacted.`,
		RunE:  runAskLog,
	}

	cmd.Flags().Int("limit", 20, "how many entries to show")

	return cmd
}

func runAskLog(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	user, err := requireUser()
	if err != nil {
		return err
	}

	return withStore(cmd, func(store *storage.Store) error {
		entries, err := store.ListAnswers(cmd.Context(), user, limit)
		if err != nil {
			return fmt.Errorf("failed to list answers: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println(cli.FormatInfo("No questions asked yet."))
			return nil
		}
		for _, e := range entries {
			status := string(e.AnswerDepth)
			if e.Blocked {
				status = "blocked: " + e.BlockReason
			}
			fmt.Printf("%s  %-14s %-24s %s\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.QuestionType, status, e.QuestionRedacted)
		}
		return nil
	})
}

func calibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Record your calibration quiz answers",
		Long: `Answer the three-question calibration quiz. The answers tune how deep
ask responses go; without them every question is held at the gate.`,
		RunE: runCalibrate,
	}

	cmd.Flags().Bool("knows-utilization", false, "you know what credit utilization means")
	cmd.Flags().Bool("knows-apr", false, "you know how APR and interest accrual work")
	cmd.Flags().Bool("tracks-spending", false, "you track your monthly spending")

	return cmd
}

func runCalibrate(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	knowsUtilization, _ := cmd.Flags().GetBool("knows-utilization")
	knowsAPR, _ := cmd.Flags().GetBool("knows-apr")
	tracksSpending, _ := cmd.Flags().GetBool("tracks-spending")

	return withStore(cmd, func(store *storage.Store) error {
		err := store.SaveCalibration(cmd.Context(), &model.CalibrationAnswers{
			UserID:           user,
			KnowsUtilization: knowsUtilization,
			KnowsAPR:         knowsAPR,
			TracksSpending:   tracksSpending,
			Completed:        true,
		})
		if err != nil {
			return fmt.Errorf("failed to save calibration: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Calibration saved"))
		return nil
	})
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	depthFlag, _ := cmd.Flags().GetString("depth")

	depth := model.AnswerDepth(depthFlag)
	if depthFlag != "" && !depth.Valid() {
		return fmt.Errorf("%w: depth must be beginner, intermediate, or advanced", common.ErrInvalidConfig)
	}

	user, err := requireUser()
	if err != nil {
		return err
	}

	client, err := llmClientFromConfig()
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("%w: ask requires an AI provider; set ai.provider and ai.api_key", common.ErrMissingConfig)
	}

	return withStore(cmd, func(store *storage.Store) error {
		ctx := cmd.Context()

		profile, err := store.GetProfile(ctx, user)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		calibration, err := store.GetCalibration(ctx, user)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to load calibration: %w", err)
		}

		guard := askguard.New(llm.NewQuestionAnswerer(client, slog.Default()), slog.Default())
		resp, err := guard.Evaluate(ctx, askguard.Request{
			UserID:         user,
			Question:       question,
			RequestedDepth: depth,
			Profile:        profile,
			Calibration:    calibration,
		})
		if err != nil {
			if errors.Is(err, common.ErrOnboardingRequired) {
				return fmt.Errorf("complete your profile first: swipewise pathway profile")
			}
			return err
		}

		logErr := store.LogAnswer(ctx, &storage.AnswerLogEntry{
			RequestID:        resp.RequestID,
			UserID:           user,
			QuestionRedacted: askguard.Redact(question),
			QuestionType:     resp.QuestionType,
			AnswerDepth:      resp.AnswerDepth,
			Blocked:          resp.Blocked,
			BlockReason:      resp.BlockReason,
			Response:         *resp,
		})
		if logErr != nil {
			slog.Warn("Failed to log answer", "error", logErr)
		}

		printAnswerResponse(resp)
		return nil
	})
}

func printAnswerResponse(resp *model.HardAnswerResponse) {
	if resp.MythCheck != nil && resp.MythCheck.Detected {
		fmt.Println(cli.FormatWarning("Myth detected: " + resp.MythCheck.MythName))
		fmt.Println("  " + resp.MythCheck.Correction)
	}

	if resp.Blocked {
		fmt.Println(cli.FormatError("Not answered (" + resp.BlockReason + ")"))
		for _, cond := range resp.UnlockConditions {
			fmt.Println("  → " + cond)
		}
		if resp.Calibration != nil && resp.Calibration.Needed {
			fmt.Println(cli.FormatInfo("Start here: " + resp.Calibration.NextQuestion))
		}
		return
	}

	answer := resp.Answer
	if answer == nil {
		fmt.Println(cli.FormatError("No answer returned"))
		return
	}

	body := answer.Summary
	if answer.RecommendedAction != nil {
		body += "\n\nDo this: " + *answer.RecommendedAction
	}
	fmt.Println(cli.RenderBox(fmt.Sprintf("Answer (%s)", resp.AnswerDepth), body))

	if len(answer.Steps) > 0 {
		fmt.Println(cli.FormatTitle("Steps"))
		for i, step := range answer.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}

	if answer.Mechanics != nil {
		fmt.Println(cli.FormatTitle("How it works"))
		fmt.Println("  " + *answer.Mechanics)
	}

	for _, edge := range answer.EdgeCases {
		fmt.Println(cli.FormatInfo(edge))
	}
	for _, warning := range answer.Warnings {
		fmt.Println(cli.FormatWarning(warning))
	}

	if resp.RiskToneForced {
		fmt.Println(cli.SubtleStyle.Render("Answer tone adjusted for risk signals in your profile."))
	}
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Confidence: %.0f%%", answer.Confidence*100)))
}
