package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/swipewise/swipewise/internal/model"
)

// SuggestionStore is the review-queue surface the prompter drives.
type SuggestionStore interface {
	ListSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.PendingMerchantSuggestion, error)
	ApproveSuggestion(ctx context.Context, id, approver, notes string) (*model.MerchantOverride, error)
	RejectSuggestion(ctx context.Context, id, notes string) error
}

// ReviewSummary counts the outcomes of one review session.
type ReviewSummary struct {
	Approved int
	Rejected int
	Skipped  int
}

// Prompter walks an admin through the pending merchant suggestion queue.
type Prompter struct {
	store    SuggestionStore
	reader   *NonBlockingReader
	writer   io.Writer
	approver string
}

// NewPrompter creates a review prompter. Defaults to stdin/stdout when
// input or output is nil.
func NewPrompter(store SuggestionStore, approver string, input io.Reader, output io.Writer) *Prompter {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &Prompter{
		store:    store,
		reader:   NewNonBlockingReader(input),
		writer:   output,
		approver: approver,
	}
}

// Run reviews every pending suggestion in turn. Quitting or canceling
// mid-session keeps the decisions already made.
func (p *Prompter) Run(ctx context.Context) (*ReviewSummary, error) {
	suggestions, err := p.store.ListSuggestions(ctx, model.SuggestionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending suggestions: %w", err)
	}

	summary := &ReviewSummary{}
	if len(suggestions) == 0 {
		fmt.Fprintln(p.writer, FormatInfo("Review queue is empty."))
		return summary, nil
	}

	fmt.Fprintln(p.writer, FormatTitle(fmt.Sprintf("Merchant review queue (%d pending)", len(suggestions))))

	for i, sg := range suggestions {
		p.renderSuggestion(i+1, len(suggestions), &sg)

		done, err := p.promptDecision(ctx, &sg, summary)
		if err != nil {
			if errors.Is(err, ErrInputCancelled) {
				return summary, nil
			}
			return summary, err
		}
		if done {
			break
		}
	}

	fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf(
		"Review complete: %d approved, %d rejected, %d skipped",
		summary.Approved, summary.Rejected, summary.Skipped)))
	return summary, nil
}

func (p *Prompter) renderSuggestion(pos, total int, sg *model.PendingMerchantSuggestion) {
	content := fmt.Sprintf(
		"Domain:     %s\nCategory:   %s\nConfidence: %s\nSource:     %s",
		BoldStyle.Render(sg.Domain), sg.Category, sg.Confidence, sg.Source)
	if sg.Rationale != "" {
		content += "\nRationale:  " + SubtleStyle.Render(sg.Rationale)
	}
	if sg.URL != "" {
		content += "\nSeen at:    " + SubtleStyle.Render(sg.URL)
	}

	fmt.Fprintln(p.writer, RenderBox(fmt.Sprintf("Suggestion %d of %d", pos, total), content))
}

// promptDecision loops until the reviewer enters a valid choice. Returns
// true when the session should end.
func (p *Prompter) promptDecision(ctx context.Context, sg *model.PendingMerchantSuggestion, summary *ReviewSummary) (bool, error) {
	for {
		fmt.Fprint(p.writer, FormatPrompt("[a]pprove  [r]eject  [s]kip  [q]uit"))

		choice, err := p.reader.ReadLine(ctx)
		if err != nil {
			return false, err
		}

		switch choice {
		case "a", "approve":
			if _, err := p.store.ApproveSuggestion(ctx, sg.ID, p.approver, ""); err != nil {
				return false, fmt.Errorf("failed to approve %s: %w", sg.Domain, err)
			}
			summary.Approved++
			fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf("%s locked in as %s", sg.Domain, sg.Category)))
			return false, nil
		case "r", "reject":
			fmt.Fprint(p.writer, FormatPrompt("Reason (optional)"))
			notes, err := p.reader.ReadLine(ctx)
			if err != nil {
				return false, err
			}
			if err := p.store.RejectSuggestion(ctx, sg.ID, notes); err != nil {
				return false, fmt.Errorf("failed to reject %s: %w", sg.Domain, err)
			}
			summary.Rejected++
			fmt.Fprintln(p.writer, FormatWarning(sg.Domain+" rejected"))
			return false, nil
		case "s", "skip":
			summary.Skipped++
			return false, nil
		case "q", "quit":
			return true, nil
		default:
			fmt.Fprintln(p.writer, FormatError("Unknown choice: "+choice))
		}
	}
}
