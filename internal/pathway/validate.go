package pathway

import (
	"fmt"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// Cardinality bounds for every array field in a pathway output. A plan
// outside these bounds is rejected outright, never truncated: truncation
// would hide authoring mistakes in the stage tables.
const (
	maxStageReasons   = 4
	maxImmediateFocus = 3
	maxNextMoves      = 5
	maxDoNots         = 4
	maxRecommended    = 3
	maxTimeline       = 4
	maxBehaviorRules  = 5
)

// ValidateOutput hard-fails on any schema violation in a pathway plan.
func ValidateOutput(out *model.PathwayOutput) error {
	if out == nil {
		return fmt.Errorf("%w: nil pathway output", common.ErrSchemaViolation)
	}
	if !out.Stage.Valid() {
		return violation("unknown stage %q", out.Stage)
	}
	if out.Confidence < 0 || out.Confidence > 100 {
		return violation("confidence %d out of range", out.Confidence)
	}
	if out.NextReviewDate.IsZero() {
		return violation("missing next review date")
	}

	if err := bounded("stage_reasons", len(out.StageReasons), 1, maxStageReasons); err != nil {
		return err
	}
	if err := bounded("immediate_focus", len(out.ImmediateFocus), 1, maxImmediateFocus); err != nil {
		return err
	}
	if err := bounded("next_moves", len(out.NextMoves), 1, maxNextMoves); err != nil {
		return err
	}
	if err := bounded("do_nots", len(out.DoNots), 1, maxDoNots); err != nil {
		return err
	}
	if err := bounded("recommended_cards", len(out.RecommendedCards), 0, maxRecommended); err != nil {
		return err
	}
	if err := bounded("timeline", len(out.Timeline), 1, maxTimeline); err != nil {
		return err
	}
	if err := bounded("behavior_rules", len(out.BehaviorRules), 1, maxBehaviorRules); err != nil {
		return err
	}

	for i, move := range out.NextMoves {
		if !move.Priority.Valid() {
			return violation("next_moves[%d] has unknown priority %q", i, move.Priority)
		}
		if move.Action == "" {
			return violation("next_moves[%d] has empty action", i)
		}
	}
	for i, milestone := range out.Timeline {
		if milestone.TargetMonths <= 0 {
			return violation("timeline[%d] has non-positive target", i)
		}
		if milestone.Label == "" {
			return violation("timeline[%d] has empty label", i)
		}
	}
	return nil
}

func bounded(field string, n, min, max int) error {
	if n < min || n > max {
		return violation("%s has %d entries, want %d to %d", field, n, min, max)
	}
	return nil
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{common.ErrSchemaViolation}, args...)...)
}
