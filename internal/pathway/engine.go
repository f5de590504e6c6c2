// Package pathway classifies a credit profile into a five-stage journey
// and assembles the stage's guidance plan. Classification is a fixed rule
// ladder, not a model: the same profile always lands in the same stage.
package pathway

import (
	"time"

	"github.com/swipewise/swipewise/internal/model"
)

// baseConfidence is the starting classification confidence. Deductions
// apply for contradictory or missing profile data.
const baseConfidence = 80

// Classify maps a profile onto the stage ladder. The entry rules and the
// balance-carrier ceiling are checked first, then the remaining stages
// from the top down so the deepest qualifying stage wins.
func Classify(p *model.CreditProfile) (model.CreditStage, []string) {
	switch {
	case p.History == model.HistoryNone || p.CardCount == 0:
		return model.StageFoundation, []string{
			"no credit file or no open cards yet",
		}
	case p.History == model.HistoryThin:
		return model.StageBuild, []string{
			"credit history under a year",
		}
	case p.CardCount <= 2 && !p.HasPremiumCard:
		return model.StageBuild, []string{
			"one or two cards without a premium product",
		}
	case p.CarriesBalance:
		return model.StageBuild, []string{
			"a revolving balance caps the stage at build",
		}
	case p.CardCount >= 7 && p.History == model.HistoryLong && !p.HasDerogatories:
		return model.StageElite, []string{
			"seven or more cards across three clean years",
		}
	case p.CardCount >= 5:
		return model.StageScale, []string{
			"five or more cards in active rotation",
		}
	case p.FeeTolerant:
		return model.StageScale, []string{
			"comfortable with annual fees and ready to scale",
		}
	case p.CardCount >= 3 && (p.History == model.HistoryEstablished || p.History == model.HistoryLong):
		return model.StageOptimize, []string{
			"established history across several cards",
		}
	default:
		return model.StageBuild, []string{
			"defaulting to build while the file develops",
		}
	}
}

// BuildPathway classifies the profile and assembles the full plan. The
// returned output always passes ValidateOutput.
func BuildPathway(p *model.CreditProfile, now time.Time) (*model.PathwayOutput, error) {
	stage, reasons := Classify(p)
	content := stageTable[stage]

	out := &model.PathwayOutput{
		Stage:            stage,
		StageReasons:     reasons,
		ImmediateFocus:   append([]string(nil), content.ImmediateFocus...),
		NextMoves:        append([]model.NextMove(nil), content.NextMoves...),
		DoNots:           append([]string(nil), content.DoNots...),
		RecommendedCards: append([]string(nil), content.RecommendedCards...),
		Timeline:         append([]model.Milestone(nil), content.Timeline...),
		BehaviorRules:    append([]string(nil), content.BehaviorRules...),
		Confidence:       confidenceFor(p),
		NextReviewDate:   nextReview(stage, now),
	}

	// Balance carriers get debt payoff as the first move at every stage.
	if p.CarriesBalance {
		out.NextMoves = append([]model.NextMove{debtPayoffMove}, out.NextMoves...)
	}

	if err := ValidateOutput(out); err != nil {
		return nil, err
	}
	return out, nil
}

func confidenceFor(p *model.CreditProfile) int {
	confidence := baseConfidence
	// A declared empty file alongside open cards is contradictory.
	if p.History == model.HistoryNone && p.CardCount > 0 {
		confidence -= 10
	}
	if p.IncomeBucket == "" {
		confidence -= 10
	}
	return confidence
}

// nextReview is sooner for early stages, where profiles change fast.
func nextReview(stage model.CreditStage, now time.Time) time.Time {
	months := 6
	if stage == model.StageFoundation || stage == model.StageBuild {
		months = 3
	}
	return now.AddDate(0, months, 0)
}
