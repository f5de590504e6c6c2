package diagnostics

import (
	"sort"

	"github.com/swipewise/swipewise/internal/model"
)

// CategoryMiss aggregates rewards lost in one spending category.
type CategoryMiss struct {
	Category     model.Category
	BestCardID   string
	BestCardName string
	Spend        float64
	PointsEarned float64
	PointsBest   float64
}

// PointsMissed is how many points the category left on the table.
func (c CategoryMiss) PointsMissed() float64 {
	return c.PointsBest - c.PointsEarned
}

// OpportunityReport sums rewards lost to wrong-card spending.
type OpportunityReport struct {
	Categories   []CategoryMiss
	TotalEarned  float64
	TotalBest    float64
	Transactions int
}

// TotalMissed is the headline number.
func (r *OpportunityReport) TotalMissed() float64 {
	return r.TotalBest - r.TotalEarned
}

// AnalyzeOpportunityCost replays categorized transactions against the
// wallet and compares the points actually earned with what the best card
// for each category would have earned. Transactions with no category or
// no card attribution still count toward the best-case side, assuming the
// base rate of the card used, or 1x when unknown.
func AnalyzeOpportunityCost(wallet []model.Card, txns []model.Transaction) *OpportunityReport {
	report := &OpportunityReport{}
	byCategory := make(map[model.Category]*CategoryMiss)
	cardsByID := make(map[string]model.Card, len(wallet))
	for _, card := range wallet {
		cardsByID[card.ID] = card
	}

	for _, txn := range txns {
		if txn.Amount <= 0 {
			continue
		}
		report.Transactions++

		category := txn.Category
		if category == "" {
			category = model.CategoryUnknown
		}

		earnedRate := 1.0
		if used, ok := cardsByID[txn.CardID]; ok {
			earnedRate = effectiveRate(used, category)
		}
		bestCard, bestRate := bestCardFor(wallet, category)

		earned := txn.Amount * earnedRate
		best := txn.Amount * bestRate
		report.TotalEarned += earned
		report.TotalBest += best

		cm, ok := byCategory[category]
		if !ok {
			cm = &CategoryMiss{Category: category}
			byCategory[category] = cm
		}
		cm.Spend += txn.Amount
		cm.PointsEarned += earned
		cm.PointsBest += best
		if bestCard != nil {
			cm.BestCardID = bestCard.ID
			cm.BestCardName = bestCard.Name
		}
	}

	for _, cm := range byCategory {
		report.Categories = append(report.Categories, *cm)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].PointsMissed() > report.Categories[j].PointsMissed()
	})
	return report
}

func effectiveRate(card model.Card, category model.Category) float64 {
	rate := card.BaseRate
	if rate == 0 {
		rate = 1
	}
	for _, rule := range card.Rules {
		if rule.Category == category && rule.Multiplier > rate {
			rate = rule.Multiplier
		}
	}
	return rate
}

func bestCardFor(wallet []model.Card, category model.Category) (*model.Card, float64) {
	var best *model.Card
	bestRate := 1.0
	for i := range wallet {
		rate := effectiveRate(wallet[i], category)
		if rate > bestRate {
			best = &wallet[i]
			bestRate = rate
		}
	}
	return best, bestRate
}
