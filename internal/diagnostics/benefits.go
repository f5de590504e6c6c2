package diagnostics

import (
	"sort"
	"strings"
	"time"

	"github.com/swipewise/swipewise/internal/model"
)

// MissedBenefit is a card credit the user is paying for but not using.
type MissedBenefit struct {
	CardID      string
	CardName    string
	BenefitName string
	Period      model.BenefitPeriod
	Amount      float64
}

// maxMissedBenefits caps the report so it nudges instead of nags.
const maxMissedBenefits = 3

// FindMissedBenefits checks each wallet card's benefits against the
// transaction history in the current period and reports the highest-value
// credits with no matching spend. now anchors the period windows.
func FindMissedBenefits(wallet []model.Card, txns []model.Transaction, now time.Time) []MissedBenefit {
	var missed []MissedBenefit
	for _, card := range wallet {
		for _, benefit := range card.Benefits {
			start := periodStart(benefit.Period, now)
			if benefitUsed(benefit, txns, start, now) {
				continue
			}
			missed = append(missed, MissedBenefit{
				CardID:      card.ID,
				CardName:    card.Name,
				BenefitName: benefit.Name,
				Period:      benefit.Period,
				Amount:      benefit.Amount,
			})
		}
	}

	sort.Slice(missed, func(i, j int) bool {
		if missed[i].Amount != missed[j].Amount {
			return missed[i].Amount > missed[j].Amount
		}
		return missed[i].BenefitName < missed[j].BenefitName
	})
	if len(missed) > maxMissedBenefits {
		missed = missed[:maxMissedBenefits]
	}
	return missed
}

// periodStart returns the start of the benefit's current window. Periods
// are calendar-aligned: a monthly credit resets on the 1st, not on a
// rolling 30 day window.
func periodStart(period model.BenefitPeriod, now time.Time) time.Time {
	switch period {
	case model.BenefitMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case model.BenefitQuarterly:
		quarterMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	case model.BenefitAnnual:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return now
	}
}

func benefitUsed(benefit model.CardBenefit, txns []model.Transaction, start, now time.Time) bool {
	for _, txn := range txns {
		if txn.Date.Before(start) || txn.Date.After(now) {
			continue
		}
		if matchesBenefit(benefit, txn) {
			return true
		}
	}
	return false
}

func matchesBenefit(benefit model.CardBenefit, txn model.Transaction) bool {
	haystack := strings.ToLower(txn.MerchantName + " " + txn.Name)
	for _, merchant := range benefit.TriggerMerchants {
		if merchant != "" && strings.Contains(haystack, strings.ToLower(merchant)) {
			return true
		}
	}
	for _, category := range benefit.TriggerCategories {
		if txn.Category == category {
			return true
		}
	}
	return false
}
