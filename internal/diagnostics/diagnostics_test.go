package diagnostics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/model"
)

func charge(name string, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:           name + date.Format("20060102"),
		Date:         date,
		Name:         name,
		MerchantName: name,
		Amount:       amount,
	}
}

func TestDetectSubscriptionsMonthly(t *testing.T) {
	base := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		charge("GymPro", 40, base),
		charge("GymPro", 40, base.AddDate(0, 0, 30)),
		charge("GymPro", 40, base.AddDate(0, 0, 61)),
		charge("GymPro", 40, base.AddDate(0, 0, 91)),
	}

	candidates := DetectSubscriptions(txns)
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, CadenceMonthly, c.Cadence)
	assert.Equal(t, model.ConfidenceHigh, c.Confidence)
	assert.Equal(t, 4, c.Occurrences)
	assert.InDelta(t, 480, c.AnnualCost, 0.01)
}

func TestDetectSubscriptionsThirtyOneDayGaps(t *testing.T) {
	// Calendar months are not uniform; 31 day gaps still read as monthly.
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		charge("NETFLIX.COM", 15.49, base),
		charge("NETFLIX.COM", 15.49, base.AddDate(0, 0, 31)),
		charge("NETFLIX.COM", 15.49, base.AddDate(0, 0, 62)),
	}

	candidates := DetectSubscriptions(txns)
	require.Len(t, candidates, 1)
	assert.Equal(t, CadenceMonthly, candidates[0].Cadence)
	// Two deltas is not yet high confidence, but the keyword carries it.
	assert.Equal(t, model.ConfidenceMedium, candidates[0].Confidence)
}

func TestDetectSubscriptionsSingleOccurrence(t *testing.T) {
	txns := []model.Transaction{
		charge("NETFLIX.COM", 15.49, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
	}
	assert.Empty(t, DetectSubscriptions(txns))
}

func TestDetectSubscriptionsUnknownMerchantNeedsStrongEvidence(t *testing.T) {
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	weak := []model.Transaction{
		charge("Corner Deli", 12, base),
		charge("Corner Deli", 12, base.AddDate(0, 0, 30)),
	}
	// Two charges a month apart at a non-keyword merchant is a coincidence.
	assert.Empty(t, DetectSubscriptions(weak))

	strong := append(weak,
		charge("Corner Deli", 12, base.AddDate(0, 0, 60)),
		charge("Corner Deli", 12, base.AddDate(0, 0, 90)))
	candidates := DetectSubscriptions(strong)
	require.Len(t, candidates, 1)
	assert.Equal(t, model.ConfidenceHigh, candidates[0].Confidence)
}

func TestDetectSubscriptionsAnnual(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		charge("Domain Registrar", 120, base),
		charge("Domain Registrar", 120, base.AddDate(1, 0, 0)),
		charge("Domain Registrar", 120, base.AddDate(2, 0, 0)),
	}

	candidates := DetectSubscriptions(txns)
	require.Len(t, candidates, 1)
	assert.Equal(t, CadenceAnnual, candidates[0].Cadence)
	assert.Equal(t, model.ConfidenceHigh, candidates[0].Confidence)
	assert.InDelta(t, 120, candidates[0].AnnualCost, 0.01)
}

func TestDetectSubscriptionsIrregularSpendIgnored(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		charge("Grocer", 84.12, base),
		charge("Grocer", 31.07, base.AddDate(0, 0, 4)),
		charge("Grocer", 129.44, base.AddDate(0, 0, 17)),
		charge("Grocer", 55.01, base.AddDate(0, 0, 20)),
	}
	assert.Empty(t, DetectSubscriptions(txns))
}

func TestFindMissedBenefits(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	wallet := []model.Card{
		{
			ID: "premium", Name: "Premium",
			Benefits: []model.CardBenefit{
				{Name: "Dining credit", Amount: 10, Period: model.BenefitMonthly, TriggerMerchants: []string{"grubhub"}},
				{Name: "Travel credit", Amount: 300, Period: model.BenefitAnnual, TriggerCategories: []model.Category{model.CategoryTravel}},
				{Name: "Streaming credit", Amount: 20, Period: model.BenefitMonthly, TriggerMerchants: []string{"netflix", "spotify"}},
			},
		},
	}
	txns := []model.Transaction{
		// Used the streaming credit this month, dining not.
		charge("NETFLIX.COM", 15.49, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)),
		// A grubhub order last month does not count for August.
		charge("GRUBHUB", 24, time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC)),
	}

	missed := FindMissedBenefits(wallet, txns, now)
	require.Len(t, missed, 2)
	assert.Equal(t, "Travel credit", missed[0].BenefitName)
	assert.Equal(t, "Dining credit", missed[1].BenefitName)
}

func TestFindMissedBenefitsCapped(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	card := model.Card{ID: "c", Name: "C"}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		card.Benefits = append(card.Benefits, model.CardBenefit{
			Name: name, Amount: 10, Period: model.BenefitMonthly, TriggerMerchants: []string{"nomatch"},
		})
	}

	missed := FindMissedBenefits([]model.Card{card}, nil, now)
	assert.Len(t, missed, maxMissedBenefits)
}

func TestAnalyzeOpportunityCost(t *testing.T) {
	wallet := []model.Card{
		{ID: "grocery", Name: "Grocery 4x", BaseRate: 1,
			Rules: []model.RewardRule{{Category: model.CategoryGroceries, Multiplier: 4}}},
		{ID: "flat", Name: "Flat 2x", BaseRate: 2},
	}

	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		// $100 groceries on the flat card: earned 200, best 400.
		{ID: "1", Date: date, Name: "KROGER", Amount: 100, CardID: "flat", Category: model.CategoryGroceries},
		// $50 dining on the grocery card: earned 50, best 100.
		{ID: "2", Date: date, Name: "BISTRO", Amount: 50, CardID: "grocery", Category: model.CategoryDining},
	}

	report := AnalyzeOpportunityCost(wallet, txns)
	assert.Equal(t, 2, report.Transactions)
	assert.InDelta(t, 250, report.TotalEarned, 0.01)
	assert.InDelta(t, 500, report.TotalBest, 0.01)
	assert.InDelta(t, 250, report.TotalMissed(), 0.01)

	require.NotEmpty(t, report.Categories)
	top := report.Categories[0]
	assert.Equal(t, model.CategoryGroceries, top.Category)
	assert.Equal(t, "grocery", top.BestCardID)
	assert.InDelta(t, 200, top.PointsMissed(), 0.01)
}
