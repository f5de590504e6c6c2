// Package diagnostics analyzes imported transaction history: recurring
// subscription detection, unused card benefits, and rewards left on the
// table by using the wrong card.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/swipewise/swipewise/internal/model"
)

// Cadence is a detected recurrence interval.
type Cadence string

const (
	// CadenceWeekly is a 6 to 8 day interval.
	CadenceWeekly Cadence = "weekly"
	// CadenceMonthly is a 28 to 33 day interval.
	CadenceMonthly Cadence = "monthly"
	// CadenceAnnual is a 350 to 380 day interval.
	CadenceAnnual Cadence = "annual"
)

// SubscriptionCandidate is one detected recurring charge.
type SubscriptionCandidate struct {
	LastSeen     time.Time
	MerchantName string
	Cadence      Cadence
	Confidence   model.Confidence
	Amount       float64
	AnnualCost   float64
	Occurrences  int
}

// subscriptionKeywords flags merchants that are almost certainly
// subscriptions even with thin history.
var subscriptionKeywords = []string{
	"netflix", "spotify", "hulu", "disney", "hbo", "max.com", "peacock",
	"paramount", "youtube", "audible", "kindle", "icloud", "dropbox",
	"subscription", "membership", "monthly", "patreon", "onlyfans",
	"adobe", "office365", "playstation", "xbox", "nintendo",
}

// DetectSubscriptions groups transactions by merchant and amount bucket
// and looks for steady charge intervals. A candidate is surfaced when the
// interval evidence is strong or the merchant name is a known
// subscription keyword.
func DetectSubscriptions(txns []model.Transaction) []SubscriptionCandidate {
	groups := make(map[string][]model.Transaction)
	for _, txn := range txns {
		if txn.Amount <= 0 {
			continue
		}
		groups[groupKey(txn)] = append(groups[groupKey(txn)], txn)
	}

	var candidates []SubscriptionCandidate
	for _, group := range groups {
		if c := evaluateGroup(group); c != nil {
			candidates = append(candidates, *c)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].AnnualCost != candidates[j].AnnualCost {
			return candidates[i].AnnualCost > candidates[j].AnnualCost
		}
		return candidates[i].MerchantName < candidates[j].MerchantName
	})
	return candidates
}

// groupKey buckets a charge by merchant and rounded amount, so a $15.49
// and a $15.99 Netflix charge land in the same group but a $120 annual
// charge does not.
func groupKey(txn model.Transaction) string {
	name := txn.MerchantName
	if name == "" {
		name = txn.Name
	}
	name = strings.ToLower(strings.TrimSpace(name))

	bucket := 10.0
	if txn.Amount < 100 {
		bucket = 5.0
	}
	return fmt.Sprintf("%s|%d", name, int(txn.Amount/bucket))
}

func evaluateGroup(group []model.Transaction) *SubscriptionCandidate {
	if len(group) < 2 {
		return nil
	}
	sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

	var total float64
	for _, txn := range group {
		total += txn.Amount
	}
	avgAmount := total / float64(len(group))

	deltas := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		deltas = append(deltas, group[i].Date.Sub(group[i-1].Date).Hours()/24)
	}
	var sum float64
	for _, d := range deltas {
		sum += d
	}
	avgDelta := sum / float64(len(deltas))

	cadence, perYear := classifyCadence(avgDelta)
	if cadence == "" {
		return nil
	}

	confidence := model.ConfidenceMedium
	switch cadence {
	case CadenceAnnual:
		if len(deltas) >= 2 {
			confidence = model.ConfidenceHigh
		}
	default:
		if len(deltas) >= 3 {
			confidence = model.ConfidenceHigh
		}
	}

	name := group[0].MerchantName
	if name == "" {
		name = group[0].Name
	}

	if confidence != model.ConfidenceHigh && !matchesKeyword(name) {
		return nil
	}

	return &SubscriptionCandidate{
		MerchantName: name,
		Amount:       avgAmount,
		Cadence:      cadence,
		Occurrences:  len(group),
		Confidence:   confidence,
		LastSeen:     group[len(group)-1].Date,
		AnnualCost:   avgAmount * perYear,
	}
}

func classifyCadence(avgDeltaDays float64) (Cadence, float64) {
	switch {
	case avgDeltaDays >= 6 && avgDeltaDays <= 8:
		return CadenceWeekly, 52
	case avgDeltaDays >= 28 && avgDeltaDays <= 33:
		return CadenceMonthly, 12
	case avgDeltaDays >= 350 && avgDeltaDays <= 380:
		return CadenceAnnual, 1
	}
	return "", 0
}

func matchesKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range subscriptionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
