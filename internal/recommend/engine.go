// Package recommend ranks a wallet's cards for a resolved merchant.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swipewise/swipewise/internal/model"
)

// Engine ranks cards. It is stateless and safe for concurrent use.
type Engine struct{}

// New returns a recommendation engine.
func New() *Engine {
	return &Engine{}
}

// Recommend ranks the wallet against the merchant context and picks the
// best card. Excluded cards remain in the ranking, annotated, so the
// caller can explain why a nominally better card was skipped.
func (e *Engine) Recommend(mc *model.MerchantContext, wallet []model.Card) *model.Recommendation {
	if len(wallet) == 0 {
		return &model.Recommendation{
			CategoryName: mc.Category,
			Confidence:   mc.Confidence,
			NoWallet:     true,
			Reason:       "no cards in wallet",
		}
	}

	ranked := make([]model.RankedCard, 0, len(wallet))
	for _, card := range wallet {
		ranked = append(ranked, rankCard(card, mc))
	}
	sortRanked(ranked)

	best := &ranked[0]
	rec := &model.Recommendation{
		Best:         best,
		CategoryName: mc.Category,
		Confidence:   mc.Confidence,
		Alternatives: ranked[1:],
		Reason:       explain(best, mc),
	}
	return rec
}

// rankCard computes a card's effective multiplier at this merchant.
// Two distinct things can knock a card down:
//   - a card-level merchant exclusion disqualifies the whole card
//   - a merchant exclusion flag (warehouse clubs not coding as groceries)
//     suppresses the matching rule, dropping the card to its base rate
func rankCard(card model.Card, mc *model.MerchantContext) model.RankedCard {
	rc := model.RankedCard{Card: card, EffectiveMultiplier: card.BaseRate}

	if reason := cardExcludedAt(card, mc); reason != "" {
		rc.Excluded = true
		rc.ExclusionReason = reason
		return rc
	}

	rule := bestRuleFor(card, mc.Category)
	if rule == nil {
		return rc
	}

	if flag := suppressingFlag(mc, rule.Category); flag != "" {
		rc.ExclusionReason = fmt.Sprintf("%s rate suppressed: merchant is %s", rule.Category, flag)
		return rc
	}

	rc.MatchedRule = rule
	rc.EffectiveMultiplier = rule.Multiplier
	return rc
}

// cardExcludedAt tests the card's merchant exclusion patterns against the
// domain and merchant name.
func cardExcludedAt(card model.Card, mc *model.MerchantContext) string {
	domain := strings.ToLower(mc.Domain)
	name := strings.ToLower(mc.MerchantName)
	for _, excl := range card.Exclusions {
		pattern := strings.ToLower(excl.Pattern)
		if pattern == "" {
			continue
		}
		if strings.Contains(domain, pattern) || (name != "" && strings.Contains(name, pattern)) {
			return excl.Reason
		}
	}
	return ""
}

// bestRuleFor picks the highest-priority rule for the category, taking the
// highest multiplier on a priority tie.
func bestRuleFor(card model.Card, category model.Category) *model.RewardRule {
	var best *model.RewardRule
	for i := range card.Rules {
		rule := &card.Rules[i]
		if rule.Category != category {
			continue
		}
		if best == nil || rule.Priority > best.Priority ||
			(rule.Priority == best.Priority && rule.Multiplier > best.Multiplier) {
			best = rule
		}
	}
	return best
}

// suppressingFlag returns the merchant exclusion flag that suppresses a
// rule for the given category, or "".
func suppressingFlag(mc *model.MerchantContext, category model.Category) string {
	for flag, target := range model.ExclusionTargets() {
		if target == category && mc.Excluded(flag) {
			return flag
		}
	}
	return ""
}

// sortRanked orders cards best-first: non-excluded before excluded, then
// higher multiplier, then lower annual fee. The sort is stable so ties
// keep wallet order.
func sortRanked(ranked []model.RankedCard) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Excluded != b.Excluded {
			return !a.Excluded
		}
		if a.EffectiveMultiplier != b.EffectiveMultiplier {
			return a.EffectiveMultiplier > b.EffectiveMultiplier
		}
		return a.Card.AnnualFee < b.Card.AnnualFee
	})
}

func explain(best *model.RankedCard, mc *model.MerchantContext) string {
	merchant := mc.MerchantName
	if merchant == "" {
		merchant = mc.Domain
	}

	switch {
	case best.Excluded:
		return fmt.Sprintf("All cards are excluded at %s; %s earns the base rate %.1fx (%s)",
			merchant, best.Card.Name, best.Card.BaseRate, best.ExclusionReason)
	case best.MatchedRule != nil:
		reason := fmt.Sprintf("%s earns %.1fx on %s at %s",
			best.Card.Name, best.EffectiveMultiplier, mc.Category, merchant)
		if best.MatchedRule.Cap != nil {
			reason += fmt.Sprintf(" (capped at $%.0f per %s)",
				best.MatchedRule.Cap.Amount, best.MatchedRule.Cap.Period)
		}
		return reason
	case best.ExclusionReason != "":
		return fmt.Sprintf("%s falls back to its base rate %.1fx at %s: %s",
			best.Card.Name, best.EffectiveMultiplier, merchant, best.ExclusionReason)
	default:
		return fmt.Sprintf("%s earns its base rate %.1fx at %s; no bonus category matches %s",
			best.Card.Name, best.EffectiveMultiplier, merchant, mc.Category)
	}
}
