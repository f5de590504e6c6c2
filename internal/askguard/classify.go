package askguard

import (
	"strings"

	"github.com/swipewise/swipewise/internal/model"
)

// Keyword tables for question-type classification. First matching type in
// evaluation order (repair, building, optimization) wins; repair goes
// first because repair questions often also mention scores and rewards.
var (
	repairKeywords = []string{
		"collection", "charge-off", "chargeoff", "late payment", "missed payment",
		"delinquen", "derogatory", "bankruptcy", "repossess", "default",
		"goodwill letter", "dispute", "repair",
	}
	buildingKeywords = []string{
		"build credit", "credit score", "raise my score", "improve my score",
		"first card", "secured card", "credit history", "utilization",
		"credit limit", "thin file", "no credit",
	}
	optimizationKeywords = []string{
		"points", "miles", "cash back", "cashback", "rewards", "multiplier",
		"signup bonus", "sign-up bonus", "category", "annual fee", "which card",
		"best card", "maximize",
	}
)

// riskKeywords mark questions touching debt-adjacent products or
// behaviors. They do not block on their own but force the conservative
// answer tone.
var riskKeywords = []string{
	"bnpl", "buy now pay later", "afterpay", "klarna", "affirm", "sezzle",
	"minimum payment", "large purchase", "big purchase", "finance a",
	"carry a balance", "carrying a balance",
}

// dangerKeywords block the question outright: these products are harmful
// enough that a how-to answer is the wrong product response at any depth.
var dangerKeywords = []string{
	"cash advance", "payday loan", "payday lender", "title loan",
	"credit card arbitrage",
}

// ClassifyQuestion assigns a coarse question type.
func ClassifyQuestion(question string) model.QuestionType {
	lower := strings.ToLower(question)
	switch {
	case containsAny(lower, repairKeywords):
		return model.QuestionRepair
	case containsAny(lower, buildingKeywords):
		return model.QuestionBuilding
	case containsAny(lower, optimizationKeywords):
		return model.QuestionOptimization
	default:
		return model.QuestionGeneral
	}
}

// HasRiskSignals reports whether the question touches debt-adjacent topics.
func HasRiskSignals(question string) bool {
	return containsAny(strings.ToLower(question), riskKeywords)
}

// DangerTopic returns the matched dangerous-product keyword, or "".
func DangerTopic(question string) string {
	lower := strings.ToLower(question)
	for _, kw := range dangerKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
