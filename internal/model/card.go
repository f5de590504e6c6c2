package model

import "time"

// CapPeriod bounds a reward rule's cap. Nil cap means uncapped.
type CapPeriod string

const (
	// CapMonth resets the cap monthly.
	CapMonth CapPeriod = "month"
	// CapQuarter resets the cap quarterly.
	CapQuarter CapPeriod = "quarter"
	// CapYear resets the cap annually.
	CapYear CapPeriod = "year"
)

// Valid reports whether the period is a known cap window.
func (p CapPeriod) Valid() bool {
	switch p {
	case CapMonth, CapQuarter, CapYear:
		return true
	}
	return false
}

// RewardCap limits how much spend earns the boosted rate. Cap state is
// reported in explanations but consumption against spend history is not
// tracked; the cap never changes the compared multiplier.
type RewardCap struct {
	Amount float64
	Period CapPeriod
}

// RewardRule earns Multiplier points per dollar for one category. Higher
// priority wins when a card has several rules for the same category.
type RewardRule struct {
	Cap        *RewardCap
	Category   Category
	Conditions string
	Notes      string
	Multiplier float64
	Priority   int
}

// MerchantExclusion disqualifies a whole card at merchants matching Pattern
// (substring of the domain or merchant name, lower-cased).
type MerchantExclusion struct {
	Pattern string
	Reason  string
}

// BenefitPeriod is how often a card credit resets.
type BenefitPeriod string

const (
	// BenefitMonthly resets every calendar month.
	BenefitMonthly BenefitPeriod = "monthly"
	// BenefitQuarterly resets every quarter.
	BenefitQuarterly BenefitPeriod = "quarterly"
	// BenefitAnnual resets every cardmember year.
	BenefitAnnual BenefitPeriod = "annual"
)

// CardBenefit is a statement credit that must be actively used.
type CardBenefit struct {
	Name              string
	Period            BenefitPeriod
	TriggerMerchants  []string
	TriggerCategories []Category
	Amount            float64
}

// CardKind distinguishes catalog-defined cards from DB-backed ones. The kind
// is resolved once at the fetch boundary, never inferred from field presence.
type CardKind string

const (
	// CardKindCatalog marks cards from the static catalog.
	CardKindCatalog CardKind = "catalog"
	// CardKindDB marks cards loaded from storage.
	CardKindDB CardKind = "db"
)

// Card is a credit card with its reward schedule. Read-only to the engines.
type Card struct {
	LastVerified time.Time
	ID           string
	Name         string
	Issuer       string
	Network      string
	Kind         CardKind
	Rules        []RewardRule
	Exclusions   []MerchantExclusion
	Benefits     []CardBenefit
	AnnualFee    float64
	BaseRate     float64
	Verified     bool
}

// RankedCard is one wallet entry annotated with its effective rate for a
// resolved merchant. Excluded cards stay in the ranking so the UI can
// explain why a nominally better card was skipped.
type RankedCard struct {
	Card                Card
	MatchedRule         *RewardRule
	ExclusionReason     string
	EffectiveMultiplier float64
	Excluded            bool
}

// Recommendation is the engine's answer for one merchant and wallet.
type Recommendation struct {
	Best         *RankedCard
	CategoryName Category
	Confidence   Confidence
	Reason       string
	Alternatives []RankedCard
	NoWallet     bool
}
