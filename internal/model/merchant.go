package model

import "time"

// CategoryRule is a path/query-scoped override inside a registry record.
// When Match appears in the original URL's path or query, the rule's
// category and confidence replace the record's defaults.
type CategoryRule struct {
	Match      string
	Category   Category
	Confidence Confidence
	Reason     string
}

// MerchantRecord is one curated registry entry. Domains are lower-cased and
// unique across the registry; authored order is significant because lookup
// is first-match.
type MerchantRecord struct {
	LastVerified  time.Time
	ID            string
	Name          string
	Category      Category
	Domains       []string
	Tags          []string
	Exclusions    []string
	CategoryRules []CategoryRule
	Verified      bool
	IsWarehouse   bool
}

// Exclusion flag values carried on registry records and merchant contexts.
// A flag suppresses card reward rules for the category it names.
const (
	ExclusionGrocery   = "grocery-excluded"
	ExclusionWarehouse = "warehouse-excluded"
	ExclusionGas       = "gas-excluded"
)

// ExclusionTargets maps exclusion flags to the reward category they suppress.
func ExclusionTargets() map[string]Category {
	return map[string]Category{
		ExclusionGrocery:   CategoryGroceries,
		ExclusionWarehouse: CategoryWarehouseClub,
		ExclusionGas:       CategoryGas,
	}
}

// MerchantOverride is an admin-approved domain mapping. Overrides strictly
// shadow the registry and heuristics and always resolve at high confidence.
type MerchantOverride struct {
	ApprovedAt time.Time
	Domain     string
	Name       string
	Category   Category
	Rationale  string
	ApprovedBy string
}

// SuggestionSource records how a pending suggestion was produced.
type SuggestionSource string

const (
	// SuggestionSourceAI marks suggestions from the external classifier.
	SuggestionSourceAI SuggestionSource = "ai"
	// SuggestionSourceHeuristic marks suggestions from the pattern table.
	SuggestionSourceHeuristic SuggestionSource = "heuristic"
	// SuggestionSourceUserReport marks user-submitted corrections.
	SuggestionSourceUserReport SuggestionSource = "user_report"
)

// SuggestionStatus is the review-queue lifecycle state.
type SuggestionStatus string

const (
	// SuggestionPending awaits admin review.
	SuggestionPending SuggestionStatus = "pending"
	// SuggestionApproved has been converted into an override. Terminal.
	SuggestionApproved SuggestionStatus = "approved"
	// SuggestionRejected was declined by a reviewer. Terminal.
	SuggestionRejected SuggestionStatus = "rejected"
)

// PendingMerchantSuggestion is a review-queue entry. At most one pending
// entry exists per domain; duplicates coalesce to the existing entry.
type PendingMerchantSuggestion struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ID            string
	URL           string
	Domain        string
	Category      Category
	Confidence    Confidence
	Rationale     string
	Source        SuggestionSource
	Status        SuggestionStatus
	ReviewerNotes string
}

// AISuggestion carries the external classifier's verdict and bookkeeping.
type AISuggestion struct {
	CachedAt     time.Time
	Category     Category
	Confidence   Confidence
	Rationale    string
	MerchantName string
	FromCache    bool
}

// ResolutionStep is one entry in the decision trace. The trace is a
// first-class output surfaced to users, not a debug side-channel.
type ResolutionStep struct {
	At      time.Time
	Step    string
	Outcome string
	Detail  string
}

// MerchantContext is the transient result of resolving a URL. It is consumed
// immediately by the recommendation engine and never persisted as-is.
type MerchantContext struct {
	Domain       string
	MerchantName string
	Category     Category
	Confidence   Confidence
	Source       ResolutionSource
	Trace        []ResolutionStep
	Exclusions   []string
	AISuggestion *AISuggestion
	IsWarehouse  bool
}

// Excluded reports whether the merchant carries the given exclusion flag.
func (m *MerchantContext) Excluded(flag string) bool {
	for _, f := range m.Exclusions {
		if f == flag {
			return true
		}
	}
	return false
}
