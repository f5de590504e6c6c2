package model

import "fmt"

// Category is the closed set of reward categories a merchant can resolve to.
// Every categorization boundary (registry, heuristics, AI) must validate
// against this set; nothing outside it may flow into the engines.
type Category string

const (
	// CategoryGroceries covers supermarkets and grocery delivery.
	CategoryGroceries Category = "groceries"
	// CategoryDining covers restaurants, bars, and food delivery.
	CategoryDining Category = "dining"
	// CategoryGas covers fuel stations.
	CategoryGas Category = "gas"
	// CategoryTravel covers airlines, hotels, and booking sites.
	CategoryTravel Category = "travel"
	// CategoryOnlineShopping covers general e-commerce.
	CategoryOnlineShopping Category = "online_shopping"
	// CategoryStreaming covers subscription media services.
	CategoryStreaming Category = "streaming"
	// CategoryTransit covers rideshare, rail, and local transit.
	CategoryTransit Category = "transit"
	// CategoryDrugstore covers pharmacies and drugstores.
	CategoryDrugstore Category = "drugstore"
	// CategoryHomeImprovement covers hardware and home stores.
	CategoryHomeImprovement Category = "home_improvement"
	// CategoryElectronics covers consumer electronics retailers.
	CategoryElectronics Category = "electronics"
	// CategoryEntertainment covers tickets, events, and venues.
	CategoryEntertainment Category = "entertainment"
	// CategoryWarehouseClub covers membership warehouse clubs.
	CategoryWarehouseClub Category = "warehouse_club"
	// CategoryUtilities covers telecom and household utilities.
	CategoryUtilities Category = "utilities"
	// CategoryOther is the valid catch-all for merchants that fit no
	// specific category. Distinct from CategoryUnknown.
	CategoryOther Category = "other"
	// CategoryUnknown marks a failed resolution. It is never a valid
	// classifier output, only an orchestrator result.
	CategoryUnknown Category = "unknown"
)

// AllCategories returns every category a classifier may legitimately emit.
// CategoryUnknown is deliberately absent.
func AllCategories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryDining,
		CategoryGas,
		CategoryTravel,
		CategoryOnlineShopping,
		CategoryStreaming,
		CategoryTransit,
		CategoryDrugstore,
		CategoryHomeImprovement,
		CategoryElectronics,
		CategoryEntertainment,
		CategoryWarehouseClub,
		CategoryUtilities,
		CategoryOther,
	}
}

// Valid reports whether c is a legitimate classifier output.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory validates a raw string against the closed enum.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", raw)
	}
	return c, nil
}

// Confidence expresses how sure a categorization source is. It is
// propagated, never upgraded, through ranking and recommendation.
type Confidence string

const (
	// ConfidenceLow marks weak signals (title-only heuristics, AI fallbacks).
	ConfidenceLow Confidence = "low"
	// ConfidenceMedium marks unverified registry entries and URL heuristics.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceHigh marks overrides, verified registry entries, and
	// agreeing heuristic signals.
	ConfidenceHigh Confidence = "high"
)

// Valid reports whether the confidence is a known tier.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// AtLeast reports whether c is the same tier as other or stronger.
func (c Confidence) AtLeast(other Confidence) bool {
	return c.rank() >= other.rank()
}

func (c Confidence) rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	}
	return 0
}

// ResolutionSource identifies which layer of the pipeline produced a result.
type ResolutionSource string

const (
	// SourceOverride marks admin-approved domain mappings.
	SourceOverride ResolutionSource = "override"
	// SourceRegistry marks curated registry matches.
	SourceRegistry ResolutionSource = "registry"
	// SourceHeuristic marks pattern-table matches.
	SourceHeuristic ResolutionSource = "heuristic"
	// SourceAI marks external classifier results.
	SourceAI ResolutionSource = "ai"
	// SourceUnknown marks a resolution that found nothing.
	SourceUnknown ResolutionSource = "unknown"
)
