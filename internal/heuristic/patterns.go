package heuristic

import "github.com/swipewise/swipewise/internal/model"

// Pattern is one entry in the ordered classification table.
type Pattern struct {
	Name       string
	Regex      string
	Category   model.Category
	Confidence model.Confidence
	Reason     string
}

// DefaultPatterns returns the classification table. Evaluation is strictly
// first-match in table order: brand-specific patterns MUST precede generic
// category patterns or the generic ones will shadow them. A test asserts
// this ordering.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Brand-specific patterns first.
		{
			Name:       "Trader Joe's",
			Regex:      `traderjoes`,
			Category:   model.CategoryGroceries,
			Confidence: model.ConfidenceMedium,
			Reason:     "Trader Joe's storefront",
		},
		{
			Name:       "Aldi",
			Regex:      `\baldi\b|aldi\.`,
			Category:   model.CategoryGroceries,
			Confidence: model.ConfidenceMedium,
			Reason:     "Aldi storefront",
		},
		{
			Name:       "Chipotle",
			Regex:      `chipotle`,
			Category:   model.CategoryDining,
			Confidence: model.ConfidenceMedium,
			Reason:     "Chipotle ordering site",
		},
		{
			Name:       "Peacock",
			Regex:      `peacocktv`,
			Category:   model.CategoryStreaming,
			Confidence: model.ConfidenceMedium,
			Reason:     "Peacock streaming service",
		},
		{
			Name:       "Paramount+",
			Regex:      `paramountplus`,
			Category:   model.CategoryStreaming,
			Confidence: model.ConfidenceMedium,
			Reason:     "Paramount+ streaming service",
		},
		{
			Name:       "Amtrak",
			Regex:      `amtrak`,
			Category:   model.CategoryTransit,
			Confidence: model.ConfidenceMedium,
			Reason:     "Amtrak rail booking",
		},
		{
			Name:       "IKEA",
			Regex:      `ikea\.`,
			Category:   model.CategoryHomeImprovement,
			Confidence: model.ConfidenceMedium,
			Reason:     "IKEA storefront",
		},

		// Generic category patterns after all brand patterns.
		{
			Name:       "Grocery keywords",
			Regex:      `grocer|supermarket|\bmarket\b|fresh-?foods?`,
			Category:   model.CategoryGroceries,
			Confidence: model.ConfidenceMedium,
			Reason:     "grocery keyword in URL",
		},
		{
			Name:       "Dining keywords",
			Regex:      `restaurant|pizza|sushi|burger|taco|grill|cafe|coffee|bakery|bistro|diner`,
			Category:   model.CategoryDining,
			Confidence: model.ConfidenceMedium,
			Reason:     "restaurant keyword in URL",
		},
		{
			Name:       "Fuel keywords",
			Regex:      `\bgas\b|fuel|petrol|\bpump\b`,
			Category:   model.CategoryGas,
			Confidence: model.ConfidenceMedium,
			Reason:     "fuel keyword in URL",
		},
		{
			Name:       "Travel keywords",
			Regex:      `hotel|resort|airline|flights?|vacation|cruise|rental-?car|booking`,
			Category:   model.CategoryTravel,
			Confidence: model.ConfidenceMedium,
			Reason:     "travel keyword in URL",
		},
		{
			Name:       "Streaming keywords",
			Regex:      `stream|watch\.|\btv\b|video-?on-?demand`,
			Category:   model.CategoryStreaming,
			Confidence: model.ConfidenceLow,
			Reason:     "streaming keyword in URL",
		},
		{
			Name:       "Transit keywords",
			Regex:      `transit|metro|subway|rideshare|taxi|parking`,
			Category:   model.CategoryTransit,
			Confidence: model.ConfidenceLow,
			Reason:     "transit keyword in URL",
		},
		{
			Name:       "Pharmacy keywords",
			Regex:      `pharmacy|drug-?store|\brx\b`,
			Category:   model.CategoryDrugstore,
			Confidence: model.ConfidenceMedium,
			Reason:     "pharmacy keyword in URL",
		},
		{
			Name:       "Hardware keywords",
			Regex:      `hardware|lumber|home-?improvement|tools?\.`,
			Category:   model.CategoryHomeImprovement,
			Confidence: model.ConfidenceLow,
			Reason:     "hardware keyword in URL",
		},
		{
			Name:       "Electronics keywords",
			Regex:      `electronics|computers?\.|laptops?|smartphones?`,
			Category:   model.CategoryElectronics,
			Confidence: model.ConfidenceLow,
			Reason:     "electronics keyword in URL",
		},
		{
			Name:       "Entertainment keywords",
			Regex:      `tickets?|concert|cinema|theatre|theater|events?\.`,
			Category:   model.CategoryEntertainment,
			Confidence: model.ConfidenceLow,
			Reason:     "entertainment keyword in URL",
		},
		{
			Name:       "Shopping keywords",
			Regex:      `shop|store|cart|checkout|outlet|boutique`,
			Category:   model.CategoryOnlineShopping,
			Confidence: model.ConfidenceLow,
			Reason:     "generic shopping keyword in URL",
		},
	}
}

// brandPatternCount is the number of brand-specific entries at the head of
// the table. Used by the ordering test; update it when adding brands.
const brandPatternCount = 7
