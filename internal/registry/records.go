package registry

import "github.com/swipewise/swipewise/internal/model"

// DefaultRecords returns the curated merchant table. Order matters: lookup
// is first-match, so more specific merchants must precede any whose domain
// set could shadow them.
func DefaultRecords() []model.MerchantRecord {
	return []model.MerchantRecord{
		{
			ID:       "amazon",
			Name:     "Amazon",
			Domains:  []string{"amazon.com", "amzn.com", "amazon.ca", "amazon.co.uk"},
			Category: model.CategoryOnlineShopping,
			Tags:     []string{"ecommerce", "marketplace"},
			CategoryRules: []model.CategoryRule{
				{
					Match:      "/alm/storefront",
					Category:   model.CategoryGroceries,
					Confidence: model.ConfidenceMedium,
					Reason:     "Amazon Fresh storefront path",
				},
				{
					Match:      "primevideo",
					Category:   model.CategoryStreaming,
					Confidence: model.ConfidenceMedium,
					Reason:     "Prime Video path",
				},
			},
			Verified:     true,
			LastVerified: verified(2026, 6, 14),
		},
		{
			ID:           "whole-foods",
			Name:         "Whole Foods Market",
			Domains:      []string{"wholefoodsmarket.com"},
			Category:     model.CategoryGroceries,
			Tags:         []string{"grocery", "amazon-owned"},
			Verified:     true,
			LastVerified: verified(2026, 6, 14),
		},
		{
			ID:           "costco",
			Name:         "Costco",
			Domains:      []string{"costco.com", "costcobusinessdelivery.com"},
			Category:     model.CategoryWarehouseClub,
			Tags:         []string{"warehouse", "membership"},
			Exclusions:   []string{model.ExclusionGrocery, model.ExclusionWarehouse},
			IsWarehouse:  true,
			Verified:     true,
			LastVerified: verified(2026, 5, 2),
		},
		{
			ID:           "sams-club",
			Name:         "Sam's Club",
			Domains:      []string{"samsclub.com"},
			Category:     model.CategoryWarehouseClub,
			Tags:         []string{"warehouse", "membership"},
			Exclusions:   []string{model.ExclusionGrocery, model.ExclusionWarehouse},
			IsWarehouse:  true,
			Verified:     true,
			LastVerified: verified(2026, 5, 2),
		},
		{
			ID:           "bjs",
			Name:         "BJ's Wholesale Club",
			Domains:      []string{"bjs.com"},
			Category:     model.CategoryWarehouseClub,
			Tags:         []string{"warehouse", "membership"},
			Exclusions:   []string{model.ExclusionGrocery, model.ExclusionWarehouse},
			IsWarehouse:  true,
			Verified:     true,
			LastVerified: verified(2026, 3, 19),
		},
		{
			ID:       "walmart",
			Name:     "Walmart",
			Domains:  []string{"walmart.com"},
			Category: model.CategoryOnlineShopping,
			Tags:     []string{"big-box"},
			CategoryRules: []model.CategoryRule{
				{
					Match:      "grocery",
					Category:   model.CategoryGroceries,
					Confidence: model.ConfidenceMedium,
					Reason:     "Walmart grocery path",
				},
			},
			Exclusions:   []string{model.ExclusionGrocery},
			Verified:     true,
			LastVerified: verified(2026, 6, 1),
		},
		{
			ID:           "target",
			Name:         "Target",
			Domains:      []string{"target.com"},
			Category:     model.CategoryOnlineShopping,
			Tags:         []string{"big-box"},
			Exclusions:   []string{model.ExclusionGrocery},
			Verified:     true,
			LastVerified: verified(2026, 6, 1),
		},
		{
			ID:           "kroger",
			Name:         "Kroger",
			Domains:      []string{"kroger.com"},
			Category:     model.CategoryGroceries,
			Tags:         []string{"grocery"},
			Verified:     true,
			LastVerified: verified(2026, 4, 8),
		},
		{
			ID:           "safeway",
			Name:         "Safeway",
			Domains:      []string{"safeway.com"},
			Category:     model.CategoryGroceries,
			Tags:         []string{"grocery"},
			Verified:     true,
			LastVerified: verified(2026, 4, 8),
		},
		{
			ID:           "instacart",
			Name:         "Instacart",
			Domains:      []string{"instacart.com"},
			Category:     model.CategoryGroceries,
			Tags:         []string{"grocery", "delivery"},
			Verified:     true,
			LastVerified: verified(2026, 2, 27),
		},
		{
			ID:           "netflix",
			Name:         "Netflix",
			Domains:      []string{"netflix.com"},
			Category:     model.CategoryStreaming,
			Tags:         []string{"subscription"},
			Verified:     true,
			LastVerified: verified(2026, 6, 20),
		},
		{
			ID:           "spotify",
			Name:         "Spotify",
			Domains:      []string{"spotify.com"},
			Category:     model.CategoryStreaming,
			Tags:         []string{"subscription"},
			Verified:     true,
			LastVerified: verified(2026, 6, 20),
		},
		{
			ID:           "hulu",
			Name:         "Hulu",
			Domains:      []string{"hulu.com"},
			Category:     model.CategoryStreaming,
			Tags:         []string{"subscription"},
			Verified:     true,
			LastVerified: verified(2026, 6, 20),
		},
		{
			ID:           "disney-plus",
			Name:         "Disney+",
			Domains:      []string{"disneyplus.com"},
			Category:     model.CategoryStreaming,
			Tags:         []string{"subscription"},
			Verified:     true,
			LastVerified: verified(2026, 6, 20),
		},
		{
			ID:           "doordash",
			Name:         "DoorDash",
			Domains:      []string{"doordash.com"},
			Category:     model.CategoryDining,
			Tags:         []string{"delivery"},
			Verified:     true,
			LastVerified: verified(2026, 5, 30),
		},
		{
			ID:           "grubhub",
			Name:         "Grubhub",
			Domains:      []string{"grubhub.com", "seamless.com"},
			Category:     model.CategoryDining,
			Tags:         []string{"delivery"},
			Verified:     true,
			LastVerified: verified(2026, 5, 30),
		},
		{
			ID:           "ubereats",
			Name:         "Uber Eats",
			Domains:      []string{"ubereats.com"},
			Category:     model.CategoryDining,
			Tags:         []string{"delivery"},
			Verified:     true,
			LastVerified: verified(2026, 5, 30),
		},
		{
			ID:       "uber",
			Name:     "Uber",
			Domains:  []string{"uber.com"},
			Category: model.CategoryTransit,
			Tags:     []string{"rideshare"},
			CategoryRules: []model.CategoryRule{
				{
					Match:      "eats",
					Category:   model.CategoryDining,
					Confidence: model.ConfidenceMedium,
					Reason:     "Uber Eats path on uber.com",
				},
			},
			Verified:     true,
			LastVerified: verified(2026, 5, 30),
		},
		{
			ID:           "lyft",
			Name:         "Lyft",
			Domains:      []string{"lyft.com"},
			Category:     model.CategoryTransit,
			Tags:         []string{"rideshare"},
			Verified:     true,
			LastVerified: verified(2026, 5, 30),
		},
		{
			ID:           "delta",
			Name:         "Delta Air Lines",
			Domains:      []string{"delta.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"airline"},
			Verified:     true,
			LastVerified: verified(2026, 4, 22),
		},
		{
			ID:           "united",
			Name:         "United Airlines",
			Domains:      []string{"united.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"airline"},
			Verified:     true,
			LastVerified: verified(2026, 4, 22),
		},
		{
			ID:           "southwest",
			Name:         "Southwest Airlines",
			Domains:      []string{"southwest.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"airline"},
			Verified:     true,
			LastVerified: verified(2026, 4, 22),
		},
		{
			ID:           "marriott",
			Name:         "Marriott",
			Domains:      []string{"marriott.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"hotel"},
			Verified:     true,
			LastVerified: verified(2026, 4, 22),
		},
		{
			ID:           "hilton",
			Name:         "Hilton",
			Domains:      []string{"hilton.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"hotel"},
			Verified:     true,
			LastVerified: verified(2026, 4, 22),
		},
		{
			ID:           "airbnb",
			Name:         "Airbnb",
			Domains:      []string{"airbnb.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"lodging"},
			Verified:     true,
			LastVerified: verified(2026, 4, 22),
		},
		{
			ID:           "expedia",
			Name:         "Expedia",
			Domains:      []string{"expedia.com"},
			Category:     model.CategoryTravel,
			Tags:         []string{"booking"},
			Verified:     false,
			LastVerified: verified(2025, 11, 3),
		},
		{
			ID:           "shell",
			Name:         "Shell",
			Domains:      []string{"shell.com", "shell.us"},
			Category:     model.CategoryGas,
			Tags:         []string{"fuel"},
			Verified:     true,
			LastVerified: verified(2026, 3, 11),
		},
		{
			ID:           "chevron",
			Name:         "Chevron",
			Domains:      []string{"chevron.com"},
			Category:     model.CategoryGas,
			Tags:         []string{"fuel"},
			Verified:     true,
			LastVerified: verified(2026, 3, 11),
		},
		{
			ID:           "exxon",
			Name:         "Exxon Mobil",
			Domains:      []string{"exxon.com", "exxonmobil.com"},
			Category:     model.CategoryGas,
			Tags:         []string{"fuel"},
			Verified:     false,
			LastVerified: verified(2025, 12, 18),
		},
		{
			ID:           "home-depot",
			Name:         "The Home Depot",
			Domains:      []string{"homedepot.com"},
			Category:     model.CategoryHomeImprovement,
			Tags:         []string{"hardware"},
			Verified:     true,
			LastVerified: verified(2026, 5, 9),
		},
		{
			ID:           "lowes",
			Name:         "Lowe's",
			Domains:      []string{"lowes.com"},
			Category:     model.CategoryHomeImprovement,
			Tags:         []string{"hardware"},
			Verified:     true,
			LastVerified: verified(2026, 5, 9),
		},
		{
			ID:           "best-buy",
			Name:         "Best Buy",
			Domains:      []string{"bestbuy.com"},
			Category:     model.CategoryElectronics,
			Tags:         []string{"electronics"},
			Verified:     true,
			LastVerified: verified(2026, 5, 9),
		},
		{
			ID:           "apple",
			Name:         "Apple",
			Domains:      []string{"apple.com"},
			Category:     model.CategoryElectronics,
			Tags:         []string{"electronics"},
			CategoryRules: []model.CategoryRule{
				{
					Match:      "tv.apple.com",
					Category:   model.CategoryStreaming,
					Confidence: model.ConfidenceMedium,
					Reason:     "Apple TV+ subdomain",
				},
			},
			Verified:     true,
			LastVerified: verified(2026, 6, 2),
		},
		{
			ID:           "cvs",
			Name:         "CVS Pharmacy",
			Domains:      []string{"cvs.com"},
			Category:     model.CategoryDrugstore,
			Tags:         []string{"pharmacy"},
			Verified:     true,
			LastVerified: verified(2026, 4, 1),
		},
		{
			ID:           "walgreens",
			Name:         "Walgreens",
			Domains:      []string{"walgreens.com"},
			Category:     model.CategoryDrugstore,
			Tags:         []string{"pharmacy"},
			Verified:     true,
			LastVerified: verified(2026, 4, 1),
		},
		{
			ID:           "starbucks",
			Name:         "Starbucks",
			Domains:      []string{"starbucks.com"},
			Category:     model.CategoryDining,
			Tags:         []string{"coffee"},
			Verified:     true,
			LastVerified: verified(2026, 6, 7),
		},
		{
			ID:           "ticketmaster",
			Name:         "Ticketmaster",
			Domains:      []string{"ticketmaster.com"},
			Category:     model.CategoryEntertainment,
			Tags:         []string{"tickets"},
			Verified:     false,
			LastVerified: verified(2025, 10, 21),
		},
		{
			ID:           "comcast",
			Name:         "Xfinity",
			Domains:      []string{"xfinity.com", "comcast.com"},
			Category:     model.CategoryUtilities,
			Tags:         []string{"telecom"},
			Verified:     true,
			LastVerified: verified(2026, 1, 15),
		},
	}
}
