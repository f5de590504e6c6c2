package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/model"
)

func TestLookupExactAndSubdomain(t *testing.T) {
	r := Default()

	tests := []struct {
		name       string
		domain     string
		wantID     string
		wantFound  bool
		wantMedium bool
	}{
		{name: "exact match", domain: "costco.com", wantID: "costco", wantFound: true},
		{name: "proper subdomain", domain: "smile.amazon.com", wantID: "amazon", wantFound: true},
		{name: "deep subdomain", domain: "a.b.netflix.com", wantID: "netflix", wantFound: true},
		{name: "suffix but not subdomain", domain: "notcostco.com", wantFound: false},
		{name: "unknown domain", domain: "example.org", wantFound: false},
		{name: "unverified record is medium", domain: "expedia.com", wantID: "expedia", wantFound: true, wantMedium: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, found := r.Lookup(tt.domain, "")
			assert.Equal(t, tt.wantFound, found)
			if !found {
				return
			}
			assert.Equal(t, tt.wantID, m.Record.ID)
			if tt.wantMedium {
				assert.Equal(t, model.ConfidenceMedium, m.Confidence)
			} else {
				assert.Equal(t, model.ConfidenceHigh, m.Confidence)
			}
		})
	}
}

func TestLookupPathCategoryRule(t *testing.T) {
	r := Default()

	// Default category without a rule match.
	m, found := r.Lookup("amazon.com", "https://www.amazon.com/dp/B000")
	require.True(t, found)
	assert.Equal(t, model.CategoryOnlineShopping, m.Category)
	assert.Nil(t, m.AppliedRule)

	// Path rule overrides the default and carries its own confidence.
	m, found = r.Lookup("amazon.com", "https://www.amazon.com/alm/storefront?ref=nav")
	require.True(t, found)
	assert.Equal(t, model.CategoryGroceries, m.Category)
	require.NotNil(t, m.AppliedRule)
	assert.Equal(t, model.ConfidenceMedium, m.Confidence)
}

func TestLookupCarriesExclusionFlags(t *testing.T) {
	r := Default()

	m, found := r.Lookup("costco.com", "https://www.costco.com/cart")
	require.True(t, found)
	assert.True(t, m.Record.IsWarehouse)
	assert.Contains(t, m.Record.Exclusions, model.ExclusionGrocery)
	assert.Contains(t, m.Record.Exclusions, model.ExclusionWarehouse)
}

func TestRecordsInvariantLowercaseUniqueDomains(t *testing.T) {
	seen := make(map[string]string)
	for _, rec := range DefaultRecords() {
		require.NotEmpty(t, rec.Domains, rec.ID)
		for _, d := range rec.Domains {
			assert.Equal(t, strings.ToLower(d), d, "domain must be lower-cased: %s", d)
			prev, dup := seen[d]
			assert.False(t, dup, "domain %s appears in both %s and %s", d, prev, rec.ID)
			seen[d] = rec.ID
		}
		assert.True(t, rec.Category.Valid(), rec.ID)
	}
}
