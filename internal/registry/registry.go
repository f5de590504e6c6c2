// Package registry holds the curated merchant table and its lookup rules.
// The table is ordered as authored: lookup is first-match by domain suffix,
// so re-sorting it would change results.
package registry

import (
	"strings"
	"time"

	"github.com/swipewise/swipewise/internal/model"
)

// Registry wraps the curated merchant table.
type Registry struct {
	records []model.MerchantRecord
}

// New returns a registry over the given records, preserving their order.
func New(records []model.MerchantRecord) *Registry {
	return &Registry{records: records}
}

// Default returns the registry over the built-in curated table.
func Default() *Registry {
	return New(DefaultRecords())
}

// Match is a registry hit with any path-scoped category rule that applied.
type Match struct {
	Record      *model.MerchantRecord
	AppliedRule *model.CategoryRule
	Category    model.Category
	Confidence  model.Confidence
}

// Lookup finds the first record matching the normalized domain. A domain
// matches when it equals a registered domain exactly or is a proper
// subdomain of one. rawURL is consulted only for path-scoped category
// rules; pass the original URL, not the normalized domain.
func (r *Registry) Lookup(domain, rawURL string) (*Match, bool) {
	domain = strings.ToLower(domain)

	for i := range r.records {
		rec := &r.records[i]
		if !domainMatches(domain, rec.Domains) {
			continue
		}

		m := &Match{
			Record:   rec,
			Category: rec.Category,
		}
		if rec.Verified {
			m.Confidence = model.ConfidenceHigh
		} else {
			m.Confidence = model.ConfidenceMedium
		}

		if rule := matchCategoryRule(rec, rawURL); rule != nil {
			m.AppliedRule = rule
			m.Category = rule.Category
			m.Confidence = rule.Confidence
		}

		return m, true
	}

	return nil, false
}

// Records exposes the table in authored order, for admin listings.
func (r *Registry) Records() []model.MerchantRecord {
	return r.records
}

func domainMatches(domain string, registered []string) bool {
	for _, d := range registered {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

// matchCategoryRule tests a record's path-scoped rules against the URL's
// path and query. First matching rule wins.
func matchCategoryRule(rec *model.MerchantRecord, rawURL string) *model.CategoryRule {
	if len(rec.CategoryRules) == 0 || rawURL == "" {
		return nil
	}

	lower := strings.ToLower(rawURL)
	for i := range rec.CategoryRules {
		rule := &rec.CategoryRules[i]
		if rule.Match != "" && strings.Contains(lower, strings.ToLower(rule.Match)) {
			return rule
		}
	}
	return nil
}

func verified(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
