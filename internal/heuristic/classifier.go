// Package heuristic infers a merchant category from URL and page-title
// keywords when neither the override store nor the registry matches. The
// table is first-match: no scoring or aggregation across entries, a
// deliberate precision/simplicity tradeoff.
package heuristic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/swipewise/swipewise/internal/model"
)

// Result is one heuristic verdict.
type Result struct {
	PatternName string
	Category    model.Category
	Confidence  model.Confidence
	Reason      string
	FromTitle   bool
}

type compiledPattern struct {
	re *regexp.Regexp
	Pattern
}

// Classifier evaluates the ordered pattern table.
type Classifier struct {
	patterns []compiledPattern
}

// NewClassifier compiles the given patterns, preserving their order.
func NewClassifier(patterns []Pattern) (*Classifier, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		expr := p.Regex
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p.Name, err)
		}
		compiled = append(compiled, compiledPattern{Pattern: p, re: re})
	}
	return &Classifier{patterns: compiled}, nil
}

// NewDefaultClassifier compiles the built-in table.
func NewDefaultClassifier() (*Classifier, error) {
	return NewClassifier(DefaultPatterns())
}

// ClassifyURL runs the table against the lowercased URL. First match wins.
func (c *Classifier) ClassifyURL(rawURL string) *Result {
	if rawURL == "" {
		return nil
	}
	lower := strings.ToLower(rawURL)
	for _, p := range c.patterns {
		if p.re.MatchString(lower) {
			return &Result{
				PatternName: p.Name,
				Category:    p.Category,
				Confidence:  p.Confidence,
				Reason:      p.Reason,
			}
		}
	}
	return nil
}

// ClassifyTitle runs the table against a page title. Title matches are
// always forced to low confidence: titles are attacker- and SEO-controlled.
func (c *Classifier) ClassifyTitle(title string) *Result {
	if title == "" {
		return nil
	}
	lower := strings.ToLower(title)
	for _, p := range c.patterns {
		if p.re.MatchString(lower) {
			return &Result{
				PatternName: p.Name,
				Category:    p.Category,
				Confidence:  model.ConfidenceLow,
				Reason:      p.Reason + " (from title)",
				FromTitle:   true,
			}
		}
	}
	return nil
}

// Classify combines URL and title passes. Agreement on category boosts
// confidence to high; disagreement prefers the URL result.
func (c *Classifier) Classify(rawURL, title string) *Result {
	urlResult := c.ClassifyURL(rawURL)
	titleResult := c.ClassifyTitle(title)

	switch {
	case urlResult == nil:
		return titleResult
	case titleResult == nil:
		return urlResult
	case urlResult.Category == titleResult.Category:
		boosted := *urlResult
		boosted.Confidence = model.ConfidenceHigh
		boosted.Reason = urlResult.Reason + "; title agrees"
		return &boosted
	default:
		return urlResult
	}
}
