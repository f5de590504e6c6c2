// Package intelligence resolves a raw merchant URL into a category by
// consulting, in order: the override store, the curated registry, the
// heuristic pattern table, and the AI classifier. Every step is recorded
// in a decision trace that ships with the result.
package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/domain"
	"github.com/swipewise/swipewise/internal/heuristic"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/registry"
)

// OverrideStore is the subset of storage the orchestrator needs.
type OverrideStore interface {
	GetOverride(ctx context.Context, domain string) (*model.MerchantOverride, error)
	AddSuggestion(ctx context.Context, sg *model.PendingMerchantSuggestion) (*model.PendingMerchantSuggestion, error)
}

// AIClassifier asks an external model to categorize a merchant domain.
type AIClassifier interface {
	Classify(ctx context.Context, domain, rawURL string) (*model.AISuggestion, error)
}

// Orchestrator runs the resolution chain.
type Orchestrator struct {
	store     OverrideStore
	registry  *registry.Registry
	heuristic *heuristic.Classifier
	ai        AIClassifier
	logger    *slog.Logger
}

// New creates an orchestrator. ai may be nil to disable the AI tier
// entirely; store may be nil to skip overrides and review enqueueing.
func New(store OverrideStore, reg *registry.Registry, h *heuristic.Classifier, ai AIClassifier, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		store:     store,
		registry:  reg,
		heuristic: h,
		ai:        ai,
		logger:    logger,
	}
}

// Resolve runs the full chain including the AI tier.
func (o *Orchestrator) Resolve(ctx context.Context, rawURL, title string) (*model.MerchantContext, error) {
	return o.resolve(ctx, rawURL, title, true)
}

// ResolveFast runs the chain without the AI tier, for latency-sensitive
// callers. Heuristic verdicts are accepted at any confidence.
func (o *Orchestrator) ResolveFast(ctx context.Context, rawURL, title string) (*model.MerchantContext, error) {
	return o.resolve(ctx, rawURL, title, false)
}

func (o *Orchestrator) resolve(ctx context.Context, rawURL, title string, allowAI bool) (*model.MerchantContext, error) {
	normalized, ok := domain.ExtractRegistrableDomain(rawURL)
	if !ok {
		// Unparseable input still gets a result. The failure lands in
		// the trace and the caller decides how to surface it.
		mc := &model.MerchantContext{
			Domain:     rawURL,
			Category:   model.CategoryUnknown,
			Confidence: model.ConfidenceLow,
			Source:     model.SourceUnknown,
		}
		mc.Trace = append(mc.Trace, step("normalize", "fail",
			fmt.Sprintf("could not extract a registrable domain from %q", rawURL)))
		return mc, nil
	}

	mc := &model.MerchantContext{
		Domain:       normalized,
		MerchantName: domain.DisplayName(normalized),
	}

	if o.resolveOverride(ctx, mc) {
		return mc, nil
	}
	if o.resolveRegistry(mc, rawURL) {
		return mc, nil
	}

	// A confident heuristic verdict short-circuits the AI tier. A low
	// confidence one is held back as a fallback unless AI is disabled.
	hres := o.resolveHeuristic(mc, rawURL, title, allowAI)
	if mc.Source == model.SourceHeuristic {
		return mc, nil
	}

	if allowAI && o.ai != nil {
		if o.resolveAI(ctx, mc, rawURL) {
			return mc, nil
		}
		if hres != nil {
			o.applyHeuristic(mc, hres)
			mc.Trace = append(mc.Trace, step("heuristic", "fallback",
				"AI unavailable; using low confidence pattern "+hres.PatternName))
			return mc, nil
		}
	}

	mc.Category = model.CategoryUnknown
	mc.Confidence = model.ConfidenceLow
	mc.Source = model.SourceUnknown
	mc.Trace = append(mc.Trace, step("unknown", "fallthrough", "no tier produced a category"))
	return mc, nil
}

func (o *Orchestrator) resolveOverride(ctx context.Context, mc *model.MerchantContext) bool {
	if o.store == nil {
		mc.Trace = append(mc.Trace, step("override", "skip", "no override store configured"))
		return false
	}

	override, err := o.store.GetOverride(ctx, mc.Domain)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			// Storage trouble must not take resolution down with it.
			o.logger.Warn("Override lookup failed", "domain", mc.Domain, "error", err)
			mc.Trace = append(mc.Trace, step("override", "error", err.Error()))
			return false
		}
		mc.Trace = append(mc.Trace, step("override", "miss", ""))
		return false
	}

	mc.Category = override.Category
	mc.Confidence = model.ConfidenceHigh
	mc.Source = model.SourceOverride
	if override.Name != "" {
		mc.MerchantName = override.Name
	}
	mc.Trace = append(mc.Trace, step("override", "hit", "approved by "+override.ApprovedBy))
	return true
}

func (o *Orchestrator) resolveRegistry(mc *model.MerchantContext, rawURL string) bool {
	if o.registry == nil {
		mc.Trace = append(mc.Trace, step("registry", "skip", "no registry configured"))
		return false
	}

	match, ok := o.registry.Lookup(mc.Domain, rawURL)
	if !ok {
		mc.Trace = append(mc.Trace, step("registry", "miss", ""))
		return false
	}

	mc.Category = match.Category
	mc.Confidence = match.Confidence
	mc.Source = model.SourceRegistry
	mc.MerchantName = match.Record.Name
	mc.Exclusions = match.Record.Exclusions
	mc.IsWarehouse = match.Record.IsWarehouse

	detail := "record " + match.Record.ID
	if match.AppliedRule != nil {
		detail += "; rule " + match.AppliedRule.Match
	}
	mc.Trace = append(mc.Trace, step("registry", "hit", detail))
	return true
}

// resolveHeuristic applies a confident verdict directly and returns low
// confidence verdicts to the caller for possible fallback use. With the AI
// tier disabled any verdict is applied.
func (o *Orchestrator) resolveHeuristic(mc *model.MerchantContext, rawURL, title string, allowAI bool) *heuristic.Result {
	if o.heuristic == nil {
		mc.Trace = append(mc.Trace, step("heuristic", "skip", "no pattern table configured"))
		return nil
	}

	res := o.heuristic.Classify(rawURL, title)
	if res == nil {
		mc.Trace = append(mc.Trace, step("heuristic", "miss", ""))
		return nil
	}

	if res.Confidence.AtLeast(model.ConfidenceMedium) || !allowAI {
		o.applyHeuristic(mc, res)
		mc.Trace = append(mc.Trace, step("heuristic", "hit",
			fmt.Sprintf("pattern %s (%s)", res.PatternName, res.Confidence)))
		return res
	}

	mc.Trace = append(mc.Trace, step("heuristic", "weak",
		fmt.Sprintf("pattern %s held back at %s confidence", res.PatternName, res.Confidence)))
	return res
}

func (o *Orchestrator) applyHeuristic(mc *model.MerchantContext, res *heuristic.Result) {
	mc.Category = res.Category
	mc.Confidence = res.Confidence
	mc.Source = model.SourceHeuristic
}

func (o *Orchestrator) resolveAI(ctx context.Context, mc *model.MerchantContext, rawURL string) bool {
	suggestion, err := o.ai.Classify(ctx, mc.Domain, rawURL)
	if err != nil {
		o.logger.Warn("AI classification failed", "domain", mc.Domain, "error", err)
		mc.Trace = append(mc.Trace, step("ai", "error", err.Error()))
		return false
	}

	mc.Category = suggestion.Category
	mc.Confidence = suggestion.Confidence
	mc.Source = model.SourceAI
	mc.AISuggestion = suggestion
	if suggestion.MerchantName != "" {
		mc.MerchantName = suggestion.MerchantName
	}

	outcome := "hit"
	if suggestion.FromCache {
		outcome = "cache-hit"
	}
	mc.Trace = append(mc.Trace, step("ai", outcome, suggestion.Rationale))

	// Fresh AI verdicts feed the review queue so a human can promote
	// them into overrides. Cache hits were already enqueued once.
	if o.store != nil && !suggestion.FromCache {
		o.enqueueSuggestion(ctx, mc, rawURL, suggestion)
	}
	return true
}

func (o *Orchestrator) enqueueSuggestion(ctx context.Context, mc *model.MerchantContext, rawURL string, suggestion *model.AISuggestion) {
	_, err := o.store.AddSuggestion(ctx, &model.PendingMerchantSuggestion{
		URL:        rawURL,
		Domain:     mc.Domain,
		Category:   suggestion.Category,
		Confidence: suggestion.Confidence,
		Rationale:  suggestion.Rationale,
		Source:     model.SuggestionSourceAI,
	})
	if err != nil {
		o.logger.Warn("Failed to enqueue review suggestion", "domain", mc.Domain, "error", err)
		mc.Trace = append(mc.Trace, step("review", "error", err.Error()))
		return
	}
	mc.Trace = append(mc.Trace, step("review", "enqueued", ""))
}

func step(name, outcome, detail string) model.ResolutionStep {
	return model.ResolutionStep{
		At:      time.Now().UTC(),
		Step:    name,
		Outcome: outcome,
		Detail:  detail,
	}
}
