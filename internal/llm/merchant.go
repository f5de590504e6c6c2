package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/domain"
	"github.com/swipewise/swipewise/internal/model"
)

// DefaultCacheTTL is how long an AI classification stays fresh. Merchants
// rarely change category, so the window is generous.
const DefaultCacheTTL = 30 * 24 * time.Hour

// SuggestionCache persists AI classifications across processes.
type SuggestionCache interface {
	GetAICache(ctx context.Context, domain string, ttl time.Duration) (*model.AISuggestion, bool, error)
	PutAICache(ctx context.Context, domain string, suggestion *model.AISuggestion) error
}

// MerchantClassifier asks an LLM what kind of merchant a domain is, with a
// persistent cache in front of the provider.
type MerchantClassifier struct {
	client Client
	cache  SuggestionCache
	logger *slog.Logger
	ttl    time.Duration
}

// NewMerchantClassifier creates a classifier. cache may be nil, in which
// case every call goes to the provider.
func NewMerchantClassifier(client Client, cache SuggestionCache, logger *slog.Logger) *MerchantClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &MerchantClassifier{
		client: client,
		cache:  cache,
		logger: logger,
		ttl:    DefaultCacheTTL,
	}
}

// Classify returns the AI's best category for a merchant domain. On
// provider failure or an unusable reply it returns a conservative fallback
// suggestion alongside a non-nil error, so callers can decide whether to
// use the fallback or discard it.
func (m *MerchantClassifier) Classify(ctx context.Context, merchantDomain, rawURL string) (*model.AISuggestion, error) {
	if cached := m.lookupCache(ctx, merchantDomain); cached != nil {
		return cached, nil
	}

	fallback := &model.AISuggestion{
		Category:     model.CategoryOther,
		Confidence:   model.ConfidenceLow,
		MerchantName: domain.DisplayName(merchantDomain),
		Rationale:    "classification unavailable",
	}

	// One attempt only. A slow or flaky provider fails the call; the
	// caller already holds a fallback and the next request can retry.
	content, err := m.client.Complete(ctx, merchantSystemPrompt, m.buildPrompt(merchantDomain, rawURL))
	if err != nil {
		if errors.Is(err, common.ErrAICreditsExhausted) {
			return fallback, common.ErrAICreditsExhausted
		}
		return fallback, fmt.Errorf("%w: %v", common.ErrAIUnavailable, err)
	}

	suggestion, err := parseMerchantReply(content)
	if err != nil {
		m.logger.Warn("Unusable AI classification reply",
			"domain", merchantDomain,
			"error", err)
		return fallback, err
	}
	if suggestion.MerchantName == "" {
		suggestion.MerchantName = domain.DisplayName(merchantDomain)
	}

	if m.cache != nil {
		if cacheErr := m.cache.PutAICache(ctx, merchantDomain, suggestion); cacheErr != nil {
			m.logger.Warn("Failed to cache AI classification",
				"domain", merchantDomain,
				"error", cacheErr)
		}
	}
	return suggestion, nil
}

func (m *MerchantClassifier) lookupCache(ctx context.Context, merchantDomain string) *model.AISuggestion {
	if m.cache == nil {
		return nil
	}
	cached, hit, err := m.cache.GetAICache(ctx, merchantDomain, m.ttl)
	if err != nil {
		m.logger.Warn("AI cache lookup failed",
			"domain", merchantDomain,
			"error", err)
		return nil
	}
	if !hit {
		return nil
	}
	return cached
}

const merchantSystemPrompt = "You are a merchant classifier for a credit card rewards tool. " +
	"You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, " +
	"markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

func (m *MerchantClassifier) buildPrompt(merchantDomain, rawURL string) string {
	var sb strings.Builder
	sb.WriteString("Classify the merchant at this domain into exactly one category.\n\n")
	fmt.Fprintf(&sb, "Domain: %s\n", merchantDomain)
	if rawURL != "" && rawURL != merchantDomain {
		fmt.Fprintf(&sb, "Full URL: %s\n", rawURL)
	}
	sb.WriteString("\nValid categories (choose one, exactly as written):\n")
	for _, cat := range model.AllCategories() {
		fmt.Fprintf(&sb, "- %s\n", cat)
	}
	sb.WriteString("\nRespond with JSON in this shape:\n")
	sb.WriteString(`{"category": "dining", "confidence": "medium", "merchant_name": "Example Eats", "rationale": "one short sentence"}`)
	sb.WriteString("\n\nconfidence must be one of: low, medium, high. ")
	sb.WriteString("If you are unsure, use the category \"other\" with confidence \"low\".")
	return sb.String()
}

// parseMerchantReply decodes and validates the model's JSON reply. Any
// category outside the closed set is rejected, never passed through.
func parseMerchantReply(content string) (*model.AISuggestion, error) {
	var reply struct {
		Category     string `json:"category"`
		Confidence   string `json:"confidence"`
		MerchantName string `json:"merchant_name"`
		Rationale    string `json:"rationale"`
	}

	content = cleanMarkdownWrapper(content)
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIMalformed, err)
	}

	category, err := model.ParseCategory(reply.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIMalformed, err)
	}

	confidence := model.Confidence(strings.ToLower(strings.TrimSpace(reply.Confidence)))
	switch confidence {
	case model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh:
	default:
		confidence = model.ConfidenceLow
	}

	return &model.AISuggestion{
		Category:     category,
		Confidence:   confidence,
		MerchantName: strings.TrimSpace(reply.MerchantName),
		Rationale:    strings.TrimSpace(reply.Rationale),
	}, nil
}
