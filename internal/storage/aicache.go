package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/swipewise/swipewise/internal/model"
)

// aiCachePayload is the stored JSON shape for cached AI classifications.
type aiCachePayload struct {
	Category     string `json:"category"`
	Confidence   string `json:"confidence"`
	Rationale    string `json:"rationale"`
	MerchantName string `json:"merchant_name"`
}

// GetAICache returns the cached classification for a domain if one exists
// and is younger than ttl. A corrupt stored payload degrades to a cache
// miss (and evicts the row) rather than propagating an error.
func (s *Store) GetAICache(ctx context.Context, domain string, ttl time.Duration) (*model.AISuggestion, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateString(domain, "domain"); err != nil {
		return nil, false, err
	}

	domain = strings.ToLower(domain)

	var payload string
	var cachedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, cached_at FROM ai_merchant_cache WHERE domain = ?`, domain,
	).Scan(&payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read ai cache: %w", err)
	}

	if time.Since(cachedAt) > ttl {
		return nil, false, nil
	}

	var stored aiCachePayload
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		slog.Warn("evicting corrupt ai cache entry", "domain", domain, "error", err)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM ai_merchant_cache WHERE domain = ?`, domain)
		return nil, false, nil
	}

	category, err := model.ParseCategory(stored.Category)
	if err != nil {
		slog.Warn("evicting ai cache entry with invalid category", "domain", domain, "error", err)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM ai_merchant_cache WHERE domain = ?`, domain)
		return nil, false, nil
	}

	return &model.AISuggestion{
		Category:     category,
		Confidence:   model.Confidence(stored.Confidence),
		Rationale:    stored.Rationale,
		MerchantName: stored.MerchantName,
		CachedAt:     cachedAt,
		FromCache:    true,
	}, true, nil
}

// PutAICache stores a classification for a domain, replacing any previous
// entry.
func (s *Store) PutAICache(ctx context.Context, domain string, sg *model.AISuggestion) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(domain, "domain"); err != nil {
		return err
	}
	if sg == nil {
		return fmt.Errorf("%w: suggestion", ErrNilParameter)
	}

	payload, err := json.Marshal(aiCachePayload{
		Category:     string(sg.Category),
		Confidence:   string(sg.Confidence),
		Rationale:    sg.Rationale,
		MerchantName: sg.MerchantName,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ai cache payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ai_merchant_cache (domain, payload, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			payload = excluded.payload,
			cached_at = excluded.cached_at
	`, strings.ToLower(domain), string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write ai cache: %w", err)
	}
	return nil
}
