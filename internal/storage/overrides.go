package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// GetOverride retrieves the override for a domain, or common.ErrNotFound.
func (s *Store) GetOverride(ctx context.Context, domain string) (*model.MerchantOverride, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(domain, "domain"); err != nil {
		return nil, err
	}

	var o model.MerchantOverride
	var category string
	err := s.db.QueryRowContext(ctx, `
		SELECT domain, name, category, rationale, approved_by, approved_at
		FROM merchant_overrides
		WHERE domain = ?
	`, strings.ToLower(domain)).Scan(
		&o.Domain, &o.Name, &category, &o.Rationale, &o.ApprovedBy, &o.ApprovedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get override: %w", err)
	}

	o.Category = model.Category(category)
	return &o, nil
}

// SetOverride saves an override, unconditionally replacing any existing
// entry for that domain. Last write wins, no merge.
func (s *Store) SetOverride(ctx context.Context, o *model.MerchantOverride) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOverride(o); err != nil {
		return err
	}

	if o.ApprovedAt.IsZero() {
		o.ApprovedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_overrides (domain, name, category, rationale, approved_by, approved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			rationale = excluded.rationale,
			approved_by = excluded.approved_by,
			approved_at = excluded.approved_at
	`, strings.ToLower(o.Domain), o.Name, string(o.Category), o.Rationale, o.ApprovedBy, o.ApprovedAt)
	if err != nil {
		return fmt.Errorf("failed to set override: %w", err)
	}

	return nil
}

// DeleteOverride removes an override. Missing domains are not an error.
func (s *Store) DeleteOverride(ctx context.Context, domain string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(domain, "domain"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM merchant_overrides WHERE domain = ?`, strings.ToLower(domain),
	); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// ListOverrides returns all overrides ordered by domain.
func (s *Store) ListOverrides(ctx context.Context) ([]model.MerchantOverride, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, name, category, rationale, approved_by, approved_at
		FROM merchant_overrides
		ORDER BY domain
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var overrides []model.MerchantOverride
	for rows.Next() {
		var o model.MerchantOverride
		var category string
		if err := rows.Scan(&o.Domain, &o.Name, &category, &o.Rationale, &o.ApprovedBy, &o.ApprovedAt); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		o.Category = model.Category(category)
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
