package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// AddSuggestion enqueues a review-queue entry. Idempotent per domain while
// a suggestion is pending: if one already exists, the existing entry is
// returned instead of creating a duplicate.
func (s *Store) AddSuggestion(ctx context.Context, sg *model.PendingMerchantSuggestion) (*model.PendingMerchantSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSuggestion(sg); err != nil {
		return nil, err
	}

	domain := strings.ToLower(sg.Domain)

	if existing, err := s.PendingSuggestionForDomain(ctx, domain); err == nil {
		return existing, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	entry := *sg
	entry.ID = uuid.NewString()
	entry.Domain = domain
	entry.Status = model.SuggestionPending
	entry.CreatedAt = now
	entry.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_suggestions
			(id, url, domain, category, confidence, rationale, source, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.URL, entry.Domain, string(entry.Category), string(entry.Confidence),
		entry.Rationale, string(entry.Source), string(entry.Status), entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		// The partial unique index catches the race where two callers
		// classify the same new domain concurrently; coalesce to the winner.
		if existing, lookupErr := s.PendingSuggestionForDomain(ctx, domain); lookupErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to add suggestion: %w", err)
	}

	return &entry, nil
}

// PendingSuggestionForDomain finds the pending entry for a domain, or
// common.ErrNotFound.
func (s *Store) PendingSuggestionForDomain(ctx context.Context, domain string) (*model.PendingMerchantSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, domain, category, confidence, rationale, source, status,
		       COALESCE(reviewer_notes, ''), created_at, updated_at
		FROM merchant_suggestions
		WHERE domain = ? AND status = 'pending'
	`, strings.ToLower(domain))
	return scanSuggestion(row)
}

// GetSuggestion retrieves a suggestion by id, or common.ErrNotFound.
func (s *Store) GetSuggestion(ctx context.Context, id string) (*model.PendingMerchantSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, domain, category, confidence, rationale, source, status,
		       COALESCE(reviewer_notes, ''), created_at, updated_at
		FROM merchant_suggestions
		WHERE id = ?
	`, id)
	return scanSuggestion(row)
}

// ListSuggestions returns suggestions with the given status, newest first.
// An empty status lists everything.
func (s *Store) ListSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.PendingMerchantSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, url, domain, category, confidence, rationale, source, status,
		       COALESCE(reviewer_notes, ''), created_at, updated_at
		FROM merchant_suggestions`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.PendingMerchantSuggestion
	for rows.Next() {
		var sg model.PendingMerchantSuggestion
		var category, confidence, source, st string
		if err := rows.Scan(&sg.ID, &sg.URL, &sg.Domain, &category, &confidence,
			&sg.Rationale, &source, &st, &sg.ReviewerNotes, &sg.CreatedAt, &sg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		sg.Category = model.Category(category)
		sg.Confidence = model.Confidence(confidence)
		sg.Source = model.SuggestionSource(source)
		sg.Status = model.SuggestionStatus(st)
		out = append(out, sg)
	}
	return out, rows.Err()
}

// ApproveSuggestion marks a pending suggestion approved and converts it into
// a merchant override in the same transaction. Terminal: approved entries
// never return to pending.
func (s *Store) ApproveSuggestion(ctx context.Context, id, approver, notes string) (*model.MerchantOverride, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(approver, "approver"); err != nil {
		return nil, err
	}

	sg, err := s.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if sg.Status != model.SuggestionPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, id, sg.Status)
	}

	now := time.Now().UTC()
	override := &model.MerchantOverride{
		Domain:     sg.Domain,
		Name:       overrideDisplayName(sg),
		Category:   sg.Category,
		Rationale:  sg.Rationale,
		ApprovedBy: approver,
		ApprovedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE merchant_suggestions
		SET status = 'approved', reviewer_notes = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
	`, notes, now, id); err != nil {
		return nil, fmt.Errorf("failed to approve suggestion: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO merchant_overrides (domain, name, category, rationale, approved_by, approved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			rationale = excluded.rationale,
			approved_by = excluded.approved_by,
			approved_at = excluded.approved_at
	`, override.Domain, override.Name, string(override.Category), override.Rationale,
		override.ApprovedBy, override.ApprovedAt); err != nil {
		return nil, fmt.Errorf("failed to create override from suggestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	return override, nil
}

// RejectSuggestion marks a pending suggestion rejected. Terminal.
func (s *Store) RejectSuggestion(ctx context.Context, id, notes string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	sg, err := s.GetSuggestion(ctx, id)
	if err != nil {
		return err
	}
	if sg.Status != model.SuggestionPending {
		return fmt.Errorf("%w: %s is %s", ErrInvalidTransition, id, sg.Status)
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE merchant_suggestions
		SET status = 'rejected', reviewer_notes = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
	`, notes, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to reject suggestion: %w", err)
	}
	return nil
}

func scanSuggestion(row *sql.Row) (*model.PendingMerchantSuggestion, error) {
	var sg model.PendingMerchantSuggestion
	var category, confidence, source, status string
	err := row.Scan(&sg.ID, &sg.URL, &sg.Domain, &category, &confidence,
		&sg.Rationale, &source, &status, &sg.ReviewerNotes, &sg.CreatedAt, &sg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan suggestion: %w", err)
	}
	sg.Category = model.Category(category)
	sg.Confidence = model.Confidence(confidence)
	sg.Source = model.SuggestionSource(source)
	sg.Status = model.SuggestionStatus(status)
	return &sg, nil
}

func overrideDisplayName(sg *model.PendingMerchantSuggestion) string {
	// Prefer the domain's base label over the rationale text.
	name := sg.Domain
	if idx := strings.Index(name, "."); idx > 0 {
		name = name[:idx]
	}
	if name == "" {
		return sg.Domain
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
