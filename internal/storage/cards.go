package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// SaveCard upserts a card with its reward rules, exclusions, and benefits.
// Child rows are replaced wholesale; the catalog is the source of truth.
func (s *Store) SaveCard(ctx context.Context, card *model.Card) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if card == nil {
		return fmt.Errorf("%w: card", ErrNilParameter)
	}
	if err := validateString(card.ID, "card.ID"); err != nil {
		return err
	}
	for i := range card.Rules {
		if err := validateCategory(card.Rules[i].Category); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin card save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	kind := card.Kind
	if kind == "" {
		kind = model.CardKindDB
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cards (id, name, issuer, network, kind, annual_fee, base_rate, verified, last_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			issuer = excluded.issuer,
			network = excluded.network,
			kind = excluded.kind,
			annual_fee = excluded.annual_fee,
			base_rate = excluded.base_rate,
			verified = excluded.verified,
			last_verified = excluded.last_verified
	`, card.ID, card.Name, card.Issuer, card.Network, string(kind),
		card.AnnualFee, card.BaseRate, card.Verified, nullableTime(card.LastVerified)); err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	for _, table := range []string{"reward_rules", "card_exclusions", "card_benefits"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE card_id = ?`, table), card.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, rule := range card.Rules {
		var capAmount any
		var capPeriod any
		if rule.Cap != nil {
			capAmount = rule.Cap.Amount
			capPeriod = string(rule.Cap.Period)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reward_rules (card_id, category, multiplier, priority, cap_amount, cap_period, conditions, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, card.ID, string(rule.Category), rule.Multiplier, rule.Priority,
			capAmount, capPeriod, rule.Conditions, rule.Notes); err != nil {
			return fmt.Errorf("failed to save reward rule: %w", err)
		}
	}

	for _, excl := range card.Exclusions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card_exclusions (card_id, pattern, reason) VALUES (?, ?, ?)
		`, card.ID, excl.Pattern, excl.Reason); err != nil {
			return fmt.Errorf("failed to save card exclusion: %w", err)
		}
	}

	for _, b := range card.Benefits {
		merchants, err := json.Marshal(b.TriggerMerchants)
		if err != nil {
			return fmt.Errorf("failed to marshal benefit merchants: %w", err)
		}
		categories, err := json.Marshal(b.TriggerCategories)
		if err != nil {
			return fmt.Errorf("failed to marshal benefit categories: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card_benefits (card_id, name, amount, period, trigger_merchants, trigger_categories)
			VALUES (?, ?, ?, ?, ?, ?)
		`, card.ID, b.Name, b.Amount, string(b.Period), string(merchants), string(categories)); err != nil {
			return fmt.Errorf("failed to save card benefit: %w", err)
		}
	}

	return tx.Commit()
}

// GetCard loads a card with all child rows, or common.ErrNotFound.
func (s *Store) GetCard(ctx context.Context, id string) (*model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var card model.Card
	var kind string
	var lastVerified sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(issuer,''), COALESCE(network,''), kind,
		       annual_fee, base_rate, verified, last_verified
		FROM cards WHERE id = ?
	`, id).Scan(&card.ID, &card.Name, &card.Issuer, &card.Network, &kind,
		&card.AnnualFee, &card.BaseRate, &card.Verified, &lastVerified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	card.Kind = model.CardKind(kind)
	if lastVerified.Valid {
		card.LastVerified = lastVerified.Time
	}

	if err := s.loadCardChildren(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// ListCards returns all cards with child rows, in catalog (insertion) order.
func (s *Store) ListCards(ctx context.Context) ([]model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryCards(ctx, `
		SELECT id, name, COALESCE(issuer,''), COALESCE(network,''), kind,
		       annual_fee, base_rate, verified, last_verified
		FROM cards ORDER BY rowid
	`)
}

// AddToWallet attaches a catalog card to a user's wallet.
func (s *Store) AddToWallet(ctx context.Context, userID, cardID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if _, err := s.GetCard(ctx, cardID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wallets (user_id, card_id, added_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id, card_id) DO NOTHING
	`, userID, cardID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add card to wallet: %w", err)
	}
	return nil
}

// RemoveFromWallet detaches a card from a user's wallet.
func (s *Store) RemoveFromWallet(ctx context.Context, userID, cardID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM wallets WHERE user_id = ? AND card_id = ?`, userID, cardID); err != nil {
		return fmt.Errorf("failed to remove card from wallet: %w", err)
	}
	return nil
}

// GetWallet loads the user's cards in the order they were added.
func (s *Store) GetWallet(ctx context.Context, userID string) ([]model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	return s.queryCards(ctx, `
		SELECT c.id, c.name, COALESCE(c.issuer,''), COALESCE(c.network,''), c.kind,
		       c.annual_fee, c.base_rate, c.verified, c.last_verified
		FROM cards c
		JOIN wallets w ON w.card_id = c.id
		WHERE w.user_id = ?
		ORDER BY w.added_at, c.rowid
	`, userID)
}

func (s *Store) queryCards(ctx context.Context, query string, args ...any) ([]model.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []model.Card
	for rows.Next() {
		var card model.Card
		var kind string
		var lastVerified sql.NullTime
		if err := rows.Scan(&card.ID, &card.Name, &card.Issuer, &card.Network, &kind,
			&card.AnnualFee, &card.BaseRate, &card.Verified, &lastVerified); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		card.Kind = model.CardKind(kind)
		if lastVerified.Valid {
			card.LastVerified = lastVerified.Time
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cards {
		if err := s.loadCardChildren(ctx, &cards[i]); err != nil {
			return nil, err
		}
	}
	return cards, nil
}

func (s *Store) loadCardChildren(ctx context.Context, card *model.Card) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, multiplier, priority, cap_amount, cap_period,
		       COALESCE(conditions,''), COALESCE(notes,'')
		FROM reward_rules WHERE card_id = ? ORDER BY priority DESC, id
	`, card.ID)
	if err != nil {
		return fmt.Errorf("failed to query reward rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rule model.RewardRule
		var category string
		var capAmount sql.NullFloat64
		var capPeriod sql.NullString
		if err := rows.Scan(&category, &rule.Multiplier, &rule.Priority,
			&capAmount, &capPeriod, &rule.Conditions, &rule.Notes); err != nil {
			return fmt.Errorf("failed to scan reward rule: %w", err)
		}
		rule.Category = model.Category(category)
		if capAmount.Valid && capPeriod.Valid {
			rule.Cap = &model.RewardCap{
				Amount: capAmount.Float64,
				Period: model.CapPeriod(capPeriod.String),
			}
		}
		card.Rules = append(card.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	exclRows, err := s.db.QueryContext(ctx, `
		SELECT pattern, COALESCE(reason,'') FROM card_exclusions WHERE card_id = ? ORDER BY id
	`, card.ID)
	if err != nil {
		return fmt.Errorf("failed to query card exclusions: %w", err)
	}
	defer func() { _ = exclRows.Close() }()

	for exclRows.Next() {
		var excl model.MerchantExclusion
		if err := exclRows.Scan(&excl.Pattern, &excl.Reason); err != nil {
			return fmt.Errorf("failed to scan card exclusion: %w", err)
		}
		card.Exclusions = append(card.Exclusions, excl)
	}
	if err := exclRows.Err(); err != nil {
		return err
	}

	benefitRows, err := s.db.QueryContext(ctx, `
		SELECT name, amount, period, COALESCE(trigger_merchants,'[]'), COALESCE(trigger_categories,'[]')
		FROM card_benefits WHERE card_id = ? ORDER BY id
	`, card.ID)
	if err != nil {
		return fmt.Errorf("failed to query card benefits: %w", err)
	}
	defer func() { _ = benefitRows.Close() }()

	for benefitRows.Next() {
		var b model.CardBenefit
		var period, merchants, categories string
		if err := benefitRows.Scan(&b.Name, &b.Amount, &period, &merchants, &categories); err != nil {
			return fmt.Errorf("failed to scan card benefit: %w", err)
		}
		b.Period = model.BenefitPeriod(period)
		if err := json.Unmarshal([]byte(merchants), &b.TriggerMerchants); err != nil {
			return fmt.Errorf("failed to decode benefit merchants: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &b.TriggerCategories); err != nil {
			return fmt.Errorf("failed to decode benefit categories: %w", err)
		}
		card.Benefits = append(card.Benefits, b)
	}
	return benefitRows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
