package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// SaveProfile upserts a user's credit profile.
func (s *Store) SaveProfile(ctx context.Context, p *model.CreditProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: profile", ErrNilParameter)
	}
	if err := validateString(p.UserID, "userID"); err != nil {
		return err
	}

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_profiles
			(user_id, experience, intent, history, income_bucket, age_bucket, preferred_depth,
			 card_count, carries_balance, uses_bnpl, has_derogatories, has_premium_card,
			 fee_tolerant, onboarding_complete, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			experience = excluded.experience,
			intent = excluded.intent,
			history = excluded.history,
			income_bucket = excluded.income_bucket,
			age_bucket = excluded.age_bucket,
			preferred_depth = excluded.preferred_depth,
			card_count = excluded.card_count,
			carries_balance = excluded.carries_balance,
			uses_bnpl = excluded.uses_bnpl,
			has_derogatories = excluded.has_derogatories,
			has_premium_card = excluded.has_premium_card,
			fee_tolerant = excluded.fee_tolerant,
			onboarding_complete = excluded.onboarding_complete,
			updated_at = excluded.updated_at
	`, p.UserID, string(p.Experience), string(p.Intent), string(p.History),
		p.IncomeBucket, p.AgeBucket, string(p.PreferredDepth),
		p.CardCount, p.CarriesBalance, p.UsesBNPL, p.HasDerogatories,
		p.HasPremiumCard, p.FeeTolerant, p.OnboardingComplete, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile loads a user's credit profile, or common.ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, userID string) (*model.CreditProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var p model.CreditProfile
	var experience, intent, history, depth string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, experience, intent, history, COALESCE(income_bucket,''),
		       COALESCE(age_bucket,''), COALESCE(preferred_depth,''), card_count,
		       carries_balance, uses_bnpl, has_derogatories, has_premium_card,
		       fee_tolerant, onboarding_complete, updated_at
		FROM credit_profiles WHERE user_id = ?
	`, userID).Scan(&p.UserID, &experience, &intent, &history, &p.IncomeBucket,
		&p.AgeBucket, &depth, &p.CardCount, &p.CarriesBalance, &p.UsesBNPL,
		&p.HasDerogatories, &p.HasPremiumCard, &p.FeeTolerant,
		&p.OnboardingComplete, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Experience = model.ExperienceLevel(experience)
	p.Intent = model.Intent(intent)
	p.History = model.HistoryBucket(history)
	p.PreferredDepth = model.AnswerDepth(depth)
	return &p, nil
}

// SaveCalibration upserts a user's calibration answers.
func (s *Store) SaveCalibration(ctx context.Context, c *model.CalibrationAnswers) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: calibration", ErrNilParameter)
	}
	if err := validateString(c.UserID, "userID"); err != nil {
		return err
	}

	completedAt := nullableTime(c.CompletedAt)
	if c.Completed && c.CompletedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calibrations (user_id, knows_utilization, knows_apr, tracks_spending, completed, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			knows_utilization = excluded.knows_utilization,
			knows_apr = excluded.knows_apr,
			tracks_spending = excluded.tracks_spending,
			completed = excluded.completed,
			completed_at = excluded.completed_at
	`, c.UserID, c.KnowsUtilization, c.KnowsAPR, c.TracksSpending, c.Completed, completedAt)
	if err != nil {
		return fmt.Errorf("failed to save calibration: %w", err)
	}
	return nil
}

// GetCalibration loads a user's calibration, or common.ErrNotFound.
func (s *Store) GetCalibration(ctx context.Context, userID string) (*model.CalibrationAnswers, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var c model.CalibrationAnswers
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, knows_utilization, knows_apr, tracks_spending, completed, completed_at
		FROM calibrations WHERE user_id = ?
	`, userID).Scan(&c.UserID, &c.KnowsUtilization, &c.KnowsAPR, &c.TracksSpending,
		&c.Completed, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calibration: %w", err)
	}
	if completedAt.Valid {
		c.CompletedAt = completedAt.Time
	}
	return &c, nil
}
