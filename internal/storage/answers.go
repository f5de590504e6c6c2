package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/swipewise/swipewise/internal/model"
)

// AnswerLogEntry is one audited ask-question exchange. The question is
// PII-redacted before it reaches this layer; storage never sees raw PII.
type AnswerLogEntry struct {
	CreatedAt        time.Time
	RequestID        string
	UserID           string
	QuestionRedacted string
	QuestionType     model.QuestionType
	AnswerDepth      model.AnswerDepth
	BlockReason      string
	Response         model.HardAnswerResponse
	Blocked          bool
}

// LogAnswer persists one audit entry keyed by request id.
func (s *Store) LogAnswer(ctx context.Context, entry *AnswerLogEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if err := validateString(entry.RequestID, "requestID"); err != nil {
		return err
	}
	if err := validateString(entry.UserID, "userID"); err != nil {
		return err
	}

	payload, err := json.Marshal(entry.Response)
	if err != nil {
		return fmt.Errorf("failed to marshal answer payload: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO answer_log
			(request_id, user_id, question_redacted, question_type, answer_depth,
			 blocked, block_reason, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.RequestID, entry.UserID, entry.QuestionRedacted,
		string(entry.QuestionType), string(entry.AnswerDepth),
		entry.Blocked, entry.BlockReason, string(payload), createdAt)
	if err != nil {
		return fmt.Errorf("failed to log answer: %w", err)
	}
	return nil
}

// ListAnswers returns a user's audit entries, newest first.
func (s *Store) ListAnswers(ctx context.Context, userID string, limit int) ([]AnswerLogEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT request_id, user_id, question_redacted, question_type, answer_depth,
		       blocked, COALESCE(block_reason,''), payload, created_at
		FROM answer_log
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query answer log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []AnswerLogEntry
	for rows.Next() {
		var e AnswerLogEntry
		var questionType, depth, payload string
		if err := rows.Scan(&e.RequestID, &e.UserID, &e.QuestionRedacted,
			&questionType, &depth, &e.Blocked, &e.BlockReason, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer log entry: %w", err)
		}
		e.QuestionType = model.QuestionType(questionType)
		e.AnswerDepth = model.AnswerDepth(depth)
		if err := json.Unmarshal([]byte(payload), &e.Response); err != nil {
			return nil, fmt.Errorf("failed to decode answer payload: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
