package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// SaveTransactions inserts imported transactions, skipping duplicates by
// hash so re-importing the same statement is harmless.
func (s *Store) SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(txns) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	saved := 0
	for i := range txns {
		txn := &txns[i]
		if err := validateTransaction(txn); err != nil {
			return 0, fmt.Errorf("transaction at index %d: %w", i, err)
		}
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		category := txn.Category
		if category == "" {
			category = model.CategoryUnknown
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, hash, date, name, merchant_name, account_id, card_id, category, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(hash) DO NOTHING
		`, txn.ID, txn.Hash, txn.Date, txn.Name, txn.MerchantName,
			txn.AccountID, txn.CardID, string(category), txn.Amount)
		if err != nil {
			return 0, fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			saved += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction save: %w", err)
	}
	return saved, nil
}

// UpdateTransactionCategory reclassifies one stored transaction.
func (s *Store) UpdateTransactionCategory(ctx context.Context, hash string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(hash, "hash"); err != nil {
		return err
	}
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET category = ? WHERE hash = ?
	`, string(category), hash)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s: %w", hash, common.ErrNotFound)
	}
	return nil
}

// ListTransactions returns transactions on or after since, oldest first.
// A zero since returns everything.
func (s *Store) ListTransactions(ctx context.Context, since time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, hash, date, name, COALESCE(merchant_name,''), COALESCE(account_id,''),
		       COALESCE(card_id,''), category, amount
		FROM transactions`
	var args []any
	if !since.IsZero() {
		query += ` WHERE date >= ?`
		args = append(args, since)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var category string
		if err := rows.Scan(&txn.ID, &txn.Hash, &txn.Date, &txn.Name,
			&txn.MerchantName, &txn.AccountID, &txn.CardID, &category, &txn.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Category = model.Category(category)
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
