package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Merchant resolution tables",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS merchant_overrides (
					domain TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					category TEXT NOT NULL,
					rationale TEXT,
					approved_by TEXT NOT NULL,
					approved_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS merchant_suggestions (
					id TEXT PRIMARY KEY,
					url TEXT NOT NULL,
					domain TEXT NOT NULL,
					category TEXT NOT NULL,
					confidence TEXT NOT NULL,
					rationale TEXT,
					source TEXT NOT NULL,
					status TEXT NOT NULL DEFAULT 'pending',
					reviewer_notes TEXT,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				// Cheap unique-constraint equivalent for the at-most-one-pending
				// invariant; concurrent duplicate inserts coalesce here.
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_suggestions_pending_domain
					ON merchant_suggestions(domain) WHERE status = 'pending'`,
				`CREATE INDEX IF NOT EXISTS idx_suggestions_status ON merchant_suggestions(status)`,

				`CREATE TABLE IF NOT EXISTS ai_merchant_cache (
					domain TEXT PRIMARY KEY,
					payload TEXT NOT NULL,
					cached_at DATETIME NOT NULL
				)`,
			}
			return execAll(tx, queries)
		},
	},
	{
		Version:     2,
		Description: "Card catalog and wallets",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS cards (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					issuer TEXT,
					network TEXT,
					kind TEXT NOT NULL DEFAULT 'db',
					annual_fee REAL NOT NULL DEFAULT 0,
					base_rate REAL NOT NULL DEFAULT 1,
					verified INTEGER NOT NULL DEFAULT 0,
					last_verified DATETIME
				)`,

				`CREATE TABLE IF NOT EXISTS reward_rules (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					card_id TEXT NOT NULL,
					category TEXT NOT NULL,
					multiplier REAL NOT NULL,
					priority INTEGER NOT NULL DEFAULT 0,
					cap_amount REAL,
					cap_period TEXT,
					conditions TEXT,
					notes TEXT,
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_reward_rules_card ON reward_rules(card_id)`,

				`CREATE TABLE IF NOT EXISTS card_exclusions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					card_id TEXT NOT NULL,
					pattern TEXT NOT NULL,
					reason TEXT,
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,

				`CREATE TABLE IF NOT EXISTS card_benefits (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					card_id TEXT NOT NULL,
					name TEXT NOT NULL,
					amount REAL NOT NULL,
					period TEXT NOT NULL,
					trigger_merchants TEXT,
					trigger_categories TEXT,
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,

				`CREATE TABLE IF NOT EXISTS wallets (
					user_id TEXT NOT NULL,
					card_id TEXT NOT NULL,
					added_at DATETIME NOT NULL,
					PRIMARY KEY (user_id, card_id),
					FOREIGN KEY (card_id) REFERENCES cards(id)
				)`,
			}
			return execAll(tx, queries)
		},
	},
	{
		Version:     3,
		Description: "Profiles, transactions, and answer audit log",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS credit_profiles (
					user_id TEXT PRIMARY KEY,
					experience TEXT NOT NULL,
					intent TEXT NOT NULL,
					history TEXT NOT NULL,
					income_bucket TEXT,
					age_bucket TEXT,
					preferred_depth TEXT,
					card_count INTEGER NOT NULL DEFAULT 0,
					carries_balance INTEGER NOT NULL DEFAULT 0,
					uses_bnpl INTEGER NOT NULL DEFAULT 0,
					has_derogatories INTEGER NOT NULL DEFAULT 0,
					has_premium_card INTEGER NOT NULL DEFAULT 0,
					fee_tolerant INTEGER NOT NULL DEFAULT 0,
					onboarding_complete INTEGER NOT NULL DEFAULT 0,
					updated_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS calibrations (
					user_id TEXT PRIMARY KEY,
					knows_utilization INTEGER NOT NULL DEFAULT 0,
					knows_apr INTEGER NOT NULL DEFAULT 0,
					tracks_spending INTEGER NOT NULL DEFAULT 0,
					completed INTEGER NOT NULL DEFAULT 0,
					completed_at DATETIME
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					date DATETIME NOT NULL,
					name TEXT NOT NULL,
					merchant_name TEXT,
					account_id TEXT,
					card_id TEXT,
					category TEXT NOT NULL DEFAULT 'unknown',
					amount REAL NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant_name)`,

				`CREATE TABLE IF NOT EXISTS answer_log (
					request_id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					question_redacted TEXT NOT NULL,
					question_type TEXT NOT NULL,
					answer_depth TEXT NOT NULL,
					blocked INTEGER NOT NULL DEFAULT 0,
					block_reason TEXT,
					payload TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_answer_log_user ON answer_log(user_id, created_at)`,
			}
			return execAll(tx, queries)
		},
	},
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, q := range queries {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("migration query failed: %w", err)
		}
	}
	return nil
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("applied migration", "version", m.Version, "description", m.Description)
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema at version %d, expected %d", final, ExpectedSchemaVersion)
	}

	return nil
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
