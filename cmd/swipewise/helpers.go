package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/heuristic"
	"github.com/swipewise/swipewise/internal/intelligence"
	"github.com/swipewise/swipewise/internal/llm"
	"github.com/swipewise/swipewise/internal/registry"
	"github.com/swipewise/swipewise/internal/storage"
)

// openStore opens the SQLite store at the configured path.
func openStore() (*storage.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "swipewise", "swipewise.db")
	}

	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// requireUser returns the configured user ID or an error telling the caller
// how to set one.
func requireUser() (string, error) {
	user := viper.GetString("user")
	if user == "" {
		return "", fmt.Errorf("%w: set --user or SWIPEWISE_USER", common.ErrMissingConfig)
	}
	return user, nil
}

// llmClientFromConfig builds the AI client, or returns nil when no provider
// is configured so callers can fall back to heuristics-only resolution.
func llmClientFromConfig() (llm.Client, error) {
	provider := viper.GetString("ai.provider")
	if provider == "" {
		return nil, nil
	}

	client, err := llm.NewClient(llm.Config{
		Provider: provider,
		APIKey:   viper.GetString("ai.api_key"),
		Model:    viper.GetString("ai.model"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build AI client: %w", err)
	}
	return client, nil
}

// buildResolver wires the override store, registry, heuristics, and the
// optional AI classifier into the resolution chain.
func buildResolver(store *storage.Store, logger *slog.Logger) (*intelligence.Orchestrator, error) {
	classifier, err := heuristic.NewDefaultClassifier()
	if err != nil {
		return nil, fmt.Errorf("failed to build heuristic classifier: %w", err)
	}

	var ai intelligence.AIClassifier
	client, err := llmClientFromConfig()
	if err != nil {
		return nil, err
	}
	if client != nil {
		ai = llm.NewMerchantClassifier(client, store, logger)
	}

	return intelligence.New(store, registry.Default(), classifier, ai, logger), nil
}
