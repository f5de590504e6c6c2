package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swipewise/swipewise/internal/askguard"
	"github.com/swipewise/swipewise/internal/llm"
	"github.com/swipewise/swipewise/internal/recommend"
	"github.com/swipewise/swipewise/internal/server"
	"github.com/swipewise/swipewise/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the resolution, recommendation, and ask endpoints over HTTP.
The ask endpoint returns 503 when no AI provider is configured.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	return withStore(cmd, func(store *storage.Store) error {
		logger := slog.Default()

		resolver, err := buildResolver(store, logger)
		if err != nil {
			return err
		}

		var guard server.QuestionGuard
		client, err := llmClientFromConfig()
		if err != nil {
			return err
		}
		if client != nil {
			guard = askguard.New(llm.NewQuestionAnswerer(client, logger), logger)
		} else {
			logger.Warn("No AI provider configured; /api/v1/ask will return 503")
		}

		srv := server.New(server.Config{
			RateLimit:       viper.GetInt("server.rate_limit"),
			RateLimitWindow: viper.GetDuration("server.rate_limit_window"),
			BodyLimit:       viper.GetInt("server.body_limit"),
		}, resolver, recommend.New(), guard, store, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Listen(addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			logger.Info("Server stopped")
			return nil
		}
	})
}
