package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/swipewise/swipewise/internal/askguard"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/storage"
)

// Resolver turns a raw URL into a merchant context.
type Resolver interface {
	Resolve(ctx context.Context, rawURL, title string) (*model.MerchantContext, error)
}

// Recommender ranks a wallet against a merchant context.
type Recommender interface {
	Recommend(mc *model.MerchantContext, wallet []model.Card) *model.Recommendation
}

// QuestionGuard runs the guarded ask-question pipeline.
type QuestionGuard interface {
	Evaluate(ctx context.Context, req askguard.Request) (*model.HardAnswerResponse, error)
}

// Store is the storage surface the handlers need.
type Store interface {
	GetWallet(ctx context.Context, userID string) ([]model.Card, error)
	GetProfile(ctx context.Context, userID string) (*model.CreditProfile, error)
	GetCalibration(ctx context.Context, userID string) (*model.CalibrationAnswers, error)
	LogAnswer(ctx context.Context, entry *storage.AnswerLogEntry) error
}

// Config tunes the HTTP surface.
type Config struct {
	RateLimit       int
	RateLimitWindow time.Duration
	BodyLimit       int
}

// Server wires the engines behind the fiber app.
type Server struct {
	app       *fiber.App
	resolver  Resolver
	recommend Recommender
	guard     QuestionGuard
	store     Store
	logger    *slog.Logger
}

// New builds the fiber app with the standard middleware stack.
func New(cfg Config, resolver Resolver, rec Recommender, guard QuestionGuard, store Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 64 * 1024
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimit,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	s := &Server{
		app:       app,
		resolver:  resolver,
		recommend: rec,
		guard:     guard,
		store:     store,
		logger:    logger,
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return errorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED",
				"too many requests; slow down")
		},
	}))

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api/v1")
	api.Post("/resolve", s.handleResolve)
	api.Post("/recommend", s.handleRecommend)
	api.Post("/ask", s.handleAsk)

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on addr.
func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains connections gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
