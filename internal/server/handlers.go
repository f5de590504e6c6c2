package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/swipewise/swipewise/internal/askguard"
	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
	"github.com/swipewise/swipewise/internal/storage"
)

type resolveRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type resolveResponse struct {
	Domain       string                 `json:"domain"`
	MerchantName string                 `json:"merchant_name"`
	Category     model.Category         `json:"category"`
	Confidence   model.Confidence       `json:"confidence"`
	Source       model.ResolutionSource `json:"source"`
	Exclusions   []string               `json:"exclusions,omitempty"`
	IsWarehouse  bool                   `json:"is_warehouse"`
	Trace        []traceStep            `json:"trace"`
}

type traceStep struct {
	Step    string `json:"step"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) handleResolve(c *fiber.Ctx) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if req.URL == "" {
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", "url is required")
	}

	mc, err := s.resolver.Resolve(c.UserContext(), req.URL, req.Title)
	if err != nil {
		return s.mapError(c, err, "resolve")
	}
	return successResponse(c, toResolveResponse(mc))
}

func toResolveResponse(mc *model.MerchantContext) resolveResponse {
	out := resolveResponse{
		Domain:       mc.Domain,
		MerchantName: mc.MerchantName,
		Category:     mc.Category,
		Confidence:   mc.Confidence,
		Source:       mc.Source,
		Exclusions:   mc.Exclusions,
		IsWarehouse:  mc.IsWarehouse,
	}
	for _, step := range mc.Trace {
		out.Trace = append(out.Trace, traceStep{Step: step.Step, Outcome: step.Outcome, Detail: step.Detail})
	}
	return out
}

type recommendRequest struct {
	UserID string `json:"user_id"`
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
}

type rankedCardResponse struct {
	CardID              string  `json:"card_id"`
	CardName            string  `json:"card_name"`
	EffectiveMultiplier float64 `json:"effective_multiplier"`
	Excluded            bool    `json:"excluded"`
	ExclusionReason     string  `json:"exclusion_reason,omitempty"`
}

type recommendResponse struct {
	Merchant     resolveResponse      `json:"merchant"`
	Best         *rankedCardResponse  `json:"best,omitempty"`
	Alternatives []rankedCardResponse `json:"alternatives"`
	Reason       string               `json:"reason"`
	NoWallet     bool                 `json:"no_wallet"`
}

func (s *Server) handleRecommend(c *fiber.Ctx) error {
	var req recommendRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if req.URL == "" || req.UserID == "" {
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", "url and user_id are required")
	}

	ctx := c.UserContext()
	mc, err := s.resolver.Resolve(ctx, req.URL, req.Title)
	if err != nil {
		return s.mapError(c, err, "recommend")
	}

	wallet, err := s.store.GetWallet(ctx, req.UserID)
	if err != nil {
		return s.mapError(c, err, "recommend")
	}

	rec := s.recommend.Recommend(mc, wallet)
	out := recommendResponse{
		Merchant: toResolveResponse(mc),
		Reason:   rec.Reason,
		NoWallet: rec.NoWallet,
	}
	if rec.Best != nil {
		best := toRankedCard(*rec.Best)
		out.Best = &best
	}
	for _, alt := range rec.Alternatives {
		out.Alternatives = append(out.Alternatives, toRankedCard(alt))
	}
	return successResponse(c, out)
}

func toRankedCard(rc model.RankedCard) rankedCardResponse {
	return rankedCardResponse{
		CardID:              rc.Card.ID,
		CardName:            rc.Card.Name,
		EffectiveMultiplier: rc.EffectiveMultiplier,
		Excluded:            rc.Excluded,
		ExclusionReason:     rc.ExclusionReason,
	}
}

type askRequest struct {
	UserID   string            `json:"user_id"`
	Question string            `json:"question"`
	Depth    model.AnswerDepth `json:"depth,omitempty"`
}

func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if req.UserID == "" {
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", "user_id is required")
	}
	if s.guard == nil {
		return errorResponse(c, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE",
			"no AI provider is configured")
	}

	ctx := c.UserContext()
	profile, err := s.store.GetProfile(ctx, req.UserID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return s.mapError(c, err, "ask")
	}
	calibration, err := s.store.GetCalibration(ctx, req.UserID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return s.mapError(c, err, "ask")
	}

	resp, err := s.guard.Evaluate(ctx, askguard.Request{
		UserID:         req.UserID,
		Question:       req.Question,
		RequestedDepth: req.Depth,
		Profile:        profile,
		Calibration:    calibration,
	})
	if err != nil {
		return s.mapError(c, err, "ask")
	}

	// Blocked responses are successful outcomes and go out as 200.
	s.logAnswer(c, req, resp)
	return successResponse(c, resp)
}

func (s *Server) logAnswer(c *fiber.Ctx, req askRequest, resp *model.HardAnswerResponse) {
	if s.store == nil {
		return
	}
	err := s.store.LogAnswer(c.UserContext(), &storage.AnswerLogEntry{
		CreatedAt:        time.Now().UTC(),
		RequestID:        resp.RequestID,
		UserID:           req.UserID,
		QuestionRedacted: askguard.Redact(req.Question),
		QuestionType:     resp.QuestionType,
		AnswerDepth:      resp.AnswerDepth,
		Blocked:          resp.Blocked,
		BlockReason:      resp.BlockReason,
		Response:         *resp,
	})
	if err != nil {
		s.logger.Warn("Failed to log answer", "request_id", resp.RequestID, "error", err)
	}
}

// mapError translates sentinel errors onto the API's status conventions.
func (s *Server) mapError(c *fiber.Ctx, err error, operation string) error {
	switch {
	case errors.Is(err, common.ErrInvalidDomain):
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_DOMAIN", err.Error())
	case errors.Is(err, common.ErrQuestionTooShort):
		return errorResponse(c, fiber.StatusBadRequest, "QUESTION_TOO_SHORT", err.Error())
	case errors.Is(err, common.ErrAICreditsExhausted):
		return errorResponse(c, fiber.StatusPaymentRequired, "AI_CREDITS_EXHAUSTED",
			"AI credits are exhausted; try again later")
	case errors.Is(err, common.ErrOnboardingRequired):
		return errorResponse(c, fiber.StatusForbidden, "ONBOARDING_REQUIRED",
			"complete onboarding before asking questions")
	case errors.Is(err, common.ErrNotFound):
		return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		s.logger.Error("Request failed", "operation", operation, "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			operation+" failed")
	}
}
