package askguard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// minQuestionLength is the shortest question worth answering.
const minQuestionLength = 5

// Answerer generates the structured answer body once the guard lets a
// question through.
type Answerer interface {
	Answer(ctx context.Context, question string, questionType model.QuestionType, depth model.AnswerDepth, riskTone bool) (*model.HardAnswer, error)
}

// Guard runs the pre-answer policy pipeline.
type Guard struct {
	answerer Answerer
	logger   *slog.Logger
}

// New creates a guard over the given answerer.
func New(answerer Answerer, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{answerer: answerer, logger: logger}
}

// Request is one ask-question invocation.
type Request struct {
	UserID         string
	Question       string
	RequestedDepth model.AnswerDepth
	Profile        *model.CreditProfile
	Calibration    *model.CalibrationAnswers
}

// Evaluate runs the full pipeline, in order:
//
//  1. validate the question
//  2. redact PII
//  3. require a completed onboarding profile
//  4. require a completed calibration
//  5. myth check
//  6. classify the question type
//  7. block optimization questions from balance carriers
//  8. scan for dangerous topics and risk signals
//  9. resolve answer depth
// 10. generate and assemble the answer
//
// Blocking is a successful outcome and returns a nil error; the error
// return covers validation failures and generation failures only.
func (g *Guard) Evaluate(ctx context.Context, req Request) (*model.HardAnswerResponse, error) {
	question := strings.TrimSpace(req.Question)
	if len(question) < minQuestionLength {
		return nil, fmt.Errorf("%w: need at least %d characters", common.ErrQuestionTooShort, minQuestionLength)
	}

	redacted := Redact(question)
	resp := &model.HardAnswerResponse{
		SchemaVersion: model.HardAnswerSchemaVersion,
		RequestID:     uuid.NewString(),
	}

	if req.Profile == nil || !req.Profile.OnboardingComplete {
		return nil, common.ErrOnboardingRequired
	}

	if req.Calibration == nil || !req.Calibration.Completed {
		resp.Blocked = true
		resp.BlockReason = "calibration_required"
		resp.UnlockConditions = []string{"complete the three-question calibration quiz"}
		resp.Calibration = &model.CalibrationPrompt{
			Needed:       true,
			NextQuestion: "Do you know what credit utilization means?",
		}
		return resp, nil
	}

	mythCheck := CheckMyth(redacted)
	resp.MythCheck = mythCheck
	if mythCheck.Detected {
		resp.Blocked = true
		resp.BlockReason = "myth_detected"
		resp.UnlockConditions = []string{"re-ask without the false premise"}
		g.logger.Info("Question blocked on myth",
			"user_id", req.UserID,
			"myth", mythCheck.MythName)
		return resp, nil
	}

	resp.QuestionType = ClassifyQuestion(redacted)

	// Reward optimization is the wrong conversation while interest is
	// accruing. Balance carriers get the payoff path, not card advice.
	if resp.QuestionType == model.QuestionOptimization && req.Profile.CarriesBalance {
		resp.Blocked = true
		resp.BlockReason = "carrying_balance"
		resp.UnlockConditions = []string{
			"pay off revolving balances before optimizing rewards",
			"interest on a carried balance costs more than any points earn back",
		}
		g.logger.Info("Question blocked on balance-carrier policy",
			"user_id", req.UserID,
			"question_type", resp.QuestionType)
		return resp, nil
	}

	if topic := DangerTopic(redacted); topic != "" {
		resp.Blocked = true
		resp.BlockReason = "high_risk_topic"
		resp.UnlockConditions = []string{
			fmt.Sprintf("this tool does not give guidance on %s products", topic),
			"a nonprofit credit counselor can walk through safer options",
		}
		g.logger.Info("Question blocked on dangerous topic",
			"user_id", req.UserID,
			"topic", topic)
		return resp, nil
	}

	riskTone := HasRiskSignals(redacted) ||
		req.Profile.CarriesBalance || req.Profile.UsesBNPL
	resp.RiskToneForced = riskTone

	resp.AnswerDepth = ResolveDepth(req.RequestedDepth, req.Profile, req.Calibration)

	answer, err := g.answerer.Answer(ctx, redacted, resp.QuestionType, resp.AnswerDepth, riskTone)
	if err != nil {
		return nil, err
	}
	resp.Answer = answer
	return resp, nil
}
