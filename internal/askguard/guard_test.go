package askguard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// stubAnswerer counts calls; tests assert blocked questions never reach it.
type stubAnswerer struct {
	calls     int
	lastRisk  bool
	lastType  model.QuestionType
	lastDepth model.AnswerDepth
}

func (s *stubAnswerer) Answer(_ context.Context, _ string, qt model.QuestionType, depth model.AnswerDepth, riskTone bool) (*model.HardAnswer, error) {
	s.calls++
	s.lastType = qt
	s.lastDepth = depth
	s.lastRisk = riskTone
	return &model.HardAnswer{Summary: "stub answer", Confidence: 0.8}, nil
}

func readyProfile() *model.CreditProfile {
	return &model.CreditProfile{
		UserID:             "user-1",
		Experience:         model.ExperienceAdvanced,
		History:            model.HistoryEstablished,
		CardCount:          2,
		OnboardingComplete: true,
	}
}

func doneCalibration() *model.CalibrationAnswers {
	return &model.CalibrationAnswers{
		UserID: "user-1", Completed: true,
		KnowsUtilization: true, KnowsAPR: true,
	}
}

func TestEvaluateHappyPath(t *testing.T) {
	answerer := &stubAnswerer{}
	g := New(answerer, nil)

	resp, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "Which card should I use for groceries to maximize rewards?",
		Profile:     readyProfile(),
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.Equal(t, model.QuestionOptimization, resp.QuestionType)
	assert.Equal(t, model.HardAnswerSchemaVersion, resp.SchemaVersion)
	assert.NotEmpty(t, resp.RequestID)
	require.NotNil(t, resp.Answer)
	assert.Equal(t, 1, answerer.calls)
}

func TestEvaluateQuestionTooShort(t *testing.T) {
	g := New(&stubAnswerer{}, nil)
	_, err := g.Evaluate(context.Background(), Request{
		UserID: "user-1", Question: "apr?",
		Profile: readyProfile(), Calibration: doneCalibration(),
	})
	assert.ErrorIs(t, err, common.ErrQuestionTooShort)

	// Five characters is the floor of the request contract.
	resp, err := g.Evaluate(context.Background(), Request{
		UserID: "user-1", Question: "fees?",
		Profile: readyProfile(), Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
}

func TestEvaluateOnboardingRequired(t *testing.T) {
	g := New(&stubAnswerer{}, nil)

	_, err := g.Evaluate(context.Background(), Request{
		UserID: "user-1", Question: "Which card should I use for dining out?",
	})
	assert.ErrorIs(t, err, common.ErrOnboardingRequired)

	incomplete := readyProfile()
	incomplete.OnboardingComplete = false
	_, err = g.Evaluate(context.Background(), Request{
		UserID: "user-1", Question: "Which card should I use for dining out?",
		Profile: incomplete,
	})
	assert.ErrorIs(t, err, common.ErrOnboardingRequired)
}

func TestEvaluateCalibrationNeeded(t *testing.T) {
	answerer := &stubAnswerer{}
	g := New(answerer, nil)

	resp, err := g.Evaluate(context.Background(), Request{
		UserID: "user-1", Question: "Which card should I use for dining out?",
		Profile: readyProfile(),
	})
	require.NoError(t, err, "calibration-needed is a successful outcome")
	assert.True(t, resp.Blocked)
	assert.Equal(t, "calibration_required", resp.BlockReason)
	require.NotNil(t, resp.Calibration)
	assert.True(t, resp.Calibration.Needed)
	assert.Equal(t, 0, answerer.calls)
}

func TestEvaluateMythBlocked(t *testing.T) {
	answerer := &stubAnswerer{}
	g := New(answerer, nil)

	resp, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "Is 0% utilization the best for my score?",
		Profile:     readyProfile(),
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Equal(t, "myth_detected", resp.BlockReason)
	require.NotNil(t, resp.MythCheck)
	assert.True(t, resp.MythCheck.Detected)
	assert.Equal(t, "zero_utilization_best", resp.MythCheck.MythName)
	assert.Contains(t, resp.MythCheck.Correction, "1-9%")
	assert.Equal(t, 0, answerer.calls, "blocked questions must not reach the model")
}

func TestEvaluateCarryBalanceMyth(t *testing.T) {
	g := New(&stubAnswerer{}, nil)
	resp, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "Should I carry a small balance to build my credit score?",
		Profile:     readyProfile(),
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Equal(t, "carry_balance_builds_credit", resp.MythCheck.MythName)
}

func TestEvaluateDangerousTopicBlocked(t *testing.T) {
	answerer := &stubAnswerer{}
	g := New(answerer, nil)

	resp, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "How do I take a cash advance to pay my rent this month?",
		Profile:     readyProfile(),
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Equal(t, "high_risk_topic", resp.BlockReason)
	assert.NotEmpty(t, resp.UnlockConditions)
	assert.Equal(t, 0, answerer.calls)
}

func TestEvaluateBalanceCarrierOptimizationBlocked(t *testing.T) {
	answerer := &stubAnswerer{}
	g := New(answerer, nil)

	profile := readyProfile()
	profile.CarriesBalance = true
	resp, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "Which card should I use for groceries to maximize rewards?",
		Profile:     profile,
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Blocked, "optimization question from a balance carrier must be blocked")
	assert.Equal(t, "carrying_balance", resp.BlockReason)
	assert.NotEmpty(t, resp.UnlockConditions)
	assert.Contains(t, resp.UnlockConditions[0], "pay off")
	assert.Equal(t, 0, answerer.calls, "blocked questions must not reach the model")
}

func TestEvaluateRiskToneForced(t *testing.T) {
	answerer := &stubAnswerer{}
	g := New(answerer, nil)

	// Risky profile forces the tone on a non-optimization question.
	profile := readyProfile()
	profile.CarriesBalance = true
	resp, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "What is a statement closing date and when should I pay?",
		Profile:     profile,
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.True(t, resp.RiskToneForced)
	assert.True(t, answerer.lastRisk)

	// Risk keywords in the question do the same for a clean profile.
	resp, err = g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "Should I use Klarna for a large purchase next month?",
		Profile:     readyProfile(),
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.True(t, resp.RiskToneForced)
}

func TestEvaluateRedactsBeforeAnswering(t *testing.T) {
	captured := ""
	g := New(answererFunc(func(_ context.Context, q string, _ model.QuestionType, _ model.AnswerDepth, _ bool) (*model.HardAnswer, error) {
		captured = q
		return &model.HardAnswer{Summary: "ok", Confidence: 0.5}, nil
	}), nil)

	_, err := g.Evaluate(context.Background(), Request{
		UserID:      "user-1",
		Question:    "My card 4111 1111 1111 1111 was declined, which card should I use instead?",
		Profile:     readyProfile(),
		Calibration: doneCalibration(),
	})
	require.NoError(t, err)
	assert.Contains(t, captured, TokenCard)
	assert.NotContains(t, captured, "4111")
}

type answererFunc func(context.Context, string, model.QuestionType, model.AnswerDepth, bool) (*model.HardAnswer, error)

func (f answererFunc) Answer(ctx context.Context, q string, qt model.QuestionType, d model.AnswerDepth, r bool) (*model.HardAnswer, error) {
	return f(ctx, q, qt, d, r)
}

func TestResolveDepthChain(t *testing.T) {
	advanced := readyProfile()

	// Explicit request wins.
	assert.Equal(t, model.DepthBeginner,
		ResolveDepth(model.DepthBeginner, advanced, doneCalibration()))

	// Stored preference next.
	withPref := readyProfile()
	withPref.PreferredDepth = model.DepthIntermediate
	assert.Equal(t, model.DepthIntermediate,
		ResolveDepth("", withPref, doneCalibration()))

	// Profile-derived after that.
	assert.Equal(t, model.DepthAdvanced,
		ResolveDepth("", advanced, doneCalibration()))

	// No profile at all falls to beginner.
	assert.Equal(t, model.DepthBeginner, ResolveDepth("", nil, nil))
}

func TestResolveDepthExplicitRequestHonored(t *testing.T) {
	// An explicit request is honored as-is; experience only shapes the
	// derived default.
	newbie := &model.CreditProfile{Experience: model.ExperienceNew, OnboardingComplete: true}
	assert.Equal(t, model.DepthAdvanced,
		ResolveDepth(model.DepthAdvanced, newbie, nil),
		"a requested depth is never capped by experience")

	some := &model.CreditProfile{Experience: model.ExperienceSome, OnboardingComplete: true}
	assert.Equal(t, model.DepthAdvanced,
		ResolveDepth(model.DepthAdvanced, some, nil))

	// Without a request the same profiles derive their defaults.
	assert.Equal(t, model.DepthBeginner, ResolveDepth("", newbie, nil))
	assert.Equal(t, model.DepthIntermediate, ResolveDepth("", some, nil))
	assert.Equal(t, model.DepthAdvanced, ResolveDepth("", some, doneCalibration()))
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email", "reach me at jo.smith+cc@example.com please", "reach me at " + TokenEmail + " please"},
		{"phone", "call 555-867-5309 anytime", "call " + TokenPhone + " anytime"},
		{"ssn", "my ssn is 123-45-6789 ok", "my ssn is " + TokenSSN + " ok"},
		{"card", "card 4111 1111 1111 1111 declined", "card " + TokenCard + " declined"},
		{"clean", "no pii here at all", "no pii here at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.in))
		})
	}
}

func TestClassifyQuestionTypes(t *testing.T) {
	tests := []struct {
		question string
		want     model.QuestionType
	}{
		{"How do I remove a collection from my report?", model.QuestionRepair},
		{"What is the fastest way to build credit from nothing?", model.QuestionBuilding},
		{"Which card earns the most cash back on gas?", model.QuestionOptimization},
		{"What is a statement closing date?", model.QuestionGeneral},
		// Repair outranks the rewards vocabulary.
		{"Will a charge-off stop me from earning rewards?", model.QuestionRepair},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyQuestion(tt.question), tt.question)
	}
}
