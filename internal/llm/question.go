package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

// depthLimit captures what each answer depth may contain.
type depthLimit struct {
	maxSteps       int
	allowMechanics bool
	allowEdgeCases bool
}

var depthLimits = map[model.AnswerDepth]depthLimit{
	model.DepthBeginner:     {maxSteps: 3},
	model.DepthIntermediate: {maxSteps: 5, allowMechanics: true},
	model.DepthAdvanced:     {maxSteps: 7, allowMechanics: true, allowEdgeCases: true},
}

// QuestionAnswerer generates depth-clamped structured credit answers.
type QuestionAnswerer struct {
	client Client
	logger *slog.Logger
}

// NewQuestionAnswerer creates an answerer over the given completion client.
func NewQuestionAnswerer(client Client, logger *slog.Logger) *QuestionAnswerer {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionAnswerer{client: client, logger: logger}
}

// Answer produces a structured answer at the given depth. riskTone forces
// conservative, warning-forward framing for users who carry a balance or
// use BNPL. Unlike merchant classification there is no usable fallback: a
// reply the schema rejects is an error.
func (q *QuestionAnswerer) Answer(ctx context.Context, question string, questionType model.QuestionType, depth model.AnswerDepth, riskTone bool) (*model.HardAnswer, error) {
	limit, ok := depthLimits[depth]
	if !ok {
		return nil, fmt.Errorf("%w: unknown answer depth %q", common.ErrInvalidConfig, depth)
	}

	// One attempt only. The user is waiting on this call; they can
	// resubmit if the provider hiccups.
	content, err := q.client.Complete(ctx, questionSystemPrompt, buildQuestionPrompt(question, questionType, depth, limit, riskTone))
	if err != nil {
		if errors.Is(err, common.ErrAICreditsExhausted) {
			return nil, common.ErrAICreditsExhausted
		}
		return nil, fmt.Errorf("%w: %v", common.ErrAIUnavailable, err)
	}

	answer, err := parseAnswerReply(content)
	if err != nil {
		q.logger.Warn("Generated answer failed schema validation",
			"question_type", questionType,
			"depth", depth,
			"error", err)
		return nil, err
	}

	clampAnswer(answer, limit)
	return answer, nil
}

const questionSystemPrompt = "You are a careful credit education assistant. You never invent " +
	"issuer policies or guarantee score changes. You MUST respond with ONLY a valid JSON object. " +
	"Do not include any explanatory text, markdown formatting, or commentary before or after the " +
	"JSON. Start your response directly with { and end with }."

func buildQuestionPrompt(question string, questionType model.QuestionType, depth model.AnswerDepth, limit depthLimit, riskTone bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question type: %s\nAnswer depth: %s\n\nQuestion: %s\n\n", questionType, depth, question)

	sb.WriteString("Respond with JSON in this shape:\n")
	sb.WriteString(`{"summary": "...", "recommended_action": "...", "steps": ["..."], `)
	sb.WriteString(`"mechanics": "...", "edge_cases": ["..."], "warnings": ["..."], "confidence": 0.8}`)
	sb.WriteString("\n\nRules:\n")
	fmt.Fprintf(&sb, "- At most %d steps.\n", limit.maxSteps)
	if limit.allowMechanics {
		sb.WriteString("- mechanics may explain the underlying scoring or billing behavior in one paragraph.\n")
	} else {
		sb.WriteString("- Set mechanics to null. Do not explain underlying scoring mechanics.\n")
	}
	if limit.allowEdgeCases {
		sb.WriteString("- edge_cases may list situations where the advice does not apply.\n")
	} else {
		sb.WriteString("- Set edge_cases to an empty array.\n")
	}
	sb.WriteString("- confidence is a number between 0 and 1.\n")
	sb.WriteString("- Never promise a specific score change or approval outcome.\n")
	if riskTone {
		sb.WriteString("- This user shows signs of revolving debt. Lead with debt-safety warnings and " +
			"frame every step around paying down balances before optimizing rewards.\n")
	}
	return sb.String()
}

// parseAnswerReply decodes and validates the generated answer.
func parseAnswerReply(content string) (*model.HardAnswer, error) {
	content = cleanMarkdownWrapper(content)

	var answer model.HardAnswer
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&answer); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIMalformed, err)
	}

	if strings.TrimSpace(answer.Summary) == "" {
		return nil, fmt.Errorf("%w: empty summary", common.ErrSchemaViolation)
	}
	if answer.Confidence < 0 || answer.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", common.ErrSchemaViolation, answer.Confidence)
	}
	return &answer, nil
}

// clampAnswer enforces depth limits on a valid answer. The generator is
// instructed to respect them, but the clamp is what guarantees it.
func clampAnswer(answer *model.HardAnswer, limit depthLimit) {
	if len(answer.Steps) > limit.maxSteps {
		answer.Steps = answer.Steps[:limit.maxSteps]
	}
	if !limit.allowMechanics {
		answer.Mechanics = nil
	}
	if !limit.allowEdgeCases {
		answer.EdgeCases = nil
	}
}
