package model

// AnswerDepth gates how much of an answer may be populated.
type AnswerDepth string

const (
	// DepthBeginner keeps answers short and mechanical-detail free.
	DepthBeginner AnswerDepth = "beginner"
	// DepthIntermediate allows mechanics but not edge cases.
	DepthIntermediate AnswerDepth = "intermediate"
	// DepthAdvanced allows the full answer shape.
	DepthAdvanced AnswerDepth = "advanced"
)

// Valid reports whether the depth is a known tier.
func (d AnswerDepth) Valid() bool {
	switch d {
	case DepthBeginner, DepthIntermediate, DepthAdvanced:
		return true
	}
	return false
}

// QuestionType is the guard's coarse classification of a credit question.
type QuestionType string

const (
	// QuestionOptimization is reward-maximization phrasing.
	QuestionOptimization QuestionType = "optimization"
	// QuestionBuilding is score-building phrasing.
	QuestionBuilding QuestionType = "building"
	// QuestionRepair is derogatory/recovery phrasing.
	QuestionRepair QuestionType = "repair"
	// QuestionGeneral is everything else.
	QuestionGeneral QuestionType = "general"
)

// HardAnswer is the structured, depth-clamped answer body. Mechanics and
// EdgeCases are nil at depths that do not permit them regardless of what the
// generator produced.
type HardAnswer struct {
	Summary           string   `json:"summary"`
	RecommendedAction *string  `json:"recommended_action"`
	Steps             []string `json:"steps"`
	Mechanics         *string  `json:"mechanics"`
	EdgeCases         []string `json:"edge_cases"`
	Warnings          []string `json:"warnings"`
	Confidence        float64  `json:"confidence"`
}

// MythCheck reports whether the question tripped a myth pattern.
type MythCheck struct {
	Detected   bool   `json:"detected"`
	MythName   string `json:"myth_name,omitempty"`
	Correction string `json:"correction,omitempty"`
}

// CalibrationPrompt tells the client which calibration question to ask next.
type CalibrationPrompt struct {
	Needed       bool   `json:"needed"`
	NextQuestion string `json:"next_question"`
}

// ResponseError is the typed error block for failed question requests.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HardAnswerResponse is the full ask-question response envelope. Blocking is
/// a successful outcome: Blocked=true ships with HTTP 200, never an error
// status.
type HardAnswerResponse struct {
	SchemaVersion    int                `json:"schema_version"`
	RequestID        string             `json:"request_id"`
	AnswerDepth      AnswerDepth        `json:"answer_depth"`
	QuestionType     QuestionType       `json:"question_type"`
	Blocked          bool               `json:"blocked"`
	BlockReason      string             `json:"block_reason,omitempty"`
	UnlockConditions []string           `json:"unlock_conditions,omitempty"`
	RiskToneForced   bool               `json:"risk_tone_forced"`
	Answer           *HardAnswer        `json:"answer,omitempty"`
	MythCheck        *MythCheck         `json:"myth_check,omitempty"`
	Calibration      *CalibrationPrompt `json:"calibration,omitempty"`
	Error            *ResponseError     `json:"error,omitempty"`
}

// HardAnswerSchemaVersion is bumped whenever the response shape changes.
const HardAnswerSchemaVersion = 1
