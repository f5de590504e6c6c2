package model

import "time"

// CreditStage is the ordered five-stage credit journey.
type CreditStage string

const (
	// StageFoundation is for users with no file or no cards.
	StageFoundation CreditStage = "foundation"
	// StageBuild is for thin files and balance carriers.
	StageBuild CreditStage = "build"
	// StageOptimize is for established users ready to tune rewards.
	StageOptimize CreditStage = "optimize"
	// StageScale is for multi-card users expanding deliberately.
	StageScale CreditStage = "scale"
	// StageElite is for deep, clean, long-history profiles.
	StageElite CreditStage = "elite"
)

// AllStages returns the stages in ascending order.
func AllStages() []CreditStage {
	return []CreditStage{StageFoundation, StageBuild, StageOptimize, StageScale, StageElite}
}

// Valid reports whether the stage is a known enum member.
func (s CreditStage) Valid() bool {
	for _, known := range AllStages() {
		if s == known {
			return true
		}
	}
	return false
}

// Rank returns the stage's position in the ladder, foundation=0.
func (s CreditStage) Rank() int {
	for i, known := range AllStages() {
		if s == known {
			return i
		}
	}
	return -1
}

// MovePriority orders next-moves by urgency.
type MovePriority string

const (
	// PriorityNow should be acted on immediately.
	PriorityNow MovePriority = "now"
	// PrioritySoon should happen within a few months.
	PrioritySoon MovePriority = "soon"
	// PriorityLater is conditional on earlier moves.
	PriorityLater MovePriority = "later"
)

// Valid reports whether the priority is a known tier.
func (p MovePriority) Valid() bool {
	switch p {
	case PriorityNow, PrioritySoon, PriorityLater:
		return true
	}
	return false
}

// NextMove is one recommended action with its trigger condition.
type NextMove struct {
	Action    string
	Condition string
	Rationale string
	Priority  MovePriority
}

// Milestone is a timeline marker in the pathway plan.
type Milestone struct {
	Label        string
	TargetMonths int
}

// PathwayOutput is the full stage classification. Every array field has a
// strict cardinality enforced by pathway.ValidateOutput; violating output is
// a hard error, never silently truncated.
type PathwayOutput struct {
	NextReviewDate   time.Time
	Stage            CreditStage
	StageReasons     []string
	ImmediateFocus   []string
	NextMoves        []NextMove
	DoNots           []string
	RecommendedCards []string
	Timeline         []Milestone
	BehaviorRules    []string
	Confidence       int
}
