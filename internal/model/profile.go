package model

import "time"

// ExperienceLevel is the user's self-declared familiarity with credit.
type ExperienceLevel string

const (
	// ExperienceNew marks first-card or no-card users.
	ExperienceNew ExperienceLevel = "new"
	// ExperienceSome marks users with a few years of history.
	ExperienceSome ExperienceLevel = "some"
	// ExperienceAdvanced marks users who actively optimize.
	ExperienceAdvanced ExperienceLevel = "advanced"
)

// Intent is what the user wants out of their cards.
type Intent string

const (
	// IntentScore prioritizes credit-score growth.
	IntentScore Intent = "score"
	// IntentRewards prioritizes reward earnings.
	IntentRewards Intent = "rewards"
	// IntentBoth balances the two.
	IntentBoth Intent = "both"
)

// HistoryBucket is the user's declared length of credit history.
type HistoryBucket string

const (
	// HistoryNone means no credit file at all.
	HistoryNone HistoryBucket = "none"
	// HistoryThin means under a year of history.
	HistoryThin HistoryBucket = "thin"
	// HistoryEstablished means one to three years.
	HistoryEstablished HistoryBucket = "established"
	// HistoryLong means three or more years.
	HistoryLong HistoryBucket = "long"
)

// CreditProfile is the user-declared financial picture. It drives both the
// pathway stage classifier and the ask-question blocking policy. The engines
// treat it as read-only; it is mutated only by onboarding and profile-update
// flows.
type CreditProfile struct {
	UpdatedAt          time.Time
	UserID             string
	Experience         ExperienceLevel
	Intent             Intent
	History            HistoryBucket
	IncomeBucket       string // empty means not disclosed
	AgeBucket          string
	PreferredDepth     AnswerDepth // stored AI answer-depth preference, may be empty
	CardIDs            []string
	CardCount          int
	CarriesBalance     bool
	UsesBNPL           bool
	HasDerogatories    bool
	HasPremiumCard     bool
	FeeTolerant        bool
	OnboardingComplete bool
}

// CalibrationAnswers capture the short quiz that tunes answer depth.
// A user with no stored calibration must supply one before asking questions.
type CalibrationAnswers struct {
	CompletedAt      time.Time
	UserID           string
	KnowsUtilization bool
	KnowsAPR         bool
	TracksSpending   bool
	Completed        bool
}
