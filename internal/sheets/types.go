package sheets

import (
	"time"

	"github.com/swipewise/swipewise/internal/diagnostics"
)

// DateRange is the time period covered by a report.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Report bundles the diagnostics outputs for one export run.
type Report struct {
	DateRange      DateRange
	Subscriptions  []diagnostics.SubscriptionCandidate
	MissedBenefits []diagnostics.MissedBenefit
	Opportunity    *diagnostics.OpportunityReport
}
