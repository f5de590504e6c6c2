package askguard

import (
	"regexp"

	"github.com/swipewise/swipewise/internal/model"
)

// myth is one detectable credit misconception. Questions built on a myth
// are blocked and answered with the correction instead, because a
// straight answer would reinforce the false premise.
type myth struct {
	re         *regexp.Regexp
	Name       string
	Correction string
}

var myths = []myth{
	{
		Name: "carry_balance_builds_credit",
		re: regexp.MustCompile(`(?i)(carry|keep|leav\w*)\s+(a\s+)?(small\s+)?balance.*(build|help|boost|improve|good for).*(credit|score)` +
			`|(build|help|boost|improve)\w*\s+(my\s+)?(credit|score).*(carry|keep)\w*\s+(a\s+)?balance`),
		Correction: "Carrying a balance does not build credit. Payment history and utilization are " +
			"reported whether or not you pay in full; carrying a balance only adds interest charges.",
	},
	{
		Name: "zero_utilization_best",
		re: regexp.MustCompile(`(?i)(0|zero)\s?(%|percent)\s+utilization.*(best|good|ideal|optimal)` +
			`|is\s+(0|zero)\s?(%|percent)\s+utilization`),
		Correction: "Zero utilization is not optimal. Scoring models reward low active use; " +
			"a reported utilization in the 1-9% range typically scores better than exactly 0%.",
	},
	{
		Name: "closing_cards_helps",
		re: regexp.MustCompile(`(?i)clos(e|ing)\s+(a\s+|my\s+|old\s+|unused\s+)*(credit\s+)?card.*(help|improve|boost|raise|good)` +
			`|(help|improve|boost|raise)\w*\s+(my\s+)?(credit|score).*clos(e|ing)\s+.*card`),
		Correction: "Closing a card usually hurts rather than helps: it cuts your available credit, " +
			"raising utilization, and eventually shortens your average account age.",
	},
	{
		Name: "checking_score_hurts",
		re: regexp.MustCompile(`(?i)(check|view|look\w*\s+at)\w*\s+(my\s+)?(own\s+)?(credit\s+)?score.*(hurt|lower|drop|damage)` +
			`|does\s+checking\s+(my\s+)?(credit|score)`),
		Correction: "Checking your own score is a soft inquiry and never affects it. Only hard " +
			"inquiries from credit applications can lower a score, and only slightly.",
	},
	{
		Name: "minimum_payment_enough",
		re: regexp.MustCompile(`(?i)(is|are)\s+(the\s+)?minimum\s+payment\w*\s+(enough|fine|ok|okay)` +
			`|only\s+(pay|make)\w*\s+(the\s+)?minimum.*(fine|ok|okay|enough|good)`),
		Correction: "Minimum payments keep the account current but leave the balance accruing " +
			"interest, often for years. Paying the full statement balance avoids interest entirely.",
	},
}

// CheckMyth scans a question for known misconceptions. First match wins.
func CheckMyth(question string) *model.MythCheck {
	for _, m := range myths {
		if m.re.MatchString(question) {
			return &model.MythCheck{
				Detected:   true,
				MythName:   m.Name,
				Correction: m.Correction,
			}
		}
	}
	return &model.MythCheck{Detected: false}
}
