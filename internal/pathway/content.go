package pathway

import "github.com/swipewise/swipewise/internal/model"

// stageContent is the authored guidance for one stage. The engine copies
// from these tables; it never mutates them.
type stageContent struct {
	ImmediateFocus   []string
	NextMoves        []model.NextMove
	DoNots           []string
	RecommendedCards []string
	Timeline         []model.Milestone
	BehaviorRules    []string
}

// debtPayoffMove is prepended for balance carriers at any stage. Paying
// down revolving debt beats every reward optimization.
var debtPayoffMove = model.NextMove{
	Action:    "Pay down your revolving balance before anything else",
	Condition: "while any statement balance carries month to month",
	Rationale: "interest charges exceed any realistic reward earnings",
	Priority:  model.PriorityNow,
}

var stageTable = map[model.CreditStage]stageContent{
	model.StageFoundation: {
		ImmediateFocus: []string{
			"Open a first credit line you can manage",
			"Set up autopay for the full statement balance",
		},
		NextMoves: []model.NextMove{
			{
				Action:    "Apply for a secured or student card",
				Condition: "once you have a steady income source",
				Rationale: "a reporting tradeline is how a file starts",
				Priority:  model.PriorityNow,
			},
			{
				Action:    "Put one small recurring charge on the card",
				Condition: "after the card arrives",
				Rationale: "low, consistent utilization reports well",
				Priority:  model.PrioritySoon,
			},
			{
				Action:    "Ask to graduate to an unsecured card",
				Condition: "after 6-12 months of on-time payments",
				Rationale: "graduation returns your deposit and often raises the limit",
				Priority:  model.PriorityLater,
			},
		},
		DoNots: []string{
			"Do not apply for multiple cards at once",
			"Do not carry a balance to 'build credit'; that is a myth",
			"Do not close the card after graduating",
		},
		RecommendedCards: []string{
			"A no-fee secured card from a major issuer",
			"A student card if you are enrolled",
		},
		Timeline: []model.Milestone{
			{Label: "First card reporting", TargetMonths: 1},
			{Label: "Six on-time payments", TargetMonths: 6},
			{Label: "Graduation or first unsecured card", TargetMonths: 12},
		},
		BehaviorRules: []string{
			"Pay the full statement balance every month",
			"Keep reported utilization under 30 percent",
			"Never miss a due date; set autopay as the backstop",
		},
	},
	model.StageBuild: {
		ImmediateFocus: []string{
			"Establish a spotless payment record",
			"Let your accounts age without new applications",
		},
		NextMoves: []model.NextMove{
			{
				Action:    "Add one no-fee cash-back card",
				Condition: "once your oldest account passes a year",
				Rationale: "a second tradeline thickens the file without fee risk",
				Priority:  model.PrioritySoon,
			},
			{
				Action:    "Request a credit limit increase",
				Condition: "after 6 months of clean history on the card",
				Rationale: "a higher limit lowers utilization at the same spend",
				Priority:  model.PrioritySoon,
			},
			{
				Action:    "Review your reports for errors",
				Condition: "once per year",
				Rationale: "report errors are common and disputable",
				Priority:  model.PriorityLater,
			},
		},
		DoNots: []string{
			"Do not chase signup bonuses yet",
			"Do not open store cards for one-time discounts",
			"Do not cancel your oldest card",
		},
		RecommendedCards: []string{
			"A flat-rate no-fee cash-back card",
		},
		Timeline: []model.Milestone{
			{Label: "Twelve months clean history", TargetMonths: 12},
			{Label: "Second card added", TargetMonths: 15},
			{Label: "Utilization consistently under 10 percent", TargetMonths: 18},
		},
		BehaviorRules: []string{
			"Pay in full, every month, no exceptions",
			"Keep overall utilization under 10 percent",
			"Space applications at least 6 months apart",
		},
	},
	model.StageOptimize: {
		ImmediateFocus: []string{
			"Match your top spending categories to bonus rates",
			"Audit recurring charges you no longer use",
		},
		NextMoves: []model.NextMove{
			{
				Action:    "Add one category card for your biggest spend",
				Condition: "when a category covers over $300 of monthly spend",
				Rationale: "category multipliers beat flat rates at that volume",
				Priority:  model.PrioritySoon,
			},
			{
				Action:    "Route each purchase to the card that earns most",
				Condition: "starting now",
				Rationale: "wrong-card spend is the main leak at this stage",
				Priority:  model.PriorityNow,
			},
			{
				Action:    "Consider a signup bonus when a large purchase is planned",
				Condition: "only with spend you would do anyway",
				Rationale: "manufactured spend to hit bonuses backfires",
				Priority:  model.PriorityLater,
			},
		},
		DoNots: []string{
			"Do not open a card only for its signup bonus",
			"Do not let annual-fee cards sit unused",
			"Do not spend more to earn more points",
		},
		RecommendedCards: []string{
			"A grocery or dining multiplier card matching your spend",
			"A no-fee flat-rate card as the default",
		},
		Timeline: []model.Milestone{
			{Label: "Category coverage for top 2 spend areas", TargetMonths: 3},
			{Label: "First annual-fee math review", TargetMonths: 12},
		},
		BehaviorRules: []string{
			"Re-run the card-vs-category match twice a year",
			"Cancel or downgrade cards whose fee exceeds their value",
			"Keep utilization reporting low before any planned application",
		},
	},
	model.StageScale: {
		ImmediateFocus: []string{
			"Consolidate reward currencies that combine well",
			"Plan applications around issuer velocity rules",
		},
		NextMoves: []model.NextMove{
			{
				Action:    "Map issuer application rules before the next card",
				Condition: "before any new application",
				Rationale: "issuer velocity limits can waste a hard pull",
				Priority:  model.PriorityNow,
			},
			{
				Action:    "Add a travel or transfer-partner card",
				Condition: "if you fly or stay in hotels a few times a year",
				Rationale: "transferable points outvalue cash back at this volume",
				Priority:  model.PrioritySoon,
			},
			{
				Action:    "Set calendar reminders for every annual fee",
				Condition: "at card anniversary",
				Rationale: "fee renewals are the moment to downgrade or retain",
				Priority:  model.PrioritySoon,
			},
		},
		DoNots: []string{
			"Do not hold two cards covering the same bonus category",
			"Do not let points expire in orphan programs",
			"Do not exceed what you can track; complexity has a cost",
		},
		RecommendedCards: []string{
			"A transfer-partner travel card in your main airline's alliance",
			"A premium card only if its credits match spend you already have",
		},
		Timeline: []model.Milestone{
			{Label: "Reward currency consolidation", TargetMonths: 3},
			{Label: "Annual fee audit complete", TargetMonths: 12},
		},
		BehaviorRules: []string{
			"Track every card's fee date and credit usage",
			"Review the whole portfolio yearly, not card by card",
			"Keep one no-fee card forever for file age",
		},
	},
	model.StageElite: {
		ImmediateFocus: []string{
			"Defend the profile: age, utilization, and clean history",
			"Squeeze full value from credits you already pay for",
		},
		NextMoves: []model.NextMove{
			{
				Action:    "Run a benefit-usage audit on every premium card",
				Condition: "quarterly",
				Rationale: "unused credits silently erase premium-card value",
				Priority:  model.PriorityNow,
			},
			{
				Action:    "Product-change redundant cards instead of closing",
				Condition: "when two cards overlap",
				Rationale: "product changes preserve account age",
				Priority:  model.PrioritySoon,
			},
			{
				Action:    "Revisit the portfolio when life changes spend patterns",
				Condition: "after moves, new jobs, or family changes",
				Rationale: "reward value tracks spending, and spending shifts",
				Priority:  model.PriorityLater,
			},
		},
		DoNots: []string{
			"Do not close aged accounts",
			"Do not add cards without a concrete earning plan",
			"Do not ignore retention offers at fee renewal",
		},
		RecommendedCards: []string{
			"Only cards whose credits you will verifiably use",
		},
		Timeline: []model.Milestone{
			{Label: "Quarterly benefit audit", TargetMonths: 3},
			{Label: "Annual portfolio review", TargetMonths: 12},
		},
		BehaviorRules: []string{
			"Treat every annual fee as a subscription to re-justify",
			"Keep utilization low; the file is the asset now",
			"Bank retention offers before cancelling anything",
		},
	},
}
