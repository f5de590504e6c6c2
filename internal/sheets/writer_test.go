package sheets

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/diagnostics"
	"github.com/swipewise/swipewise/internal/model"
)

func sampleReport() *Report {
	return &Report{
		DateRange: DateRange{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		Subscriptions: []diagnostics.SubscriptionCandidate{
			{
				MerchantName: "Netflix",
				Cadence:      diagnostics.CadenceMonthly,
				Confidence:   model.ConfidenceHigh,
				Amount:       15.49,
				AnnualCost:   185.88,
				Occurrences:  3,
				LastSeen:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		MissedBenefits: []diagnostics.MissedBenefit{
			{
				CardID:      "premium-travel",
				CardName:    "Premium Travel",
				BenefitName: "Travel credit",
				Period:      model.BenefitAnnual,
				Amount:      300,
			},
		},
		Opportunity: &diagnostics.OpportunityReport{
			Categories: []diagnostics.CategoryMiss{
				{
					Category:     model.CategoryGroceries,
					BestCardName: "Grocery 4x",
					Spend:        500,
					PointsEarned: 500,
					PointsBest:   2000,
				},
			},
			TotalEarned:  500,
			TotalBest:    2000,
			Transactions: 12,
		},
	}
}

func TestPrepareReportData(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}
	values := w.prepareReportData(sampleReport())
	require.NotEmpty(t, values)

	// Title row carries the date range.
	assert.Equal(t, "Wallet Diagnostics", values[0][0])
	assert.Contains(t, values[0][1], "Jan 1, 2026")

	var sections []string
	flat := map[string]bool{}
	for _, row := range values {
		if len(row) == 1 {
			if s, ok := row[0].(string); ok {
				sections = append(sections, s)
			}
		}
		for _, cell := range row {
			if s, ok := cell.(string); ok {
				flat[s] = true
			}
		}
	}

	assert.Contains(t, sections, "Opportunity Cost")
	assert.Contains(t, sections, "Detected Subscriptions")
	assert.Contains(t, sections, "Missed Benefits")

	assert.True(t, flat["Netflix"])
	assert.True(t, flat["Travel credit"])
	assert.True(t, flat["Grocery 4x"])
}

func TestPrepareReportDataWithoutOpportunity(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}
	report := sampleReport()
	report.Opportunity = nil

	values := w.prepareReportData(report)
	for _, row := range values {
		if len(row) == 1 {
			assert.NotEqual(t, "Opportunity Cost", row[0])
		}
	}
}

func TestNewWriterRejectsInvalidConfig(t *testing.T) {
	_, err := NewWriter(context.Background(), Config{}, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	report := sampleReport()

	require.NoError(t, mock.Write(context.Background(), report))
	assert.Equal(t, 1, mock.WriteCallCount)
	assert.Equal(t, report, mock.LastReport)

	mock.WriteFunc = func(_ context.Context, _ *Report) error {
		return assert.AnError
	}
	require.Error(t, mock.Write(context.Background(), report))

	mock.Reset()
	assert.Equal(t, 0, mock.WriteCallCount)
	assert.Nil(t, mock.LastReport)
}
