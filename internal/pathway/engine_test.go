package pathway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipewise/swipewise/internal/common"
	"github.com/swipewise/swipewise/internal/model"
)

var testNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestClassifyStages(t *testing.T) {
	tests := []struct {
		name    string
		profile model.CreditProfile
		want    model.CreditStage
	}{
		{
			name:    "no file",
			profile: model.CreditProfile{History: model.HistoryNone},
			want:    model.StageFoundation,
		},
		{
			name:    "no cards despite history",
			profile: model.CreditProfile{History: model.HistoryLong, CardCount: 0},
			want:    model.StageFoundation,
		},
		{
			name:    "thin file",
			profile: model.CreditProfile{History: model.HistoryThin, CardCount: 1},
			want:    model.StageBuild,
		},
		{
			name:    "established single card",
			profile: model.CreditProfile{History: model.HistoryEstablished, CardCount: 1},
			want:    model.StageBuild,
		},
		{
			name: "two cards with premium",
			profile: model.CreditProfile{
				History: model.HistoryEstablished, CardCount: 2, HasPremiumCard: true,
			},
			want: model.StageBuild,
		},
		{
			name:    "established multi card",
			profile: model.CreditProfile{History: model.HistoryEstablished, CardCount: 3},
			want:    model.StageOptimize,
		},
		{
			name: "fee tolerant jumps to scale",
			profile: model.CreditProfile{
				History: model.HistoryEstablished, CardCount: 3, FeeTolerant: true,
			},
			want: model.StageScale,
		},
		{
			name: "five cards scale",
			profile: model.CreditProfile{
				History: model.HistoryEstablished, CardCount: 5,
			},
			want: model.StageScale,
		},
		{
			name: "elite",
			profile: model.CreditProfile{
				History: model.HistoryLong, CardCount: 7,
			},
			want: model.StageElite,
		},
		{
			name: "derogatories bar elite",
			profile: model.CreditProfile{
				History: model.HistoryLong, CardCount: 7, HasDerogatories: true,
			},
			want: model.StageScale,
		},
		{
			name: "six cards long history stays scale",
			profile: model.CreditProfile{
				History: model.HistoryLong, CardCount: 6,
			},
			want: model.StageScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, reasons := Classify(&tt.profile)
			assert.Equal(t, tt.want, stage)
			assert.NotEmpty(t, reasons)
		})
	}
}

func TestClassifyBalanceCarrierCeiling(t *testing.T) {
	// A revolving balance caps the stage at build no matter how strong
	// the rest of the profile looks.
	profiles := []model.CreditProfile{
		{History: model.HistoryLong, CardCount: 7, CarriesBalance: true},
		{History: model.HistoryLong, CardCount: 6, HasPremiumCard: true, CarriesBalance: true},
		{History: model.HistoryEstablished, CardCount: 4, FeeTolerant: true, CarriesBalance: true},
	}
	for _, p := range profiles {
		stage, _ := Classify(&p)
		assert.LessOrEqual(t, stage.Rank(), model.StageBuild.Rank(),
			"a carried balance must never classify above build")
	}
}

func TestBuildPathwayAlwaysValidates(t *testing.T) {
	// Sweep a broad grid of profiles; every produced plan must pass the
	// schema validator.
	histories := []model.HistoryBucket{model.HistoryNone, model.HistoryThin, model.HistoryEstablished, model.HistoryLong}
	for _, history := range histories {
		for cards := 0; cards <= 8; cards += 2 {
			for _, carries := range []bool{false, true} {
				for _, premium := range []bool{false, true} {
					p := &model.CreditProfile{
						History:        history,
						CardCount:      cards,
						CarriesBalance: carries,
						HasPremiumCard: premium,
					}
					out, err := BuildPathway(p, testNow)
					require.NoError(t, err)
					require.NoError(t, ValidateOutput(out))
				}
			}
		}
	}
}

func TestBuildPathwayDebtMoveFirst(t *testing.T) {
	p := &model.CreditProfile{
		History:        model.HistoryEstablished,
		CardCount:      2,
		CarriesBalance: true,
	}
	out, err := BuildPathway(p, testNow)
	require.NoError(t, err)

	require.NotEmpty(t, out.NextMoves)
	first := out.NextMoves[0]
	assert.Equal(t, model.PriorityNow, first.Priority)
	assert.Contains(t, first.Action, "revolving balance")
}

func TestBuildPathwayConfidenceDeductions(t *testing.T) {
	full := &model.CreditProfile{
		History: model.HistoryEstablished, CardCount: 2, IncomeBucket: "50-100k",
	}
	out, err := BuildPathway(full, testNow)
	require.NoError(t, err)
	assert.Equal(t, 80, out.Confidence)

	noIncome := &model.CreditProfile{History: model.HistoryEstablished, CardCount: 2}
	out, err = BuildPathway(noIncome, testNow)
	require.NoError(t, err)
	assert.Equal(t, 70, out.Confidence)

	contradictory := &model.CreditProfile{History: model.HistoryNone, CardCount: 2}
	out, err = BuildPathway(contradictory, testNow)
	require.NoError(t, err)
	assert.Equal(t, 60, out.Confidence)
}

func TestBuildPathwayReviewCadence(t *testing.T) {
	early := &model.CreditProfile{History: model.HistoryNone}
	out, err := BuildPathway(early, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 3, 0), out.NextReviewDate)

	late := &model.CreditProfile{History: model.HistoryLong, CardCount: 6, HasPremiumCard: true, IncomeBucket: "100k+"}
	out, err = BuildPathway(late, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 6, 0), out.NextReviewDate)
}

func TestValidateOutputRejections(t *testing.T) {
	valid := func() *model.PathwayOutput {
		out, err := BuildPathway(&model.CreditProfile{History: model.HistoryThin, CardCount: 1}, testNow)
		require.NoError(t, err)
		return out
	}

	t.Run("unknown stage", func(t *testing.T) {
		out := valid()
		out.Stage = "transcendent"
		assert.ErrorIs(t, ValidateOutput(out), common.ErrSchemaViolation)
	})

	t.Run("too many moves", func(t *testing.T) {
		out := valid()
		for len(out.NextMoves) <= maxNextMoves {
			out.NextMoves = append(out.NextMoves, model.NextMove{Action: "x", Priority: model.PriorityLater})
		}
		assert.ErrorIs(t, ValidateOutput(out), common.ErrSchemaViolation)
	})

	t.Run("empty focus", func(t *testing.T) {
		out := valid()
		out.ImmediateFocus = nil
		assert.ErrorIs(t, ValidateOutput(out), common.ErrSchemaViolation)
	})

	t.Run("bad priority", func(t *testing.T) {
		out := valid()
		out.NextMoves[0].Priority = "whenever"
		assert.ErrorIs(t, ValidateOutput(out), common.ErrSchemaViolation)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		out := valid()
		out.Confidence = 130
		assert.ErrorIs(t, ValidateOutput(out), common.ErrSchemaViolation)
	})

	t.Run("zero timeline target", func(t *testing.T) {
		out := valid()
		out.Timeline[0].TargetMonths = 0
		assert.ErrorIs(t, ValidateOutput(out), common.ErrSchemaViolation)
	})
}
