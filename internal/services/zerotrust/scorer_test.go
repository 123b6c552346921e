package zerotrust

import (
	"math"
	"testing"

	"CloudLab/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_Extremes(t *testing.T) {
	worst, err := Score(models.ZeroTrustInputs{
		DevicePosture: 2, VPNSuspected: 1, GeoAnomaly: 1, RecentFailRate: 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, worst.Score)
	assert.Greater(t, worst.Raw, 100.0)
	assert.Equal(t, models.DecisionBlock, worst.Decision)

	best, err := Score(models.ZeroTrustInputs{SegmentationDepth: 2, RBACGranularity: 2})
	require.NoError(t, err)
	assert.Equal(t, 20.0, best.Score)
	assert.Equal(t, models.DecisionAllow, best.Decision)
}

func TestScore_AlwaysBounded(t *testing.T) {
	for d := 0; d <= 2; d++ {
		for v := 0; v <= 1; v++ {
			for g := 0; g <= 1; g++ {
				for s := 0; s <= 2; s++ {
					for r := 0; r <= 2; r++ {
						for _, f := range []float64{0, 0.12, 0.5, 1} {
							a, err := Score(models.ZeroTrustInputs{
								DevicePosture: d, VPNSuspected: v, GeoAnomaly: g,
								RecentFailRate: f, SegmentationDepth: s, RBACGranularity: r,
							})
							require.NoError(t, err)
							assert.GreaterOrEqual(t, a.Score, 0.0)
							assert.LessOrEqual(t, a.Score, 100.0)
						}
					}
				}
			}
		}
	}
}

func TestScore_Decisions(t *testing.T) {
	tests := []struct {
		name string
		in   models.ZeroTrustInputs
		want models.Decision
	}{
		// 20 + 18 = 38
		{"step up", models.ZeroTrustInputs{DevicePosture: 1, SegmentationDepth: 2, RBACGranularity: 2}, models.DecisionStepUp},
		// 20 + 36 + 10 = 66
		{"block", models.ZeroTrustInputs{DevicePosture: 2, SegmentationDepth: 1, RBACGranularity: 2}, models.DecisionBlock},
		// 20 + 10 = 30
		{"allow", models.ZeroTrustInputs{GeoAnomaly: 1, SegmentationDepth: 2, RBACGranularity: 2}, models.DecisionAllow},
		// 20 + 15 = 35
		{"step up at threshold", models.ZeroTrustInputs{VPNSuspected: 1, SegmentationDepth: 2, RBACGranularity: 2}, models.DecisionStepUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Score(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Decision)
		})
	}
}

func TestScore_ContributionsSumToRaw(t *testing.T) {
	a, err := Score(models.ZeroTrustInputs{DevicePosture: 1, VPNSuspected: 1, RecentFailRate: 0.2, SegmentationDepth: 1, RBACGranularity: 0})
	require.NoError(t, err)

	var sum float64
	for _, c := range a.Contributions {
		sum += c.Points
	}
	assert.InDelta(t, a.Raw, sum, 1e-9)
	assert.InDelta(t, 20+18+15+5+10+16, a.Raw, 1e-9)
}

func TestScore_OutOfRange(t *testing.T) {
	bad := []models.ZeroTrustInputs{
		{DevicePosture: 3},
		{VPNSuspected: -1},
		{GeoAnomaly: 2},
		{RecentFailRate: 1.5},
		{RecentFailRate: math.NaN()},
		{SegmentationDepth: 5},
		{RBACGranularity: -2},
	}
	for _, in := range bad {
		_, err := Score(in)
		assert.ErrorIs(t, err, models.ErrOutOfRange, "%+v", in)
	}
}
