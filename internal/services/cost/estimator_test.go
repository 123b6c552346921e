package cost

import (
	"errors"
	"testing"

	"CloudLab/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() models.CostInput {
	return models.CostInput{
		Model:           models.DeploymentHybrid,
		Industry:        models.IndustryRetail,
		Size:            models.SizeSMB,
		IngestGB:        40,
		Users:           60,
		ComplianceCount: 1,
		Isolation:       models.IsolationBasic,
	}
}

func TestEstimateMonthlyCostFormula(t *testing.T) {
	est, err := EstimateMonthlyCost(baseInput())
	require.NoError(t, err)

	// 300 + 40*2.5 + 60*1.2 + 1*150 = 622
	assert.Equal(t, "622", est.Subtotal.String())
	assert.Equal(t, "622", est.Total.String())
	assert.Equal(t, "USD", est.Currency)
}

func TestEstimateMonthlyCostMultipliers(t *testing.T) {
	in := baseInput()
	in.Model = models.DeploymentOnPrem
	in.Industry = models.IndustryGovernment
	in.Size = models.SizeEnterprise
	in.Isolation = models.IsolationAirGapped
	in.IngestGB = 0
	in.Users = 0
	in.ComplianceCount = 0

	est, err := EstimateMonthlyCost(in)
	require.NoError(t, err)
	// 500 * 2.0 * 1.4 * 1.5
	assert.Equal(t, "2100", est.Total.String())
	assert.Equal(t, 2.0, est.IsolationMultiplier)
	assert.Equal(t, 1.4, est.IndustryMultiplier)
	assert.Equal(t, 1.5, est.SizeMultiplier)
}

func TestEstimateMonthlyCostMonotonic(t *testing.T) {
	for _, model := range models.DeploymentModels {
		for _, iso := range models.IsolationLevels {
			prev := baseInput()
			prev.Model, prev.Isolation = model, iso
			prevEst, err := EstimateMonthlyCost(prev)
			require.NoError(t, err)

			steps := []func(*models.CostInput){
				func(in *models.CostInput) { in.IngestGB += 17.5 },
				func(in *models.CostInput) { in.Users += 25 },
				func(in *models.CostInput) { in.ComplianceCount++ },
			}
			for i := 0; i < 30; i++ {
				next := prev
				steps[i%len(steps)](&next)
				nextEst, err := EstimateMonthlyCost(next)
				require.NoError(t, err)
				assert.True(t, nextEst.Total.GreaterThanOrEqual(prevEst.Total),
					"%s/%s step %d: %s < %s", model, iso, i, nextEst.Total, prevEst.Total)
				prev, prevEst = next, nextEst
			}
		}
	}
}

func TestEstimateMonthlyCostUnknownCategory(t *testing.T) {
	in := baseInput()
	in.Industry = "mining"
	_, err := EstimateMonthlyCost(in)
	assert.ErrorIs(t, err, models.ErrUnknownCategory)

	var ce *models.CategoryError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "industry", ce.Kind)
}

func TestEstimateMonthlyCostRejectsNegative(t *testing.T) {
	in := baseInput()
	in.Users = -1
	_, err := EstimateMonthlyCost(in)
	assert.ErrorIs(t, err, models.ErrOutOfRange)
}
