package usecase

import (
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"
	"CloudLab/internal/services/compliance"
	"CloudLab/internal/services/cost"
	"CloudLab/internal/services/forecast"
	"CloudLab/internal/services/platform"
	"CloudLab/internal/services/zerotrust"
	"CloudLab/pkg/logger"
)

// Advisor fronts the pure calculators with logging and latency metrics.
type Advisor struct {
	metrics drepo.Metrics
	logger  *logger.Logger
}

func NewAdvisor(metrics drepo.Metrics, l *logger.Logger) *Advisor {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &Advisor{metrics: metrics, logger: l}
}

func (a *Advisor) EstimateCost(in models.CostInput) (models.CostEstimate, error) {
	defer a.observe("cost", time.Now())
	out, err := cost.EstimateMonthlyCost(in)
	return out, a.inputError("cost", err)
}

func (a *Advisor) Recommend(in models.RecommendInput) (models.Recommendation, error) {
	defer a.observe("recommend", time.Now())
	out, err := compliance.Recommend(in)
	return out, a.inputError("recommend", err)
}

func (a *Advisor) Architecture(m models.DeploymentModel) (models.ArchitectureFlow, error) {
	out, err := compliance.Architecture(m)
	return out, a.inputError("architecture", err)
}

func (a *Advisor) ServiceModels() []models.ServiceModelProfile {
	return compliance.ServiceModels()
}

func (a *Advisor) PlatformFit(w models.Workload, dt models.DataType, skill models.TeamSkill, b models.BudgetPosture) (models.PlatformFit, error) {
	defer a.observe("platform_fit", time.Now())
	out, err := platform.ScorePlatformFit(w, dt, skill, b)
	return out, a.inputError("platform_fit", err)
}

func (a *Advisor) ZeroTrust(in models.ZeroTrustInputs) (models.ZeroTrustAssessment, error) {
	defer a.observe("zerotrust", time.Now())
	out, err := zerotrust.Score(in)
	return out, a.inputError("zerotrust", err)
}

func (a *Advisor) Revenue(in models.RevenueInput) (models.RevenueEstimate, error) {
	defer a.observe("revenue", time.Now())
	out, err := forecast.TransactionFeeRevenue(in)
	return out, a.inputError("revenue", err)
}

func (a *Advisor) Projection(current float64, years int) (models.PriceProjection, error) {
	defer a.observe("projection", time.Now())
	out, err := forecast.ProjectPrices(current, years)
	return out, a.inputError("projection", err)
}

func (a *Advisor) observe(op string, start time.Time) {
	a.metrics.RecordLatency(op, time.Since(start).Seconds())
}

func (a *Advisor) inputError(op string, err error) error {
	if err != nil {
		a.logger.Debug("calculator input rejected", logger.String("op", op), logger.Error(err))
	}
	return err
}
