package api

import (
	"strings"

	"CloudLab/internal/domain/models"
)

// Display strings for the dashboard. Domain code never sees these; the
// handlers translate in both directions.

var deploymentLabels = map[models.DeploymentModel]string{
	models.DeploymentOnPrem:      "🏠 On-premises",
	models.DeploymentPublicCloud: "☁️ Public Cloud",
	models.DeploymentHybrid:      "🔀 Hybrid",
}

var fitLabels = map[models.FitLabel]string{
	models.FitGood:         "✅ GOOD FIT",
	models.FitModerateRisk: "⚠️ MODERATE RISK",
	models.FitHighRisk:     "🚨 HIGH RISK",
}

var riskBadges = map[models.RiskLevel]string{
	models.RiskLow:      "🟢 LOW",
	models.RiskMedium:   "🟡 MEDIUM",
	models.RiskHigh:     "🟠 HIGH",
	models.RiskCritical: "🔴 CRITICAL",
}

var impactLabels = map[models.ModelImpact]string{
	models.ImpactSupported: "✅",
	models.ImpactCaution:   "⚠️",
}

var decisionLabels = map[models.Decision]string{
	models.DecisionAllow:  "✅ Allow",
	models.DecisionStepUp: "🔐 Step-up MFA",
	models.DecisionBlock:  "⛔ Block",
}

var sensitivityLabels = map[models.Sensitivity]string{
	models.SensitivityPublic:       "Public",
	models.SensitivityInternal:     "Internal",
	models.SensitivityConfidential: "Confidential",
	models.SensitivityRestricted:   "Restricted (financial/health records)",
}

// parseDeployment accepts a code ("public_cloud") or its display label
// ("☁️ Public Cloud").
func parseDeployment(s string) (models.DeploymentModel, error) {
	if m, ok := fromLabel(s, deploymentLabels); ok {
		return m, nil
	}
	return models.ParseDeploymentModel(s)
}

func parseSensitivity(s string) (models.Sensitivity, error) {
	if v, ok := fromLabel(s, sensitivityLabels); ok {
		return v, nil
	}
	return models.ParseSensitivity(s)
}

func fromLabel[T comparable](s string, labels map[T]string) (T, bool) {
	s = strings.TrimSpace(s)
	for k, v := range labels {
		if v == s {
			return k, true
		}
	}
	var zero T
	return zero, false
}

func label[T comparable](v T, labels map[T]string) string {
	if s, ok := labels[v]; ok {
		return s
	}
	return ""
}
