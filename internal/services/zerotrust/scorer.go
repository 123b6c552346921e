// Package zerotrust computes the demo access-risk score and decision.
package zerotrust

import (
	"math"

	"CloudLab/internal/domain/models"
)

const (
	baseRisk = 20.0

	blockThreshold  = 60.0
	stepUpThreshold = 35.0
)

// Score evaluates one request. Each call is independent.
func Score(in models.ZeroTrustInputs) (models.ZeroTrustAssessment, error) {
	var out models.ZeroTrustAssessment

	if err := validate(in); err != nil {
		return out, err
	}

	out.Contributions = []models.FactorContribution{
		{Factor: "base", Points: baseRisk},
		{Factor: "device_posture", Points: float64(in.DevicePosture) * 18},
		{Factor: "vpn_suspected", Points: float64(in.VPNSuspected) * 15},
		{Factor: "geo_anomaly", Points: float64(in.GeoAnomaly) * 10},
		{Factor: "recent_fail_rate", Points: in.RecentFailRate * 100 * 0.25},
		{Factor: "segmentation_depth", Points: float64(2-in.SegmentationDepth) * 10},
		{Factor: "rbac_granularity", Points: float64(2-in.RBACGranularity) * 8},
	}
	for _, c := range out.Contributions {
		out.Raw += c.Points
	}
	out.Score = math.Max(0, math.Min(100, out.Raw))
	out.Decision = decide(out.Score)
	return out, nil
}

func decide(score float64) models.Decision {
	switch {
	case score >= blockThreshold:
		return models.DecisionBlock
	case score >= stepUpThreshold:
		return models.DecisionStepUp
	}
	return models.DecisionAllow
}

func validate(in models.ZeroTrustInputs) error {
	checks := []struct {
		field  string
		v      float64
		lo, hi float64
	}{
		{"device_posture", float64(in.DevicePosture), 0, 2},
		{"vpn_suspected", float64(in.VPNSuspected), 0, 1},
		{"geo_anomaly", float64(in.GeoAnomaly), 0, 1},
		{"recent_fail_rate", in.RecentFailRate, 0, 1},
		{"segmentation_depth", float64(in.SegmentationDepth), 0, 2},
		{"rbac_granularity", float64(in.RBACGranularity), 0, 2},
	}
	for _, c := range checks {
		if err := models.CheckRange(c.field, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	if math.IsNaN(in.RecentFailRate) {
		return &models.RangeError{Field: "recent_fail_rate", Value: in.RecentFailRate, Min: 0, Max: 1}
	}
	return nil
}
