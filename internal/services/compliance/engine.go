// Package compliance turns a deployment profile into security requirements,
// regulation controls, a risk level and an implementation roadmap.
package compliance

import (
	"fmt"
	"sort"
	"strings"

	"CloudLab/internal/domain/models"
)

// Recommend evaluates in against the static tables. Unknown keys fail with
// a *models.CategoryError; "none" regulations and duplicates are ignored.
func Recommend(in models.RecommendInput) (models.Recommendation, error) {
	var rec models.Recommendation

	if !knownModel(in.Model) {
		return rec, &models.CategoryError{Kind: "deployment model", Value: string(in.Model)}
	}
	req, ok := securityRequirements[in.Sensitivity]
	if !ok {
		return rec, &models.CategoryError{Kind: "sensitivity", Value: string(in.Sensitivity)}
	}
	profile, ok := industryProfiles[in.Industry]
	if !ok {
		return rec, &models.CategoryError{Kind: "industry", Value: string(in.Industry)}
	}

	regs, err := normalizeRegulations(in.Regulations)
	if err != nil {
		return rec, err
	}
	details := make([]models.RegulationDetail, 0, len(regs))
	for _, r := range regs {
		details = append(details, regulationDetails[r])
	}

	rec.Input = models.RecommendInput{
		Model:       in.Model,
		Sensitivity: in.Sensitivity,
		Regulations: regs,
		Industry:    in.Industry,
	}
	rec.Requirements = req
	rec.Industry = profile
	rec.Regulations = details
	rec.RiskLevel = RiskLevelFor(in.Sensitivity, regs)
	rec.Fit, rec.Rationale = fitFor(rec.RiskLevel, in.Model, regs)
	if note := cautionNote(in.Model, details); note != "" {
		rec.Rationale += " " + note
	}

	if in.Sensitivity == models.SensitivityRestricted || in.Sensitivity == models.SensitivityConfidential {
		rec.Complexity = models.ComplexityHigh
		rec.Priorities = append([]string(nil), highComplexityPriorities...)
		rec.Timeline = highComplexityTimeline
	} else {
		rec.Complexity = models.ComplexityMedium
		rec.Priorities = append([]string(nil), mediumComplexityPriorities...)
		rec.Timeline = mediumComplexityTimeline
	}

	return rec, nil
}

// RiskLevelFor is the single risk derivation shared by the badge and the fit
// label. HIPAA or PCI-DSS lifts a level below HIGH by one step.
func RiskLevelFor(s models.Sensitivity, regs []models.Regulation) models.RiskLevel {
	level, ok := baseRiskLevel[s]
	if !ok {
		return models.RiskLow
	}
	if hasStrictRegime(regs) && level.Rank() < models.RiskHigh.Rank() {
		level = level.Raise()
	}
	return level
}

func fitFor(level models.RiskLevel, model models.DeploymentModel, regs []models.Regulation) (models.FitLabel, string) {
	public := model == models.DeploymentPublicCloud

	switch {
	case level == models.RiskCritical && public:
		return models.FitHighRisk, "Restricted data on shared public infrastructure needs sovereign regions, " +
			"dedicated tenancy and HSM-backed keys before it is acceptable."
	case level == models.RiskCritical:
		return models.FitGood, "Restricted data stays on infrastructure you control, keeping residency and key custody in-house."
	case level == models.RiskHigh && public && hasStrictRegime(regs):
		return models.FitModerateRisk, fmt.Sprintf("Regulated data (%s) can run in public cloud only with signed "+
			"provider attestations, customer-managed keys and a segmented network.", strictNames(regs))
	case level == models.RiskHigh && public:
		return models.FitModerateRisk, "Confidential data in public cloud needs customer-managed keys, private networking and strict IAM."
	}
	return models.FitGood, "The deployment model matches the data classification with standard controls."
}

func cautionNote(model models.DeploymentModel, details []models.RegulationDetail) string {
	var names []string
	for _, d := range details {
		if d.Impact[model] == models.ImpactCaution {
			names = append(names, d.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("Review: %s flag this model for extra controls.", strings.Join(names, ", "))
}

func hasStrictRegime(regs []models.Regulation) bool {
	for _, r := range regs {
		if r == models.RegulationHIPAA || r == models.RegulationPCIDSS {
			return true
		}
	}
	return false
}

func strictNames(regs []models.Regulation) string {
	var names []string
	for _, r := range regs {
		if r == models.RegulationHIPAA || r == models.RegulationPCIDSS {
			names = append(names, regulationDetails[r].Name)
		}
	}
	return strings.Join(names, ", ")
}

// normalizeRegulations drops "none", collapses duplicates and sorts into
// the canonical regulation order.
func normalizeRegulations(in []models.Regulation) ([]models.Regulation, error) {
	seen := make(map[models.Regulation]bool, len(in))
	out := make([]models.Regulation, 0, len(in))
	for _, r := range in {
		if r == models.RegulationNone || seen[r] {
			continue
		}
		if _, ok := regulationDetails[r]; !ok {
			return nil, &models.CategoryError{Kind: "regulation", Value: string(r)}
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return regulationOrder(out[i]) < regulationOrder(out[j]) })
	return out, nil
}

func regulationOrder(r models.Regulation) int {
	for i, v := range models.Regulations {
		if v == r {
			return i
		}
	}
	return len(models.Regulations)
}

func knownModel(m models.DeploymentModel) bool {
	for _, v := range models.DeploymentModels {
		if v == m {
			return true
		}
	}
	return false
}
