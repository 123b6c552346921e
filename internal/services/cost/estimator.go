// Package cost prices a deployment profile with a fixed multiplier model.
package cost

import (
	"fmt"

	"CloudLab/internal/domain/models"

	"github.com/shopspring/decimal"
)

var (
	baseCost = map[models.DeploymentModel]float64{
		models.DeploymentOnPrem:      500,
		models.DeploymentPublicCloud: 200,
		models.DeploymentHybrid:      300,
	}

	industryMultiplier = map[models.Industry]float64{
		models.IndustryFinancialServices: 1.30,
		models.IndustryHealthcare:        1.25,
		models.IndustryGovernment:        1.40,
		models.IndustryRetail:            1.00,
		models.IndustryManufacturing:     1.05,
		models.IndustryTechnology:        0.95,
	}

	sizeMultiplier = map[models.CompanySize]float64{
		models.SizeStartup:    0.8,
		models.SizeSMB:        1.0,
		models.SizeEnterprise: 1.5,
	}

	isolationMultiplier = map[models.IsolationLevel]float64{
		models.IsolationBasic:     1.0,
		models.IsolationStandard:  1.2,
		models.IsolationStrict:    1.5,
		models.IsolationAirGapped: 2.0,
	}
)

const (
	perIngestGB      = 2.5
	perUser          = 1.2
	perComplianceReg = 150
)

// EstimateMonthlyCost returns
// (base[model] + ingestGB*2.5 + users*1.2 + complianceCount*150) * isolation * industry * size.
func EstimateMonthlyCost(in models.CostInput) (models.CostEstimate, error) {
	var est models.CostEstimate

	base, ok := baseCost[in.Model]
	if !ok {
		return est, &models.CategoryError{Kind: "deployment model", Value: string(in.Model)}
	}
	ind, ok := industryMultiplier[in.Industry]
	if !ok {
		return est, &models.CategoryError{Kind: "industry", Value: string(in.Industry)}
	}
	size, ok := sizeMultiplier[in.Size]
	if !ok {
		return est, &models.CategoryError{Kind: "company size", Value: string(in.Size)}
	}
	iso, ok := isolationMultiplier[in.Isolation]
	if !ok {
		return est, &models.CategoryError{Kind: "isolation level", Value: string(in.Isolation)}
	}

	if in.IngestGB < 0 {
		return est, fmt.Errorf("ingest: %w", &models.RangeError{Field: "ingest_gb", Value: in.IngestGB, Max: 1e9})
	}
	if in.Users < 0 {
		return est, fmt.Errorf("users: %w", &models.RangeError{Field: "users", Value: float64(in.Users), Max: 1e9})
	}
	if in.ComplianceCount < 0 {
		return est, fmt.Errorf("compliance: %w", &models.RangeError{Field: "compliance_count", Value: float64(in.ComplianceCount), Max: 1e9})
	}

	est.Base = decimal.NewFromFloat(base)
	est.Ingest = decimal.NewFromFloat(in.IngestGB).Mul(decimal.NewFromFloat(perIngestGB))
	est.Users = decimal.NewFromInt(int64(in.Users)).Mul(decimal.NewFromFloat(perUser))
	est.Compliance = decimal.NewFromInt(int64(in.ComplianceCount) * perComplianceReg)
	est.Subtotal = est.Base.Add(est.Ingest).Add(est.Users).Add(est.Compliance)

	est.IsolationMultiplier = iso
	est.IndustryMultiplier = ind
	est.SizeMultiplier = size
	est.Total = est.Subtotal.
		Mul(decimal.NewFromFloat(iso)).
		Mul(decimal.NewFromFloat(ind)).
		Mul(decimal.NewFromFloat(size)).
		Round(2)
	est.Currency = "USD"

	return est, nil
}
