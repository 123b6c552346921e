package models

import "github.com/shopspring/decimal"

// CostInput is one deployment profile priced by the cost estimator.
type CostInput struct {
	Model           DeploymentModel
	Industry        Industry
	Size            CompanySize
	IngestGB        float64
	Users           int
	ComplianceCount int
	Isolation       IsolationLevel
}

// CostEstimate is a monthly figure in USD with the terms that produced it.
type CostEstimate struct {
	Total    decimal.Decimal `json:"total"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Currency string          `json:"currency"`

	Base       decimal.Decimal `json:"base"`
	Ingest     decimal.Decimal `json:"ingest"`
	Users      decimal.Decimal `json:"users"`
	Compliance decimal.Decimal `json:"compliance"`

	IsolationMultiplier float64 `json:"isolation_multiplier"`
	IndustryMultiplier  float64 `json:"industry_multiplier"`
	SizeMultiplier      float64 `json:"size_multiplier"`
}
