package models

// RiskLevel is the canonical risk badge of a recommendation.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

var riskOrder = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// Rank orders levels from LOW=0 to CRITICAL=3.
func (r RiskLevel) Rank() int {
	for i, v := range riskOrder {
		if v == r {
			return i
		}
	}
	return -1
}

// Raise returns the next level up, saturating at CRITICAL.
func (r RiskLevel) Raise() RiskLevel {
	i := r.Rank()
	if i < 0 || i+1 >= len(riskOrder) {
		return r
	}
	return riskOrder[i+1]
}

// FitLabel summarises how well the deployment model suits the data.
type FitLabel string

const (
	FitGood         FitLabel = "GOOD FIT"
	FitModerateRisk FitLabel = "MODERATE RISK"
	FitHighRisk     FitLabel = "HIGH RISK"
)

// Complexity of the implementation roadmap.
type Complexity string

const (
	ComplexityMedium Complexity = "MEDIUM"
	ComplexityHigh   Complexity = "HIGH"
)

// ModelImpact is how a regulation sits with one deployment model.
type ModelImpact string

const (
	ImpactSupported ModelImpact = "supported"
	ImpactCaution   ModelImpact = "caution"
)

type SecurityRequirements struct {
	Encryption      string `json:"encryption"`
	AccessControl   string `json:"access_control"`
	DataResidency   string `json:"data_residency"`
	AuditLogging    string `json:"audit_logging"`
	BackupRetention string `json:"backup_retention"`
}

type IndustryProfile struct {
	Industry         Industry        `json:"industry"`
	TopRisks         []string        `json:"top_risks"`
	RecommendedModel DeploymentModel `json:"recommended_model"`
	Rationale        string          `json:"rationale"`
}

type RegulationDetail struct {
	Regulation        Regulation                      `json:"regulation"`
	Name              string                          `json:"name"`
	KeyRequirements   []string                        `json:"key_requirements"`
	TechnicalControls []string                        `json:"technical_controls"`
	Impact            map[DeploymentModel]ModelImpact `json:"impact"`
}

// RecommendInput is the profile the recommendation engine evaluates.
type RecommendInput struct {
	Model       DeploymentModel `json:"model"`
	Sensitivity Sensitivity     `json:"sensitivity"`
	Regulations []Regulation    `json:"regulations"`
	Industry    Industry        `json:"industry"`
}

// Recommendation is a pure function of RecommendInput.
type Recommendation struct {
	Input        RecommendInput       `json:"input"`
	Requirements SecurityRequirements `json:"requirements"`
	Industry     IndustryProfile      `json:"industry"`
	Regulations  []RegulationDetail   `json:"regulations"`
	RiskLevel    RiskLevel            `json:"risk_level"`
	Fit          FitLabel             `json:"fit"`
	Rationale    string               `json:"rationale"`
	Priorities   []string             `json:"priorities"`
	Complexity   Complexity           `json:"complexity"`
	Timeline     string               `json:"timeline"`
}

// ArchitectureFlow describes the data path of one deployment model.
type ArchitectureFlow struct {
	Model     DeploymentModel `json:"model"`
	Steps     []string        `json:"steps"`
	Strengths []string        `json:"strengths"`
	TradeOffs []string        `json:"trade_offs"`
}

// ServiceModelProfile is one row of the IaaS/PaaS/SaaS responsibility matrix.
type ServiceModelProfile struct {
	Model           ServiceModel `json:"model"`
	Name            string       `json:"name"`
	ProviderManages []string     `json:"provider_manages"`
	CustomerManages []string     `json:"customer_manages"`
	Examples        []string     `json:"examples"`
	ControlLevel    string       `json:"control_level"`
	BestFor         string       `json:"best_for"`
}
