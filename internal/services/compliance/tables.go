package compliance

import "CloudLab/internal/domain/models"

var securityRequirements = map[models.Sensitivity]models.SecurityRequirements{
	models.SensitivityPublic: {
		Encryption:      "TLS in transit; encryption at rest optional",
		AccessControl:   "Basic authentication, shared read roles acceptable",
		DataResidency:   "No restriction",
		AuditLogging:    "Access logs retained 30 days",
		BackupRetention: "7 days",
	},
	models.SensitivityInternal: {
		Encryption:      "TLS 1.2+ in transit; provider-managed keys at rest",
		AccessControl:   "SSO with role-based access control",
		DataResidency:   "Preferred region, no legal constraint",
		AuditLogging:    "Access and admin logs retained 90 days",
		BackupRetention: "30 days",
	},
	models.SensitivityConfidential: {
		Encryption:      "TLS 1.2+ in transit; customer-managed keys (KMS) at rest",
		AccessControl:   "SSO + MFA, least-privilege RBAC, quarterly access reviews",
		DataResidency:   "Contractually fixed region",
		AuditLogging:    "Immutable audit trail retained 1 year, SIEM forwarding",
		BackupRetention: "90 days, encrypted, tested restores",
	},
	models.SensitivityRestricted: {
		Encryption:      "mTLS in transit; HSM-backed customer keys at rest; field-level encryption",
		AccessControl:   "MFA everywhere, just-in-time privileged access, attribute-based policies",
		DataResidency:   "In-country only, dedicated or sovereign infrastructure",
		AuditLogging:    "Tamper-evident logs retained 7 years, real-time SIEM alerting",
		BackupRetention: "1 year+, offline copy, documented recovery objectives",
	},
}

var industryProfiles = map[models.Industry]models.IndustryProfile{
	models.IndustryFinancialServices: {
		Industry:         models.IndustryFinancialServices,
		TopRisks:         []string{"Payment fraud", "Regulatory fines", "Third-party/vendor risk"},
		RecommendedModel: models.DeploymentHybrid,
		Rationale:        "Keep ledgers and cardholder data private while bursting analytics to cloud",
	},
	models.IndustryHealthcare: {
		Industry:         models.IndustryHealthcare,
		TopRisks:         []string{"PHI exposure", "Ransomware", "Legacy medical devices"},
		RecommendedModel: models.DeploymentHybrid,
		Rationale:        "Patient records stay under direct control; research workloads use elastic compute",
	},
	models.IndustryGovernment: {
		Industry:         models.IndustryGovernment,
		TopRisks:         []string{"Nation-state intrusion", "Data sovereignty", "Insider threat"},
		RecommendedModel: models.DeploymentOnPrem,
		Rationale:        "Sovereignty and classification rules favour infrastructure the agency operates",
	},
	models.IndustryRetail: {
		Industry:         models.IndustryRetail,
		TopRisks:         []string{"Card skimming", "Seasonal traffic spikes", "Account takeover"},
		RecommendedModel: models.DeploymentPublicCloud,
		Rationale:        "Elastic capacity for peak seasons outweighs the control of owned hardware",
	},
	models.IndustryManufacturing: {
		Industry:         models.IndustryManufacturing,
		TopRisks:         []string{"OT/ICS compromise", "IP theft", "Supply-chain disruption"},
		RecommendedModel: models.DeploymentHybrid,
		Rationale:        "Plant-floor systems stay local; planning and analytics move to cloud",
	},
	models.IndustryTechnology: {
		Industry:         models.IndustryTechnology,
		TopRisks:         []string{"Credential leaks", "Misconfigured cloud storage", "Software supply chain"},
		RecommendedModel: models.DeploymentPublicCloud,
		Rationale:        "Cloud-native teams gain the most from managed services and automation",
	},
}

var regulationDetails = map[models.Regulation]models.RegulationDetail{
	models.RegulationGDPR: {
		Regulation: models.RegulationGDPR,
		Name:       "GDPR",
		KeyRequirements: []string{
			"Lawful basis and purpose limitation",
			"Data subject rights (access, erasure, portability)",
			"Breach notification within 72 hours",
		},
		TechnicalControls: []string{
			"Data mapping and classification",
			"Pseudonymisation of personal data",
			"Region-pinned storage for EU residents",
		},
		Impact: map[models.DeploymentModel]models.ModelImpact{
			models.DeploymentOnPrem:      models.ImpactSupported,
			models.DeploymentPublicCloud: models.ImpactCaution,
			models.DeploymentHybrid:      models.ImpactSupported,
		},
	},
	models.RegulationHIPAA: {
		Regulation: models.RegulationHIPAA,
		Name:       "HIPAA",
		KeyRequirements: []string{
			"Business associate agreements with every processor",
			"Minimum necessary access to PHI",
			"Security risk assessment",
		},
		TechnicalControls: []string{
			"Encryption of PHI at rest and in transit",
			"Unique user IDs and automatic logoff",
			"Audit controls on PHI access",
		},
		Impact: map[models.DeploymentModel]models.ModelImpact{
			models.DeploymentOnPrem:      models.ImpactSupported,
			models.DeploymentPublicCloud: models.ImpactCaution,
			models.DeploymentHybrid:      models.ImpactSupported,
		},
	},
	models.RegulationSOX: {
		Regulation: models.RegulationSOX,
		Name:       "SOX",
		KeyRequirements: []string{
			"Internal controls over financial reporting",
			"Segregation of duties",
			"Change management evidence",
		},
		TechnicalControls: []string{
			"Immutable audit logs for financial systems",
			"Approval workflows for production changes",
			"Periodic access certification",
		},
		Impact: map[models.DeploymentModel]models.ModelImpact{
			models.DeploymentOnPrem:      models.ImpactSupported,
			models.DeploymentPublicCloud: models.ImpactSupported,
			models.DeploymentHybrid:      models.ImpactSupported,
		},
	},
	models.RegulationPCIDSS: {
		Regulation: models.RegulationPCIDSS,
		Name:       "PCI-DSS",
		KeyRequirements: []string{
			"Protect stored cardholder data",
			"Restrict access by business need to know",
			"Regularly test security systems",
		},
		TechnicalControls: []string{
			"Network segmentation of the cardholder data environment",
			"Tokenisation of PAN",
			"Quarterly vulnerability scans",
		},
		Impact: map[models.DeploymentModel]models.ModelImpact{
			models.DeploymentOnPrem:      models.ImpactSupported,
			models.DeploymentPublicCloud: models.ImpactCaution,
			models.DeploymentHybrid:      models.ImpactCaution,
		},
	},
	models.RegulationISO27001: {
		Regulation: models.RegulationISO27001,
		Name:       "ISO 27001",
		KeyRequirements: []string{
			"Information security management system",
			"Risk treatment plan",
			"Continual improvement and internal audit",
		},
		TechnicalControls: []string{
			"Asset inventory",
			"Access control policy",
			"Supplier security reviews",
		},
		Impact: map[models.DeploymentModel]models.ModelImpact{
			models.DeploymentOnPrem:      models.ImpactSupported,
			models.DeploymentPublicCloud: models.ImpactSupported,
			models.DeploymentHybrid:      models.ImpactSupported,
		},
	},
}

var (
	highComplexityPriorities = []string{
		"Classify data and map regulated flows end to end",
		"Deploy customer-managed keys and an HSM-backed key hierarchy",
		"Enforce MFA and just-in-time privileged access",
		"Centralise immutable audit logging into the SIEM",
		"Run a third-party assessment before go-live",
	}

	mediumComplexityPriorities = []string{
		"Inventory data stores and owners",
		"Enable encryption at rest with managed keys",
		"Roll out SSO with role-based access",
		"Turn on access and admin logging",
		"Schedule backup and restore drills",
	}
)

const (
	highComplexityTimeline   = "6-12 months"
	mediumComplexityTimeline = "2-4 months"
)

var baseRiskLevel = map[models.Sensitivity]models.RiskLevel{
	models.SensitivityPublic:       models.RiskLow,
	models.SensitivityInternal:     models.RiskMedium,
	models.SensitivityConfidential: models.RiskHigh,
	models.SensitivityRestricted:   models.RiskCritical,
}
