package compliance

import "CloudLab/internal/domain/models"

var architectureFlows = map[models.DeploymentModel]models.ArchitectureFlow{
	models.DeploymentOnPrem: {
		Model:     models.DeploymentOnPrem,
		Steps:     []string{"Ingest", "On-prem ETL", "Data warehouse", "BI"},
		Strengths: []string{"Full data residency control", "Strict network perimeter", "Predictable CapEx"},
		TradeOffs: []string{"Slower to scale", "Less elastic", "Hardware refresh cycles"},
	},
	models.DeploymentPublicCloud: {
		Model:     models.DeploymentPublicCloud,
		Steps:     []string{"Ingest", "Cloud storage and compute", "Warehouse or lake", "BI"},
		Strengths: []string{"Elastic scale", "Managed services", "Policy-as-code"},
		TradeOffs: []string{"Provider lock-in risk", "Shared responsibility gaps", "Variable OpEx"},
	},
	models.DeploymentHybrid: {
		Model:     models.DeploymentHybrid,
		Steps:     []string{"Ingest", "Cloud lake", "Secure share to on-prem and SaaS", "BI and AI"},
		Strengths: []string{"Workload-based placement", "Sensitive data stays private", "Burst capacity"},
		TradeOffs: []string{"Governance discipline needed", "Two operating models", "Network egress cost"},
	},
}

var serviceModelProfiles = []models.ServiceModelProfile{
	{
		Model:           models.ServiceIaaS,
		Name:            "Infrastructure as a Service",
		ProviderManages: []string{"Facilities", "Hardware", "Virtualisation", "Network fabric"},
		CustomerManages: []string{"Operating system", "Runtime", "Middleware", "Applications", "Data", "Identity"},
		Examples:        []string{"AWS EC2", "Azure Virtual Machines", "Google Compute Engine"},
		ControlLevel:    "high",
		BestFor:         "Lift-and-shift and workloads needing OS-level control",
	},
	{
		Model:           models.ServicePaaS,
		Name:            "Platform as a Service",
		ProviderManages: []string{"Facilities", "Hardware", "Virtualisation", "Network fabric", "Operating system", "Runtime", "Middleware"},
		CustomerManages: []string{"Applications", "Data", "Identity"},
		Examples:        []string{"Google App Engine", "Azure App Service", "AWS Elastic Beanstalk"},
		ControlLevel:    "medium",
		BestFor:         "Teams shipping applications without running servers",
	},
	{
		Model:           models.ServiceSaaS,
		Name:            "Software as a Service",
		ProviderManages: []string{"Facilities", "Hardware", "Virtualisation", "Network fabric", "Operating system", "Runtime", "Middleware", "Applications"},
		CustomerManages: []string{"Data", "Identity"},
		Examples:        []string{"Salesforce", "Microsoft 365", "Workday"},
		ControlLevel:    "low",
		BestFor:         "Commodity business functions",
	},
}

// Architecture returns the illustrative data flow for a deployment model.
func Architecture(model models.DeploymentModel) (models.ArchitectureFlow, error) {
	flow, ok := architectureFlows[model]
	if !ok {
		return models.ArchitectureFlow{}, &models.CategoryError{Kind: "deployment model", Value: string(model)}
	}
	return flow, nil
}

// ServiceModels returns the IaaS/PaaS/SaaS responsibility matrix.
func ServiceModels() []models.ServiceModelProfile {
	out := make([]models.ServiceModelProfile, len(serviceModelProfiles))
	copy(out, serviceModelProfiles)
	return out
}
