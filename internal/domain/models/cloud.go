package models

import (
	"strings"
	"unicode"
)

// DeploymentModel is where the workload runs.
type DeploymentModel string

const (
	DeploymentOnPrem      DeploymentModel = "on_prem"
	DeploymentPublicCloud DeploymentModel = "public_cloud"
	DeploymentHybrid      DeploymentModel = "hybrid"
)

// DeploymentModels lists every deployment model in display order.
var DeploymentModels = []DeploymentModel{DeploymentOnPrem, DeploymentPublicCloud, DeploymentHybrid}

// ServiceModel is the cloud service layer bought from a provider.
type ServiceModel string

const (
	ServiceIaaS ServiceModel = "iaas"
	ServicePaaS ServiceModel = "paas"
	ServiceSaaS ServiceModel = "saas"
)

var ServiceModels = []ServiceModel{ServiceIaaS, ServicePaaS, ServiceSaaS}

type Industry string

const (
	IndustryFinancialServices Industry = "financial_services"
	IndustryHealthcare        Industry = "healthcare"
	IndustryGovernment        Industry = "government"
	IndustryRetail            Industry = "retail"
	IndustryManufacturing     Industry = "manufacturing"
	IndustryTechnology        Industry = "technology"
)

var Industries = []Industry{
	IndustryFinancialServices,
	IndustryHealthcare,
	IndustryGovernment,
	IndustryRetail,
	IndustryManufacturing,
	IndustryTechnology,
}

type CompanySize string

const (
	SizeStartup    CompanySize = "startup"
	SizeSMB        CompanySize = "smb"
	SizeEnterprise CompanySize = "enterprise"
)

var CompanySizes = []CompanySize{SizeStartup, SizeSMB, SizeEnterprise}

// Sensitivity is the data classification tier. Tiers are ordered; use Rank to compare.
type Sensitivity string

const (
	SensitivityPublic       Sensitivity = "public"
	SensitivityInternal     Sensitivity = "internal"
	SensitivityConfidential Sensitivity = "confidential"
	SensitivityRestricted   Sensitivity = "restricted"
)

var Sensitivities = []Sensitivity{
	SensitivityPublic,
	SensitivityInternal,
	SensitivityConfidential,
	SensitivityRestricted,
}

// Rank returns 0 for Public up to 3 for Restricted, -1 for unknown values.
func (s Sensitivity) Rank() int {
	for i, v := range Sensitivities {
		if v == s {
			return i
		}
	}
	return -1
}

type Regulation string

const (
	RegulationNone     Regulation = "none"
	RegulationGDPR     Regulation = "gdpr"
	RegulationHIPAA    Regulation = "hipaa"
	RegulationSOX      Regulation = "sox"
	RegulationPCIDSS   Regulation = "pci_dss"
	RegulationISO27001 Regulation = "iso27001"
)

// Regulations lists the frameworks with detail blocks. RegulationNone is
// accepted by ParseRegulation but never appears here.
var Regulations = []Regulation{
	RegulationGDPR,
	RegulationHIPAA,
	RegulationSOX,
	RegulationPCIDSS,
	RegulationISO27001,
}

// IsolationLevel is the network isolation posture priced by the cost estimator.
type IsolationLevel string

const (
	IsolationBasic     IsolationLevel = "basic"
	IsolationStandard  IsolationLevel = "standard"
	IsolationStrict    IsolationLevel = "strict"
	IsolationAirGapped IsolationLevel = "air_gapped"
)

var IsolationLevels = []IsolationLevel{IsolationBasic, IsolationStandard, IsolationStrict, IsolationAirGapped}

func ParseDeploymentModel(s string) (DeploymentModel, error) {
	return parseEnum("deployment model", s, DeploymentModels)
}

func ParseServiceModel(s string) (ServiceModel, error) {
	return parseEnum("service model", s, ServiceModels)
}

func ParseIndustry(s string) (Industry, error) {
	return parseEnum("industry", s, Industries)
}

func ParseCompanySize(s string) (CompanySize, error) {
	return parseEnum("company size", s, CompanySizes)
}

func ParseSensitivity(s string) (Sensitivity, error) {
	return parseEnum("sensitivity", s, Sensitivities)
}

func ParseRegulation(s string) (Regulation, error) {
	return parseEnum("regulation", s, append([]Regulation{RegulationNone}, Regulations...))
}

// ParseRegulations parses each entry, drops "none" and collapses duplicates
// while keeping first-seen order.
func ParseRegulations(raw []string) ([]Regulation, error) {
	out := make([]Regulation, 0, len(raw))
	seen := make(map[Regulation]bool, len(raw))
	for _, s := range raw {
		r, err := ParseRegulation(s)
		if err != nil {
			return nil, err
		}
		if r == RegulationNone || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, nil
}

func ParseIsolationLevel(s string) (IsolationLevel, error) {
	return parseEnum("isolation level", s, IsolationLevels)
}

// parseEnum matches s against valid ignoring case and punctuation, so
// "PCI-DSS", "pci_dss" and "pci dss" all resolve to the same code.
func parseEnum[T ~string](kind, s string, valid []T) (T, error) {
	key := foldKey(s)
	if key != "" {
		for _, v := range valid {
			if foldKey(string(v)) == key {
				return v, nil
			}
		}
	}
	var zero T
	return zero, &CategoryError{Kind: kind, Value: s}
}

func foldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
