package api

import (
	"time"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/services/compliance"
	xhttp "CloudLab/pkg/http"

	"github.com/labstack/echo/v4"
)

type costView struct {
	models.CostEstimate
	ModelLabel string `json:"model_label"`
}

func (h *Handler) Cost(c echo.Context) error {
	defer since("cost", time.Now())

	req := &models.CostRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "cost", verr)
	}

	in, err := costInput(req)
	if err != nil {
		return h.fail(c, "cost", err)
	}
	est, err := h.advisor.EstimateCost(in)
	if err != nil {
		return h.fail(c, "cost", err)
	}
	return xhttp.SuccessResponse(c, costView{CostEstimate: est, ModelLabel: label(in.Model, deploymentLabels)})
}

// costInput parses the categorical fields. Without an explicit
// compliance_count the number of named regulations is used.
func costInput(req *models.CostRequest) (models.CostInput, error) {
	var in models.CostInput
	var err error

	if in.Model, err = parseDeployment(req.Model); err != nil {
		return in, err
	}
	if in.Industry, err = models.ParseIndustry(req.Industry); err != nil {
		return in, err
	}
	if in.Size, err = models.ParseCompanySize(req.CompanySize); err != nil {
		return in, err
	}
	if in.Isolation, err = models.ParseIsolationLevel(req.Isolation); err != nil {
		return in, err
	}
	regs, err := models.ParseRegulations(req.Regulations)
	if err != nil {
		return in, err
	}

	in.IngestGB = req.IngestGB
	in.Users = req.Users
	in.ComplianceCount = len(regs)
	if req.ComplianceCount != nil {
		in.ComplianceCount = *req.ComplianceCount
	}
	return in, nil
}

type architectureView struct {
	models.ArchitectureFlow
	ModelLabel string `json:"model_label"`
}

func (h *Handler) Architecture(c echo.Context) error {
	req := &models.ArchitectureRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "architecture", verr)
	}
	m, err := parseDeployment(req.Model)
	if err != nil {
		return h.fail(c, "architecture", err)
	}
	flow, err := h.advisor.Architecture(m)
	if err != nil {
		return h.fail(c, "architecture", err)
	}
	return xhttp.SuccessResponse(c, architectureView{ArchitectureFlow: flow, ModelLabel: label(m, deploymentLabels)})
}

// ServiceModels lists the IaaS/PaaS/SaaS matrix, optionally narrowed by ?model=.
func (h *Handler) ServiceModels(c echo.Context) error {
	rows := h.advisor.ServiceModels()
	if raw := c.QueryParam("model"); raw != "" {
		m, err := models.ParseServiceModel(raw)
		if err != nil {
			return h.fail(c, "service_models", err)
		}
		filtered := rows[:0:0]
		for _, r := range rows {
			if r.Model == m {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

type recommendationView struct {
	models.Recommendation
	ModelLabel   string            `json:"model_label"`
	FitLabel     string            `json:"fit_label"`
	RiskBadge    string            `json:"risk_badge"`
	ImpactLabels map[string]string `json:"impact_labels,omitempty"`
}

// Recommend answers JSON, or the roadmap document with ?format=markdown.
func (h *Handler) Recommend(c echo.Context) error {
	defer since("recommend", time.Now())

	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "recommend", verr)
	}

	in, err := recommendInput(req)
	if err != nil {
		return h.fail(c, "recommend", err)
	}
	rec, err := h.advisor.Recommend(in)
	if err != nil {
		return h.fail(c, "recommend", err)
	}

	if c.QueryParam("format") == "markdown" {
		return xhttp.MarkdownResponse(c, compliance.Markdown(rec))
	}

	view := recommendationView{
		Recommendation: rec,
		ModelLabel:     label(rec.Input.Model, deploymentLabels),
		FitLabel:       label(rec.Fit, fitLabels),
		RiskBadge:      label(rec.RiskLevel, riskBadges),
	}
	if len(rec.Regulations) > 0 {
		view.ImpactLabels = make(map[string]string, len(rec.Regulations))
		for _, d := range rec.Regulations {
			view.ImpactLabels[d.Name] = label(d.Impact[rec.Input.Model], impactLabels)
		}
	}
	return xhttp.SuccessResponse(c, view)
}

func recommendInput(req *models.RecommendRequest) (models.RecommendInput, error) {
	var in models.RecommendInput
	var err error

	if in.Model, err = parseDeployment(req.Model); err != nil {
		return in, err
	}
	if in.Sensitivity, err = parseSensitivity(req.Sensitivity); err != nil {
		return in, err
	}
	if in.Industry, err = models.ParseIndustry(req.Industry); err != nil {
		return in, err
	}
	in.Regulations, err = models.ParseRegulations(req.Regulations)
	return in, err
}

func (h *Handler) PlatformFit(c echo.Context) error {
	req := &models.PlatformFitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "platform_fit", verr)
	}

	w, err := models.ParseWorkload(req.Workload)
	if err != nil {
		return h.fail(c, "platform_fit", err)
	}
	dt, err := models.ParseDataType(req.DataType)
	if err != nil {
		return h.fail(c, "platform_fit", err)
	}
	skill, err := models.ParseTeamSkill(req.TeamSkill)
	if err != nil {
		return h.fail(c, "platform_fit", err)
	}
	budget, err := models.ParseBudgetPosture(req.Budget)
	if err != nil {
		return h.fail(c, "platform_fit", err)
	}

	fit, err := h.advisor.PlatformFit(w, dt, skill, budget)
	if err != nil {
		return h.fail(c, "platform_fit", err)
	}
	return xhttp.SuccessResponse(c, fit)
}
