package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/usecase"
	xhttp "CloudLab/pkg/http"
	xlogger "CloudLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

type zeroTrustView struct {
	models.ZeroTrustAssessment
	DecisionLabel string `json:"decision_label"`
}

func (h *Handler) ZeroTrust(c echo.Context) error {
	req := &models.ZeroTrustRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "zerotrust", verr)
	}

	res, err := h.advisor.ZeroTrust(models.ZeroTrustInputs{
		DevicePosture:     req.DevicePosture,
		VPNSuspected:      req.VPNSuspected,
		GeoAnomaly:        req.GeoAnomaly,
		RecentFailRate:    req.RecentFailRate,
		SegmentationDepth: req.SegmentationDepth,
		RBACGranularity:   req.RBACGranularity,
	})
	if err != nil {
		return h.fail(c, "zerotrust", err)
	}
	return xhttp.SuccessResponse(c, zeroTrustView{ZeroTrustAssessment: res, DecisionLabel: label(res.Decision, decisionLabels)})
}

// SOC runs one synthetic hunt. Without ?seed the configured seed is used,
// so repeated calls return the same rows.
func (h *Handler) SOC(c echo.Context) error {
	defer since("soc", time.Now())

	req := &models.SOCRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "soc", verr)
	}
	n := req.N
	if n == 0 {
		n = h.opts.SOCRows
	}
	seed, err := parseSeed(req.Seed, h.opts.SOCSeed)
	if err != nil {
		return h.fail(c, "soc", err)
	}

	rep, err := h.soc.Hunt(c.Request().Context(), n, seed)
	if err != nil {
		return h.fail(c, "soc", err)
	}
	return xhttp.SuccessResponse(c, rep)
}

// parseSeed reads an unsigned 64-bit seed, falling back to def when empty.
func parseSeed(raw string, def uint64) (uint64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, xhttp.BadRequestErrorf("seed %q is not an unsigned 64-bit integer", raw).WithError(err)
	}
	return v, nil
}

type alertsView struct {
	Available bool            `json:"available"`
	Backend   string          `json:"backend"`
	Notice    string          `json:"notice,omitempty"`
	Alerts    []*models.Alert `json:"alerts"`
}

// Alerts lists stored alerts. Backends that cannot be queried answer with
// available false rather than an error.
func (h *Handler) Alerts(c echo.Context) error {
	req := &models.AlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "alerts", verr)
	}

	view := alertsView{Backend: h.alerts.Backend(), Alerts: []*models.Alert{}}
	alerts, err := h.alerts.Recent(c.Request().Context(), req.Limit, strings.ToUpper(req.Geo))
	switch {
	case errors.Is(err, usecase.ErrAlertsDisabled):
		view.Notice = "alert storage is not configured; set alerts.backend to clickhouse"
	case err != nil:
		h.logger.Warn("recent alerts unavailable", xlogger.Error(err))
		view.Notice = err.Error()
	default:
		view.Available = true
		view.Alerts = alerts
	}
	return xhttp.SuccessResponse(c, view)
}
