package api

import (
	"errors"
	"strings"
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"
	xhttp "CloudLab/pkg/http"

	"github.com/labstack/echo/v4"
)

// respond writes result, or the unavailable envelope when the upstream
// source failed. Any other error goes through fail.
func (h *Handler) respond(c echo.Context, endpoint string, result interface{}, err error) error {
	switch {
	case err == nil:
		return h.available(c, result)
	case errors.Is(err, models.ErrDataUnavailable):
		return h.unavailable(c, endpoint, err)
	default:
		return h.fail(c, endpoint, err)
	}
}

func (h *Handler) Prices(c echo.Context) error {
	defer since("prices", time.Now())

	req := &models.PricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "prices", verr)
	}
	ids := xhttp.SplitCSV(req.IDs)
	if len(ids) == 0 {
		return h.fail(c, "prices", xhttp.FieldError("ERR_REQUIRED", "ids", "ids is required"))
	}
	p, err := h.market.SpotPrices(c.Request().Context(), ids, req.Vs)
	return h.respond(c, "prices", p, err)
}

func parseInterval(raw string) (drepo.Interval, error) {
	iv := drepo.Interval(raw)
	if !drepo.IsValidInterval(iv) {
		return "", &models.CategoryError{Kind: "interval", Value: raw}
	}
	return iv, nil
}

// Candles never reports unavailable: a failed upstream yields a synthetic
// series flagged as such.
func (h *Handler) Candles(c echo.Context) error {
	defer since("candles", time.Now())

	req := &models.CandlesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "candles", verr)
	}
	iv, err := parseInterval(req.Interval)
	if err != nil {
		return h.fail(c, "candles", err)
	}

	series, err := h.market.Candles(c.Request().Context(), req.Symbol, iv, req.Limit)
	if err != nil {
		return h.fail(c, "candles", err)
	}
	payload := marketPayload{Available: !series.Synthetic, Notice: series.Notice, Result: series}
	if series.Synthetic {
		h.degraded("candles")
	}
	return xhttp.SuccessResponse(c, payload)
}

func (h *Handler) History(c echo.Context) error {
	defer since("history", time.Now())

	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "history", verr)
	}
	pts, err := h.market.History(c.Request().Context(), req.ID, req.Vs, req.Days, req.Interval)
	return h.respond(c, "history", pts, err)
}

func (h *Handler) Global(c echo.Context) error {
	g, err := h.market.Global(c.Request().Context())
	return h.respond(c, "global", g, err)
}

func (h *Handler) Exchanges(c echo.Context) error {
	req := &models.ExchangesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "exchanges", verr)
	}
	ex, err := h.market.Exchanges(c.Request().Context(), req.Page, req.PerPage)
	return h.respond(c, "exchanges", ex, err)
}

func (h *Handler) Technicals(c echo.Context) error {
	defer since("technicals", time.Now())

	req := &models.TechnicalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "technicals", verr)
	}
	iv, err := parseInterval(req.Interval)
	if err != nil {
		return h.fail(c, "technicals", err)
	}

	tech, err := h.market.Technicals(c.Request().Context(), req.Symbol, iv, req.Limit)
	if err != nil {
		return h.fail(c, "technicals", err)
	}
	payload := marketPayload{Available: !tech.Synthetic, Result: tech}
	if tech.Synthetic {
		h.degraded("technicals")
		payload.Notice = "candle source unavailable; indicators computed on a synthetic series"
	}
	return xhttp.SuccessResponse(c, payload)
}

func (h *Handler) MacroSearch(c echo.Context) error {
	req := &models.MacroSearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "macro_search", verr)
	}
	res, err := h.market.SearchIndicators(c.Request().Context(), req.Query)
	return h.respond(c, "macro_search", res, err)
}

func (h *Handler) MacroSeries(c echo.Context) error {
	req := &models.MacroSeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "macro_series", verr)
	}
	if req.From > req.To {
		return h.fail(c, "macro_series", &models.RangeError{
			Field: "from", Value: float64(req.From), Min: 1960, Max: float64(req.To),
		})
	}
	s, err := h.market.IndicatorSeries(c.Request().Context(), strings.ToUpper(req.Country), req.Indicator, req.From, req.To)
	return h.respond(c, "macro_series", s, err)
}
