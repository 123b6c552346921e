package api

import (
	"errors"
	"net/http"
	"time"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/service/metrics"
	"CloudLab/internal/usecase"
	xhttp "CloudLab/pkg/http"
	"CloudLab/pkg/http/middleware"
	xlogger "CloudLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Options carries request-level defaults taken from configuration.
type Options struct {
	SOCRows        int
	SOCSeed        uint64
	MaxUploadBytes int64
	RateLimit      middleware.RateLimitConfig
}

// Handler serves the JSON API.
type Handler struct {
	logger    *xlogger.Logger
	advisor   *usecase.Advisor
	market    *usecase.MarketData
	portfolio *usecase.PortfolioUseCase
	soc       *usecase.SOCLab
	fraud     *usecase.FraudLab
	alerts    *usecase.AlertProcessor
	opts      Options
}

func NewHandler(
	logger *xlogger.Logger,
	advisor *usecase.Advisor,
	market *usecase.MarketData,
	portfolio *usecase.PortfolioUseCase,
	soc *usecase.SOCLab,
	fraud *usecase.FraudLab,
	alerts *usecase.AlertProcessor,
	opts Options,
) *Handler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	if opts.SOCRows <= 0 {
		opts.SOCRows = 800
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	return &Handler{
		logger:    logger,
		advisor:   advisor,
		market:    market,
		portfolio: portfolio,
		soc:       soc,
		fraud:     fraud,
		alerts:    alerts,
		opts:      opts,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")

	cloud := g.Group("/cloud")
	cloud.POST("/cost", h.Cost)
	cloud.GET("/architecture", h.Architecture)
	cloud.GET("/service-models", h.ServiceModels)
	cloud.POST("/recommend", h.Recommend)

	sec := g.Group("/security")
	sec.POST("/zerotrust", h.ZeroTrust)
	sec.GET("/soc", h.SOC)
	sec.GET("/alerts", h.Alerts)

	fin := g.Group("/fintech")
	fin.POST("/fraud", h.Fraud)
	fin.POST("/portfolio", h.Portfolio, middleware.RateLimit(h.opts.RateLimit))
	fin.POST("/revenue", h.Revenue)
	fin.POST("/projection", h.Projection)

	g.POST("/data/platform-fit", h.PlatformFit)

	mkt := g.Group("/market", middleware.RateLimit(h.opts.RateLimit))
	mkt.GET("/prices", h.Prices)
	mkt.GET("/candles", h.Candles)
	mkt.GET("/history", h.History)
	mkt.GET("/global", h.Global)
	mkt.GET("/exchanges", h.Exchanges)
	mkt.GET("/technicals", h.Technicals)
	mkt.GET("/macro/search", h.MacroSearch)
	mkt.GET("/macro/series", h.MacroSeries)
}

// marketPayload wraps data that depends on an upstream source. When the
// source is down the response is still 200 with Available false.
type marketPayload struct {
	Available bool        `json:"available"`
	Notice    string      `json:"notice,omitempty"`
	Result    interface{} `json:"result,omitempty"`
}

func (h *Handler) available(c echo.Context, result interface{}) error {
	return xhttp.SuccessResponse(c, marketPayload{Available: true, Result: result})
}

func (h *Handler) unavailable(c echo.Context, endpoint string, err error) error {
	h.degraded(endpoint)
	return xhttp.SuccessResponse(c, marketPayload{Available: false, Notice: err.Error()})
}

func (h *Handler) degraded(endpoint string) {
	metrics.Degraded.WithLabelValues(endpoint).Inc()
}

// badRequest answers a failed bind or validation.
func (h *Handler) badRequest(c echo.Context, endpoint string, verr interface{}) error {
	metrics.APIErrors.WithLabelValues(endpoint, "invalid").Inc()
	return xhttp.BadRequestResponse(c, verr)
}

// fail maps a usecase error to the response envelope. Unavailable upstream
// data is handled by the callers and never reaches here as a 5xx.
func (h *Handler) fail(c echo.Context, endpoint string, err error) error {
	var (
		catErr    *models.CategoryError
		rangeErr  *models.RangeError
		uploadErr *models.UploadError
		appErr    *xhttp.AppError
	)
	switch {
	case errors.As(err, &catErr):
		metrics.APIErrors.WithLabelValues(endpoint, "category").Inc()
		return xhttp.AppErrorResponse(c,
			xhttp.FieldError("ERR_UNKNOWN_CATEGORY", catErr.Kind, catErr.Error()).
				WithParam("value", catErr.Value))
	case errors.As(err, &rangeErr):
		metrics.APIErrors.WithLabelValues(endpoint, "range").Inc()
		return xhttp.AppErrorResponse(c,
			xhttp.FieldError("ERR_OUT_OF_RANGE", rangeErr.Field, rangeErr.Error()).
				WithParam("min", rangeErr.Min).
				WithParam("max", rangeErr.Max))
	case errors.As(err, &uploadErr):
		metrics.APIErrors.WithLabelValues(endpoint, "upload").Inc()
		ae := xhttp.FieldError("ERR_INVALID_UPLOAD", uploadErr.Column, uploadErr.Error())
		if uploadErr.Row > 0 {
			ae = ae.WithParam("row", uploadErr.Row)
		}
		return xhttp.AppErrorResponse(c, ae)
	case errors.As(err, &appErr):
		metrics.APIErrors.WithLabelValues(endpoint, "request").Inc()
		return xhttp.AppErrorResponse(c, appErr)
	}

	metrics.APIErrors.WithLabelValues(endpoint, "internal").Inc()
	h.logger.Error("api request failed",
		xlogger.String("endpoint", endpoint),
		xlogger.Error(err),
	)
	return xhttp.InternalServerErrorResponse(c)
}

func since(endpoint string, start time.Time) {
	metrics.ObserveSince(endpoint, start)
}

// payloadTooLarge is returned when an upload exceeds MaxUploadBytes.
func payloadTooLarge(limit int64) *xhttp.AppError {
	return xhttp.NewAppError("ERR_UPLOAD_TOO_LARGE", "file", "upload exceeds size limit", http.StatusRequestEntityTooLarge).
		WithParam("max_bytes", limit)
}
