package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"CloudLab/internal/domain/models"
	xhttp "CloudLab/pkg/http"

	"github.com/labstack/echo/v4"
)

// Fraud scores the multipart "file" upload, or synthetic data when the
// request carries no file.
func (h *Handler) Fraud(c echo.Context) error {
	defer since("fraud", time.Now())

	r := c.Request()
	r.Body = http.MaxBytesReader(c.Response(), r.Body, h.opts.MaxUploadBytes)

	var src io.Reader
	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return h.fail(c, "fraud", err)
		}
		defer f.Close()
		src = f
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return h.fail(c, "fraud", payloadTooLarge(h.opts.MaxUploadBytes))
		}
		return h.fail(c, "fraud", &models.UploadError{Err: err})
	}

	rep, err := h.fraud.Analyze(r.Context(), src)
	if err != nil {
		return h.fail(c, "fraud", err)
	}
	return xhttp.SuccessResponse(c, rep)
}

func (h *Handler) Portfolio(c echo.Context) error {
	req := &models.PortfolioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "portfolio", verr)
	}

	out, err := h.portfolio.Allocate(c.Request().Context(), models.AllocationInput{
		Tokens:        req.Tokens,
		Allocations:   req.Allocations,
		PortfolioSize: req.PortfolioSize,
		VsCurrency:    req.Vs,
	})
	if err != nil {
		return h.fail(c, "portfolio", err)
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *Handler) Revenue(c echo.Context) error {
	req := &models.RevenueRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "revenue", verr)
	}
	est, err := h.advisor.Revenue(models.RevenueInput{
		TxPerDay:  req.TxPerDay,
		AvgTicket: req.AvgTicket,
		FeePct:    req.FeePct,
		Days:      req.Days,
	})
	if err != nil {
		return h.fail(c, "revenue", err)
	}
	return xhttp.SuccessResponse(c, est)
}

func (h *Handler) Projection(c echo.Context) error {
	req := &models.ProjectionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "projection", verr)
	}
	p, err := h.advisor.Projection(req.CurrentPrice, req.Years)
	if err != nil {
		return h.fail(c, "projection", err)
	}
	return xhttp.SuccessResponse(c, p)
}
