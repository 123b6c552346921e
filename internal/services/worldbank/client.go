// Package worldbank searches and reads World Bank development indicators.
package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/service"
	xhttp "CloudLab/pkg/http"
)

var _ service.MacroProvider = (*Client)(nil)

const (
	// wdiSource is the World Development Indicators catalogue.
	wdiSource      = "2"
	catalogPerPage = 2000
	seriesPerPage  = 500
	maxMatches     = 50
)

// Client reads the v2 JSON API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New returns a client for baseURL, e.g. https://api.worldbank.org/v2.
func New(baseURL string, opts ...xhttp.ClientOption) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(opts...),
	}
}

type apiMessage struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type pageHeader struct {
	Page    int          `json:"page"`
	Pages   int          `json:"pages"`
	Total   int          `json:"total"`
	Message []apiMessage `json:"message"`
}

type indicatorRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SourceNote string `json:"sourceNote"`
	Source     struct {
		Value string `json:"value"`
	} `json:"source"`
}

type observationRow struct {
	Indicator struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"indicator"`
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// SearchIndicators lists WDI indicators whose id or name contains query,
// case-insensitively. At most 50 matches are returned.
func (c *Client) SearchIndicators(ctx context.Context, query string) ([]models.Indicator, error) {
	var rows []indicatorRow
	err := c.get(ctx, "/source/"+wdiSource+"/indicator", map[string][]string{
		"per_page": {strconv.Itoa(catalogPerPage)},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("worldbank indicators: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Indicator
	for _, r := range rows {
		if q != "" && !strings.Contains(strings.ToLower(r.Name), q) && !strings.Contains(strings.ToLower(r.ID), q) {
			continue
		}
		out = append(out, models.Indicator{
			ID:         r.ID,
			Name:       r.Name,
			Source:     r.Source.Value,
			SourceNote: r.SourceNote,
		})
		if len(out) == maxMatches {
			break
		}
	}
	return out, nil
}

// IndicatorSeries returns yearly observations between fromYear and toYear,
// oldest first. Years without data keep a nil value.
func (c *Client) IndicatorSeries(ctx context.Context, country, indicator string, fromYear, toYear int) (models.IndicatorSeries, error) {
	out := models.IndicatorSeries{
		Country:   strings.ToUpper(country),
		Indicator: indicator,
	}

	var rows []observationRow
	path := "/country/" + url.PathEscape(out.Country) + "/indicator/" + url.PathEscape(indicator)
	err := c.get(ctx, path, map[string][]string{
		"date":     {fmt.Sprintf("%d:%d", fromYear, toYear)},
		"per_page": {strconv.Itoa(seriesPerPage)},
	}, &rows)
	if err != nil {
		return out, fmt.Errorf("worldbank series %s/%s: %w", country, indicator, err)
	}

	for _, r := range rows {
		year, err := strconv.Atoi(r.Date)
		if err != nil {
			continue
		}
		if out.CountryName == "" {
			out.CountryName = r.Country.Value
			out.IndicatorName = r.Indicator.Value
		}
		out.Points = append(out.Points, models.Observation{Year: year, Value: r.Value})
	}
	sort.Slice(out.Points, func(i, j int) bool { return out.Points[i].Year < out.Points[j].Year })
	return out, nil
}

// get decodes the [header, rows] envelope. The API reports bad parameters
// with a 200 and a message header, which becomes an error here.
func (c *Client) get(ctx context.Context, path string, q map[string][]string, rows interface{}) error {
	q["format"] = []string{"json"}

	var envelope []json.RawMessage
	if err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{URL: c.baseURL + path, QueryParams: q}, &envelope); err != nil {
		return err
	}
	if len(envelope) == 0 {
		return errors.New("empty response")
	}

	var header pageHeader
	if err := json.Unmarshal(envelope[0], &header); err != nil {
		return fmt.Errorf("decode header: %w", err)
	}
	if len(header.Message) > 0 {
		m := header.Message[0]
		return fmt.Errorf("api message %s: %s", m.Key, m.Value)
	}
	if len(envelope) < 2 || string(envelope[1]) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope[1], rows); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}
