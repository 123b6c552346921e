// Package coingecko reads spot prices, history and market stats from the
// public CoinGecko REST API.
package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/service"
	xhttp "CloudLab/pkg/http"
	"CloudLab/pkg/util"
)

var _ service.CryptoMarket = (*Client)(nil)

// Client is a thin wrapper: one GET per call, status check, reshaping.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New returns a client for baseURL, e.g. https://api.coingecko.com/api/v3.
func New(baseURL string, opts ...xhttp.ClientOption) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(opts...),
	}
}

// SpotPrices returns {id: {vs: price}} for ids.
func (c *Client) SpotPrices(ctx context.Context, ids []string, vs string) (models.SpotPrices, error) {
	var out models.SpotPrices
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL: c.baseURL + "/simple/price",
		QueryParams: map[string][]string{
			"ids":           {strings.Join(ids, ",")},
			"vs_currencies": {vs},
		},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("coingecko simple price: %w", err)
	}
	return out, nil
}

type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// History returns the price series of id over the last days. interval may
// be empty to let the API pick the granularity.
func (c *Client) History(ctx context.Context, id, vs string, days int, interval string) ([]models.PricePoint, error) {
	q := map[string][]string{
		"vs_currency": {vs},
		"days":        {strconv.Itoa(days)},
	}
	if interval != "" {
		q["interval"] = []string{interval}
	}

	var chart marketChart
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL:         c.baseURL + "/coins/" + url.PathEscape(id) + "/market_chart",
		QueryParams: q,
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("coingecko market chart %s: %w", id, err)
	}

	out := make([]models.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		out = append(out, models.PricePoint{Time: util.FromUnixMillis(int64(p[0])), Price: p[1]})
	}
	return out, nil
}

type globalResponse struct {
	Data struct {
		ActiveCryptocurrencies int                `json:"active_cryptocurrencies"`
		Markets                int                `json:"markets"`
		TotalMarketCap         map[string]float64 `json:"total_market_cap"`
		TotalVolume            map[string]float64 `json:"total_volume"`
		MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
		MarketCapChange24hUSD  float64            `json:"market_cap_change_percentage_24h_usd"`
		UpdatedAt              int64              `json:"updated_at"`
	} `json:"data"`
}

// Global returns aggregate market statistics.
func (c *Client) Global(ctx context.Context) (models.GlobalStats, error) {
	var resp globalResponse
	if err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{URL: c.baseURL + "/global"}, &resp); err != nil {
		return models.GlobalStats{}, fmt.Errorf("coingecko global: %w", err)
	}

	d := resp.Data
	return models.GlobalStats{
		ActiveCryptocurrencies: d.ActiveCryptocurrencies,
		Markets:                d.Markets,
		TotalMarketCap:         d.TotalMarketCap,
		TotalVolume:            d.TotalVolume,
		MarketCapPercentage:    d.MarketCapPercentage,
		MarketCapChange24hPct:  d.MarketCapChange24hUSD,
		UpdatedAt:              util.FromUnixMillis(d.UpdatedAt * 1000),
	}, nil
}

type exchangeRow struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Country           *string `json:"country"`
	YearEstablished   *int    `json:"year_established"`
	TrustScore        *int    `json:"trust_score"`
	TrustScoreRank    *int    `json:"trust_score_rank"`
	TradeVolume24hBTC float64 `json:"trade_volume_24h_btc"`
	URL               string  `json:"url"`
}

// Exchanges returns one page of exchanges ordered by 24h BTC volume.
func (c *Client) Exchanges(ctx context.Context, page, perPage int) ([]models.Exchange, error) {
	var rows []exchangeRow
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL: c.baseURL + "/exchanges",
		QueryParams: map[string][]string{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(perPage)},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("coingecko exchanges: %w", err)
	}

	out := make([]models.Exchange, 0, len(rows))
	for _, r := range rows {
		ex := models.Exchange{
			ID:                r.ID,
			Name:              r.Name,
			TradeVolume24hBTC: r.TradeVolume24hBTC,
			URL:               r.URL,
		}
		if r.Country != nil {
			ex.Country = *r.Country
		}
		if r.YearEstablished != nil {
			ex.YearEstablished = *r.YearEstablished
		}
		if r.TrustScore != nil {
			ex.TrustScore = *r.TrustScore
		}
		if r.TrustScoreRank != nil {
			ex.TrustScoreRank = *r.TrustScoreRank
		}
		out = append(out, ex)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TradeVolume24hBTC > out[j].TradeVolume24hBTC })
	return out, nil
}
