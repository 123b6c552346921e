// Package binance reads OHLCV klines from the public Binance REST API.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/service"
	xhttp "CloudLab/pkg/http"
	"CloudLab/pkg/util"
)

var _ service.CandleProvider = (*Client)(nil)

// Client fetches klines.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New returns a client for baseURL, e.g. https://api.binance.com/api/v3.
func New(baseURL string, opts ...xhttp.ClientOption) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(opts...),
	}
}

// Candles returns up to limit bars for symbol, oldest first. Of the twelve
// fields of a kline only open time and o/h/l/c/v are kept.
func (c *Client) Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	var rows [][]json.RawMessage
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		URL: c.baseURL + "/klines",
		QueryParams: map[string][]string{
			"symbol":   {strings.ToUpper(symbol)},
			"interval": {interval},
			"limit":    {strconv.Itoa(limit)},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s: %w", symbol, err)
	}

	out := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		candle, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("binance kline %d: %w", i, err)
		}
		out = append(out, candle)
	}
	return out, nil
}

func parseKline(row []json.RawMessage) (models.Candle, error) {
	var k models.Candle
	if len(row) < 6 {
		return k, fmt.Errorf("expected at least 6 fields, got %d", len(row))
	}

	var openTime int64
	if err := json.Unmarshal(row[0], &openTime); err != nil {
		return k, fmt.Errorf("open time: %w", err)
	}
	k.OpenTime = util.FromUnixMillis(openTime)

	dst := []*float64{&k.Open, &k.High, &k.Low, &k.Close, &k.Volume}
	for i, p := range dst {
		v, err := decimalField(row[i+1])
		if err != nil {
			return k, fmt.Errorf("field %d: %w", i+1, err)
		}
		*p = v
	}
	return k, nil
}

// decimalField accepts Binance's quoted decimals as well as bare numbers.
func decimalField(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}
