package models

import "time"

// SpotPrices maps asset id to quote currency to price.
type SpotPrices map[string]map[string]float64

// Price returns the quote for id in vs and whether it was present.
func (p SpotPrices) Price(id, vs string) (float64, bool) {
	q, ok := p[id]
	if !ok {
		return 0, false
	}
	v, ok := q[vs]
	return v, ok
}

// Candle is one OHLCV bar.
type Candle struct {
	OpenTime time.Time `json:"t" msgpack:"t"`
	Open     float64   `json:"o" msgpack:"o"`
	High     float64   `json:"h" msgpack:"h"`
	Low      float64   `json:"l" msgpack:"l"`
	Close    float64   `json:"c" msgpack:"c"`
	Volume   float64   `json:"v" msgpack:"v"`
}

type PricePoint struct {
	Time  time.Time `json:"time" msgpack:"time"`
	Price float64   `json:"price" msgpack:"price"`
}

type GlobalStats struct {
	ActiveCryptocurrencies int                `json:"active_cryptocurrencies"`
	Markets                int                `json:"markets"`
	TotalMarketCap         map[string]float64 `json:"total_market_cap"`
	TotalVolume            map[string]float64 `json:"total_volume"`
	MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
	MarketCapChange24hPct  float64            `json:"market_cap_change_24h_pct"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

type Exchange struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Country           string  `json:"country,omitempty"`
	YearEstablished   int     `json:"year_established,omitempty"`
	TrustScore        int     `json:"trust_score"`
	TrustScoreRank    int     `json:"trust_score_rank"`
	TradeVolume24hBTC float64 `json:"trade_volume_24h_btc"`
	URL               string  `json:"url,omitempty"`
}

// Indicator is a macro-economic series descriptor.
type Indicator struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	SourceNote string `json:"source_note,omitempty"`
}

// Observation is one yearly value; Value is nil when the source reports no data.
type Observation struct {
	Year  int      `json:"year"`
	Value *float64 `json:"value"`
}

type IndicatorSeries struct {
	Country       string        `json:"country"`
	CountryName   string        `json:"country_name"`
	Indicator     string        `json:"indicator"`
	IndicatorName string        `json:"indicator_name"`
	Points        []Observation `json:"points"`
}

// SeriesPoint is one value of a derived indicator, aligned to a candle.
type SeriesPoint struct {
	Time  time.Time `json:"t"`
	Value float64   `json:"v"`
}

// Technicals holds indicator series computed over a candle window. Each
// series starts after its warm-up period.
type Technicals struct {
	Symbol          string        `json:"symbol"`
	Interval        string        `json:"interval"`
	LastClose       float64       `json:"last_close"`
	SMA10           []SeriesPoint `json:"sma10"`
	EMA20           []SeriesPoint `json:"ema20"`
	RSI14           []SeriesPoint `json:"rsi14"`
	BollingerUpper  []SeriesPoint `json:"bb_upper"`
	BollingerMiddle []SeriesPoint `json:"bb_middle"`
	BollingerLower  []SeriesPoint `json:"bb_lower"`
	RealizedVol     float64       `json:"realized_vol"`
	Synthetic       bool          `json:"synthetic"`
}

// CandleSeries is a candle window as served to clients. Synthetic series
// stand in when the upstream is unavailable.
type CandleSeries struct {
	Symbol    string   `json:"symbol" msgpack:"symbol"`
	Interval  string   `json:"interval" msgpack:"interval"`
	Candles   []Candle `json:"candles" msgpack:"candles"`
	Synthetic bool     `json:"synthetic" msgpack:"synthetic"`
	Notice    string   `json:"notice,omitempty" msgpack:"-"`
}
