package models

import "github.com/shopspring/decimal"

// AllocationInput maps tokens to percentage weights of a portfolio.
type AllocationInput struct {
	Tokens        []string
	Allocations   map[string]float64
	PortfolioSize float64
	VsCurrency    string
}

type AssetAllocation struct {
	Token   string           `json:"token"`
	Percent float64          `json:"percent"`
	Value   decimal.Decimal  `json:"value"`
	Price   *float64         `json:"price,omitempty"`
	Units   *decimal.Decimal `json:"units,omitempty"`
	Notice  string           `json:"notice,omitempty"`
}

type PortfolioAllocation struct {
	VsCurrency     string            `json:"vs_currency"`
	PortfolioSize  decimal.Decimal   `json:"portfolio_size"`
	Assets         []AssetAllocation `json:"assets"`
	TotalAllocated decimal.Decimal   `json:"total_allocated"`
	PercentSum     float64           `json:"percent_sum"`
	Warning        string            `json:"warning,omitempty"`
	PricesNotice   string            `json:"prices_notice,omitempty"`
}

type RevenueInput struct {
	TxPerDay  float64
	AvgTicket float64
	FeePct    float64
	Days      int
}

type RevenueEstimate struct {
	FeePerTx   decimal.Decimal `json:"fee_per_tx"`
	Daily      decimal.Decimal `json:"daily"`
	Period     decimal.Decimal `json:"period"`
	Days       int             `json:"days"`
	Monthly    decimal.Decimal `json:"monthly"`
	Annualized decimal.Decimal `json:"annualized"`
}

type YearPrice struct {
	Year  int     `json:"year"`
	Price float64 `json:"price"`
}

type ScenarioPath struct {
	Name   string      `json:"name"`
	Rate   float64     `json:"rate"`
	Prices []YearPrice `json:"prices"`
}

type ProjectionSpread struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

type PriceProjection struct {
	CurrentPrice float64          `json:"current_price"`
	Years        int              `json:"years"`
	Scenarios    []ScenarioPath   `json:"scenarios"`
	Final        ProjectionSpread `json:"final"`
}

// Transaction is one card payment of the fraud lab. IsFraud is nil when the
// data set carries no label column.
type Transaction struct {
	Amount           float64 `json:"amount"`
	Hour             int     `json:"hour"`
	MerchantCategory string  `json:"merchant_category"`
	CardPresent      bool    `json:"card_present"`
	IsFraud          *bool   `json:"is_fraud,omitempty"`
}

type ScoredTransaction struct {
	Transaction
	Score   float64 `json:"score"`
	Anomaly bool    `json:"anomaly"`
}

type ConfusionMatrix struct {
	TruePositive  int `json:"tp"`
	FalsePositive int `json:"fp"`
	TrueNegative  int `json:"tn"`
	FalseNegative int `json:"fn"`
}

// SupervisedMetrics are only present when every row carries a label.
type SupervisedMetrics struct {
	Confusion ConfusionMatrix `json:"confusion"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	FraudRate float64         `json:"fraud_rate"`
}

type FraudReport struct {
	Source       string              `json:"source"`
	Notice       string              `json:"notice,omitempty"`
	Rows         int                 `json:"rows"`
	Labeled      bool                `json:"labeled"`
	AnomalyCount int                 `json:"anomaly_count"`
	AnomalyRate  float64             `json:"anomaly_rate"`
	Threshold    float64             `json:"threshold"`
	ScoreP50     float64             `json:"score_p50"`
	ScoreP95     float64             `json:"score_p95"`
	Supervised   *SupervisedMetrics  `json:"supervised,omitempty"`
	TopAnomalies []ScoredTransaction `json:"top_anomalies"`
	ByCategory   map[string]int      `json:"anomalies_by_category"`
}
