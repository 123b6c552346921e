package models

// Request DTOs for the HTTP API. Categorical fields stay strings here and are
// parsed into enumerations by the handlers.

type CostRequest struct {
	Model           string   `json:"model" validate:"required"`
	Industry        string   `json:"industry" default:"technology"`
	CompanySize     string   `json:"company_size" default:"smb"`
	IngestGB        float64  `json:"ingest_gb" validate:"gte=0,lte=100000"`
	Users           int      `json:"users" validate:"gte=0,lte=1000000"`
	Regulations     []string `json:"regulations"`
	ComplianceCount *int     `json:"compliance_count" validate:"omitempty,gte=0,lte=50"`
	Isolation       string   `json:"isolation" default:"standard"`
}

type ArchitectureRequest struct {
	Model string `query:"model" default:"hybrid"`
}

type RecommendRequest struct {
	Model       string   `json:"model" validate:"required"`
	Sensitivity string   `json:"sensitivity" validate:"required"`
	Industry    string   `json:"industry" validate:"required"`
	Regulations []string `json:"regulations"`
}

type ZeroTrustRequest struct {
	DevicePosture     int     `json:"device_posture" validate:"gte=0,lte=2"`
	VPNSuspected      int     `json:"vpn_suspected" validate:"gte=0,lte=1"`
	GeoAnomaly        int     `json:"geo_anomaly" validate:"gte=0,lte=1"`
	RecentFailRate    float64 `json:"recent_fail_rate" validate:"gte=0,lte=1"`
	SegmentationDepth int     `json:"segmentation_depth" validate:"gte=0,lte=2"`
	RBACGranularity   int     `json:"rbac_granularity" validate:"gte=0,lte=2"`
}

type SOCRequest struct {
	N    int    `query:"n" validate:"omitempty,gte=10,lte=20000"`
	Seed string `query:"seed" validate:"omitempty,number"`
}

type AlertsRequest struct {
	Limit int    `query:"limit" default:"50" validate:"gte=1,lte=500"`
	Geo   string `query:"geo" validate:"omitempty,len=2,alpha"`
}

type PlatformFitRequest struct {
	Workload  string `json:"workload" validate:"required"`
	DataType  string `json:"data_type" validate:"required"`
	TeamSkill string `json:"team_skill" validate:"required"`
	Budget    string `json:"budget" default:"flexible"`
}

type PricesRequest struct {
	IDs string `query:"ids" default:"bitcoin,ethereum,solana"`
	Vs  string `query:"vs" default:"usd" validate:"alpha,min=3,max=5"`
}

type CandlesRequest struct {
	Symbol   string `query:"symbol" default:"BTCUSDT" validate:"alphanum,max=20"`
	Interval string `query:"interval" default:"1m"`
	Limit    int    `query:"limit" default:"60" validate:"gte=1,lte=1000"`
}

type HistoryRequest struct {
	ID       string `query:"id" default:"bitcoin" validate:"max=64"`
	Vs       string `query:"vs" default:"usd" validate:"alpha,min=3,max=5"`
	Days     int    `query:"days" default:"30" validate:"gte=1,lte=3650"`
	Interval string `query:"interval" validate:"omitempty,oneof=daily"`
}

type ExchangesRequest struct {
	Page    int `query:"page" default:"1" validate:"gte=1,lte=100"`
	PerPage int `query:"per_page" default:"20" validate:"gte=1,lte=250"`
}

type TechnicalsRequest struct {
	Symbol   string `query:"symbol" default:"BTCUSDT" validate:"alphanum,max=20"`
	Interval string `query:"interval" default:"1h"`
	Limit    int    `query:"limit" default:"200" validate:"gte=40,lte=1000"`
}

type MacroSearchRequest struct {
	Query string `query:"q" validate:"required,min=2,max=64"`
}

type MacroSeriesRequest struct {
	Country   string `query:"country" default:"SGP" validate:"alpha,min=2,max=3"`
	Indicator string `query:"indicator" default:"NY.GDP.MKTP.CD" validate:"max=64"`
	From      int    `query:"from" default:"2000" validate:"gte=1960,lte=2100"`
	To        int    `query:"to" default:"2024" validate:"gte=1960,lte=2100"`
}

type PortfolioRequest struct {
	Tokens        []string           `json:"tokens" validate:"required,min=1,max=25,dive,required"`
	Allocations   map[string]float64 `json:"allocations" validate:"required,dive,gte=0,lte=100"`
	PortfolioSize float64            `json:"portfolio_size" validate:"gt=0"`
	Vs            string             `json:"vs" default:"usd" validate:"alpha,min=3,max=5"`
}

type RevenueRequest struct {
	TxPerDay  float64 `json:"tx_per_day" validate:"gte=0"`
	AvgTicket float64 `json:"avg_ticket" validate:"gte=0"`
	FeePct    float64 `json:"fee_pct" validate:"gte=0,lte=100"`
	Days      int     `json:"days" default:"30" validate:"gte=1,lte=3650"`
}

type ProjectionRequest struct {
	CurrentPrice float64 `json:"current_price" validate:"gt=0"`
	Years        int     `json:"years" default:"5" validate:"gte=1,lte=30"`
}
