package models

import "time"

// ZeroTrustInputs are the signals of one access request.
type ZeroTrustInputs struct {
	DevicePosture     int     `json:"device_posture"`
	VPNSuspected      int     `json:"vpn_suspected"`
	GeoAnomaly        int     `json:"geo_anomaly"`
	RecentFailRate    float64 `json:"recent_fail_rate"`
	SegmentationDepth int     `json:"segmentation_depth"`
	RBACGranularity   int     `json:"rbac_granularity"`
}

type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionStepUp Decision = "step_up"
	DecisionBlock  Decision = "block"
)

type FactorContribution struct {
	Factor string  `json:"factor"`
	Points float64 `json:"points"`
}

type ZeroTrustAssessment struct {
	Score         float64              `json:"score"`
	Raw           float64              `json:"raw"`
	Decision      Decision             `json:"decision"`
	Contributions []FactorContribution `json:"contributions"`
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
)

// AuthLogRow is one synthetic login event.
type AuthLogRow struct {
	Hour       int     `json:"hour"`
	Geo        string  `json:"geo"`
	DeviceRisk int     `json:"device_risk"`
	VPN        int     `json:"vpn"`
	Outcome    Outcome `json:"outcome"`
}

// LabeledAuthLog is an AuthLogRow with its isolation-forest verdict.
type LabeledAuthLog struct {
	AuthLogRow
	Score   float64 `json:"score"`
	Anomaly bool    `json:"anomaly"`
}

type GeoOutcomeCount struct {
	Geo     string  `json:"geo"`
	Outcome Outcome `json:"outcome"`
	Count   int     `json:"count"`
}

type HourOutcomeCount struct {
	Hour    int `json:"hour"`
	Success int `json:"success"`
	Fail    int `json:"fail"`
}

// SOCSummary aggregates one labelled log set.
type SOCSummary struct {
	Rows          int                `json:"rows"`
	AnomalyCount  int                `json:"anomaly_count"`
	ByGeoOutcome  []GeoOutcomeCount  `json:"by_geo_outcome"`
	ByHourOutcome []HourOutcomeCount `json:"by_hour_outcome"`
}

// SOCReport is the result of one anomaly hunt.
type SOCReport struct {
	RunID           string           `json:"run_id"`
	Seed            uint64           `json:"seed"`
	Threshold       float64          `json:"threshold"`
	Summary         SOCSummary       `json:"summary"`
	Anomalies       []LabeledAuthLog `json:"anomalies"`
	AlertsForwarded int              `json:"alerts_forwarded"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
