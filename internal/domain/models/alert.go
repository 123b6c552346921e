package models

import "time"

// Alert is a flagged login event handed to the alert sink.
type Alert struct {
	ID         string    `json:"id"`
	RunID      string    `json:"run_id"`
	Geo        string    `json:"geo"`
	Hour       int       `json:"hour"`
	DeviceRisk int       `json:"device_risk"`
	VPN        int       `json:"vpn"`
	Outcome    Outcome   `json:"outcome"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}
