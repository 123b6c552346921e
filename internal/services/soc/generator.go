// Package soc generates synthetic authentication logs and labels outliers.
package soc

import (
	"math/rand/v2"

	"CloudLab/internal/domain/models"
)

// Geos are the country codes synthetic logins come from.
var Geos = []string{"SG", "US", "DE", "CN", "GB", "IN", "BR", "AU"}

const (
	baseFailRate     = 0.12
	attackerRate     = 0.05
	attackerFailRate = 0.7
)

var attackerHours = []int{2, 3, 4}

// GenerateAuthLogs returns n login events. The same n and seed always give
// the same rows; each call owns its generator.
func GenerateAuthLogs(n int, seed uint64) []models.AuthLogRow {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	rows := make([]models.AuthLogRow, n)
	for i := range rows {
		failP := baseFailRate
		row := models.AuthLogRow{
			Geo:        Geos[rng.IntN(len(Geos))],
			DeviceRisk: rng.IntN(3),
			Hour:       rng.IntN(24),
		}
		if rng.IntN(4) == 3 {
			row.VPN = 1
		}
		if rng.Float64() < attackerRate {
			row.DeviceRisk = 2
			row.VPN = 1
			row.Hour = attackerHours[rng.IntN(len(attackerHours))]
			failP = attackerFailRate
		}
		row.Outcome = models.OutcomeSuccess
		if rng.Float64() < failP {
			row.Outcome = models.OutcomeFail
		}
		rows[i] = row
	}
	return rows
}
