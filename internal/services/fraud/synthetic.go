package fraud

import (
	"math"
	"math/rand/v2"

	"CloudLab/internal/domain/models"
)

// Categories are the merchant categories of synthetic transactions.
var Categories = []string{"grocery", "restaurants", "fuel", "travel", "electronics", "online_retail"}

var fraudCategories = []string{"electronics", "online_retail", "travel"}

const syntheticFraudRate = 0.03

// GenerateTransactions returns n labelled transactions. Legitimate amounts
// are log-normal around 33; fraud rows are large card-not-present purchases at night.
func GenerateTransactions(n int, seed uint64) []models.Transaction {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	out := make([]models.Transaction, n)
	for i := range out {
		isFraud := rng.Float64() < syntheticFraudRate
		tx := models.Transaction{
			Amount:           round2(math.Exp(3.5 + 0.8*rng.NormFloat64())),
			Hour:             rng.IntN(24),
			MerchantCategory: Categories[rng.IntN(len(Categories))],
			CardPresent:      rng.Float64() < 0.7,
		}
		if isFraud {
			tx.Amount = round2(tx.Amount * (5 + 10*rng.Float64()))
			tx.Hour = rng.IntN(6)
			tx.MerchantCategory = fraudCategories[rng.IntN(len(fraudCategories))]
			tx.CardPresent = false
		}
		tx.IsFraud = &isFraud
		out[i] = tx
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
