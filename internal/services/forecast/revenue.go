// Package forecast holds the closed-form fintech calculators.
package forecast

import (
	"CloudLab/internal/domain/models"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	daysPerMonth  = decimal.NewFromInt(30)
	daysPerYear   = decimal.NewFromInt(365)
	maxPeriodDays = 3650.0
)

// TransactionFeeRevenue projects fee income from a transaction volume:
// fee per tx = ticket x fee%, daily = volume x fee per tx.
func TransactionFeeRevenue(in models.RevenueInput) (models.RevenueEstimate, error) {
	var out models.RevenueEstimate

	if err := models.CheckRange("tx_per_day", in.TxPerDay, 0, 1e9); err != nil {
		return out, err
	}
	if err := models.CheckRange("avg_ticket", in.AvgTicket, 0, 1e9); err != nil {
		return out, err
	}
	if err := models.CheckRange("fee_pct", in.FeePct, 0, 100); err != nil {
		return out, err
	}
	if err := models.CheckRange("days", float64(in.Days), 1, maxPeriodDays); err != nil {
		return out, err
	}

	fee := decimal.NewFromFloat(in.AvgTicket).Mul(decimal.NewFromFloat(in.FeePct)).Div(hundred)
	daily := decimal.NewFromFloat(in.TxPerDay).Mul(fee)

	out.FeePerTx = fee.Round(4)
	out.Daily = daily.Round(2)
	out.Days = in.Days
	out.Period = daily.Mul(decimal.NewFromInt(int64(in.Days))).Round(2)
	out.Monthly = daily.Mul(daysPerMonth).Round(2)
	out.Annualized = daily.Mul(daysPerYear).Round(2)
	return out, nil
}
