package forecast

import (
	"math"

	"CloudLab/internal/domain/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scenario is a fixed annual growth rate.
type Scenario struct {
	Name string
	Rate float64
}

// Scenarios are the bear, base and bull paths.
var Scenarios = []Scenario{
	{Name: "bear", Rate: -0.10},
	{Name: "base", Rate: 0.10},
	{Name: "bull", Rate: 0.35},
}

const maxYears = 30

// ProjectPrices compounds current at each scenario rate for years 0..years.
func ProjectPrices(current float64, years int) (models.PriceProjection, error) {
	var out models.PriceProjection

	if err := models.CheckRange("current_price", current, math.SmallestNonzeroFloat64, math.MaxFloat64); err != nil {
		return out, err
	}
	if err := models.CheckRange("years", float64(years), 1, maxYears); err != nil {
		return out, err
	}

	out.CurrentPrice = current
	out.Years = years
	finals := make([]float64, 0, len(Scenarios))
	for _, s := range Scenarios {
		path := models.ScenarioPath{Name: s.Name, Rate: s.Rate, Prices: make([]models.YearPrice, years+1)}
		for y := 0; y <= years; y++ {
			path.Prices[y] = models.YearPrice{Year: y, Price: round2(current * math.Pow(1+s.Rate, float64(y)))}
		}
		finals = append(finals, path.Prices[years].Price)
		out.Scenarios = append(out.Scenarios, path)
	}

	out.Final = models.ProjectionSpread{
		Min:    floats.Min(finals),
		Max:    floats.Max(finals),
		Mean:   round2(stat.Mean(finals, nil)),
		StdDev: round2(stat.StdDev(finals, nil)),
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
