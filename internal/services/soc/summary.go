package soc

import (
	"sort"

	"CloudLab/internal/domain/models"
)

// Summarize counts anomalies and tallies outcomes by geo and by hour.
// Every hour 0..23 appears in the hourly table.
func Summarize(rows []models.LabeledAuthLog) models.SOCSummary {
	s := models.SOCSummary{
		Rows:          len(rows),
		ByHourOutcome: make([]models.HourOutcomeCount, 24),
	}
	for h := range s.ByHourOutcome {
		s.ByHourOutcome[h].Hour = h
	}

	type key struct {
		geo     string
		outcome models.Outcome
	}
	byGeo := make(map[key]int)

	for _, r := range rows {
		if r.Anomaly {
			s.AnomalyCount++
		}
		byGeo[key{r.Geo, r.Outcome}]++
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		if r.Outcome == models.OutcomeFail {
			s.ByHourOutcome[r.Hour].Fail++
		} else {
			s.ByHourOutcome[r.Hour].Success++
		}
	}

	s.ByGeoOutcome = make([]models.GeoOutcomeCount, 0, len(byGeo))
	for k, c := range byGeo {
		s.ByGeoOutcome = append(s.ByGeoOutcome, models.GeoOutcomeCount{Geo: k.geo, Outcome: k.outcome, Count: c})
	}
	sort.Slice(s.ByGeoOutcome, func(i, j int) bool {
		a, b := s.ByGeoOutcome[i], s.ByGeoOutcome[j]
		if a.Geo != b.Geo {
			return a.Geo < b.Geo
		}
		return a.Outcome > b.Outcome
	})
	return s
}

// Anomalies returns the flagged rows, highest score first.
func Anomalies(rows []models.LabeledAuthLog) []models.LabeledAuthLog {
	var out []models.LabeledAuthLog
	for _, r := range rows {
		if r.Anomaly {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
