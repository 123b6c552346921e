package soc

import (
	"fmt"
	"sort"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/services/analytics"
)

// DetectOptions tune the isolation forest behind DetectAnomalies.
type DetectOptions struct {
	Trees         int
	SampleSize    int
	Contamination float64
	Seed          uint64
}

// DefaultDetectOptions mirrors the lab defaults: 120 trees, subsample 256,
// contamination 0.06, seed 42.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{Trees: 120, SampleSize: 256, Contamination: 0.06, Seed: 42}
}

// DetectAnomalies fits a fresh forest on rows and flags those scoring above
// the (1-contamination) quantile. The threshold is returned alongside.
func DetectAnomalies(rows []models.AuthLogRow, opts DetectOptions) ([]models.LabeledAuthLog, float64, error) {
	X := Encode(rows)

	forest := analytics.NewIsolationForest(
		analytics.WithTrees(opts.Trees),
		analytics.WithSampleSize(opts.SampleSize),
		analytics.WithContamination(opts.Contamination),
		analytics.WithSeed(opts.Seed),
	)
	if err := forest.Fit(X); err != nil {
		return nil, 0, fmt.Errorf("fit auth logs: %w", err)
	}
	flags, scores, err := forest.Predict(X)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.LabeledAuthLog, len(rows))
	for i, r := range rows {
		out[i] = models.LabeledAuthLog{AuthLogRow: r, Score: scores[i], Anomaly: flags[i]}
	}
	return out, forest.Threshold(), nil
}

// Encode maps rows to hour, geo code, device risk, VPN and failure columns.
// Geo codes index the sorted unique geos of rows.
func Encode(rows []models.AuthLogRow) [][]float64 {
	geoCode := encodeGeos(rows)
	X := make([][]float64, len(rows))
	for i, r := range rows {
		var fail float64
		if r.Outcome == models.OutcomeFail {
			fail = 1
		}
		X[i] = []float64{
			float64(r.Hour),
			float64(geoCode[r.Geo]),
			float64(r.DeviceRisk),
			float64(r.VPN),
			fail,
		}
	}
	return X
}

func encodeGeos(rows []models.AuthLogRow) map[string]int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[r.Geo] = struct{}{}
	}
	geos := make([]string, 0, len(seen))
	for g := range seen {
		geos = append(geos, g)
	}
	sort.Strings(geos)

	codes := make(map[string]int, len(geos))
	for i, g := range geos {
		codes[g] = i
	}
	return codes
}
