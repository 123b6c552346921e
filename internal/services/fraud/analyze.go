package fraud

import (
	"fmt"
	"sort"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/services/analytics"

	"gonum.org/v1/gonum/stat"
)

// AnalyzeOptions tune the outlier model and report size.
type AnalyzeOptions struct {
	Trees         int
	SampleSize    int
	Contamination float64
	Seed          uint64
	TopN          int
}

// DefaultAnalyzeOptions matches the SOC lab forest settings.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{Trees: 120, SampleSize: 256, Contamination: 0.06, Seed: 42, TopN: 10}
}

// Analyze scores txs with an isolation forest over amount, hour, encoded
// category and card presence. Supervised metrics are added only when every
// row is labelled.
func Analyze(txs []models.Transaction, opts AnalyzeOptions) (models.FraudReport, error) {
	var rep models.FraudReport

	forest := analytics.NewIsolationForest(
		analytics.WithTrees(opts.Trees),
		analytics.WithSampleSize(opts.SampleSize),
		analytics.WithContamination(opts.Contamination),
		analytics.WithSeed(opts.Seed),
	)
	X := encode(txs)
	if err := forest.Fit(X); err != nil {
		return rep, fmt.Errorf("fit transactions: %w", err)
	}
	flags, scores, err := forest.Predict(X)
	if err != nil {
		return rep, err
	}

	rep.Rows = len(txs)
	rep.Threshold = forest.Threshold()
	rep.ByCategory = make(map[string]int)

	scored := make([]models.ScoredTransaction, len(txs))
	for i, tx := range txs {
		scored[i] = models.ScoredTransaction{Transaction: tx, Score: scores[i], Anomaly: flags[i]}
		if flags[i] {
			rep.AnomalyCount++
			rep.ByCategory[tx.MerchantCategory]++
		}
	}
	rep.AnomalyRate = float64(rep.AnomalyCount) / float64(rep.Rows)

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	rep.ScoreP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	rep.ScoreP95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	if allLabeled(txs) {
		rep.Labeled = true
		m := supervised(txs, flags)
		rep.Supervised = &m
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	top := opts.TopN
	if top <= 0 || top > rep.AnomalyCount {
		top = rep.AnomalyCount
	}
	rep.TopAnomalies = scored[:top]
	return rep, nil
}

func encode(txs []models.Transaction) [][]float64 {
	seen := make(map[string]struct{})
	for _, tx := range txs {
		seen[tx.MerchantCategory] = struct{}{}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	code := make(map[string]int, len(cats))
	for i, c := range cats {
		code[c] = i
	}

	X := make([][]float64, len(txs))
	for i, tx := range txs {
		var present float64
		if tx.CardPresent {
			present = 1
		}
		X[i] = []float64{tx.Amount, float64(tx.Hour), float64(code[tx.MerchantCategory]), present}
	}
	return X
}

func allLabeled(txs []models.Transaction) bool {
	for _, tx := range txs {
		if tx.IsFraud == nil {
			return false
		}
	}
	return len(txs) > 0
}

func supervised(txs []models.Transaction, flags []bool) models.SupervisedMetrics {
	var m models.SupervisedMetrics
	var frauds int
	for i, tx := range txs {
		actual := *tx.IsFraud
		if actual {
			frauds++
		}
		switch {
		case flags[i] && actual:
			m.Confusion.TruePositive++
		case flags[i] && !actual:
			m.Confusion.FalsePositive++
		case !flags[i] && actual:
			m.Confusion.FalseNegative++
		default:
			m.Confusion.TrueNegative++
		}
	}

	c := m.Confusion
	m.Precision = ratio(c.TruePositive, c.TruePositive+c.FalsePositive)
	m.Recall = ratio(c.TruePositive, c.TruePositive+c.FalseNegative)
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.FraudRate = ratio(frauds, len(txs))
	return m
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
