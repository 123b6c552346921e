package service

// OutlierModel scores rows of a numeric feature matrix. Higher scores are
// more anomalous.
type OutlierModel interface {
	Fit(X [][]float64) error
	Score(X [][]float64) []float64
}
