// Package analytics holds the in-process outlier models used by the
// security and fraud labs.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const eulerGamma = 0.5772156649015329

// ErrNotFitted is returned when scoring before Fit.
var ErrNotFitted = errors.New("isolation forest: not fitted")

// Option configures an IsolationForest.
type Option func(*IsolationForest)

// WithTrees sets the ensemble size.
func WithTrees(n int) Option {
	return func(f *IsolationForest) {
		if n > 0 {
			f.trees = n
		}
	}
}

// WithSampleSize caps the subsample drawn for each tree.
func WithSampleSize(n int) Option {
	return func(f *IsolationForest) {
		if n > 1 {
			f.maxSamples = n
		}
	}
}

// WithContamination sets the expected outlier fraction used for the threshold.
func WithContamination(c float64) Option {
	return func(f *IsolationForest) {
		if c > 0 && c < 0.5 {
			f.contamination = c
		}
	}
}

// WithSeed fixes the tree construction randomness.
func WithSeed(seed uint64) Option {
	return func(f *IsolationForest) {
		f.seed = seed
	}
}

type node struct {
	feature     int
	split       float64
	left, right int
	size        int
	leaf        bool
}

type tree []node

// IsolationForest isolates points with random axis-aligned splits. Points
// that need few splits get scores close to 1.
type IsolationForest struct {
	trees         int
	maxSamples    int
	contamination float64
	seed          uint64

	forest    []tree
	psi       int
	threshold float64
}

// NewIsolationForest returns an unfitted model with 100 trees, subsample 256,
// contamination 0.1 and seed 42 unless overridden.
func NewIsolationForest(opts ...Option) *IsolationForest {
	f := &IsolationForest{
		trees:         100,
		maxSamples:    256,
		contamination: 0.1,
		seed:          42,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit grows the forest on X and sets the score threshold at the
// (1-contamination) quantile of the training scores.
func (f *IsolationForest) Fit(X [][]float64) error {
	if len(X) < 2 {
		return fmt.Errorf("isolation forest: need at least 2 rows, got %d", len(X))
	}
	width := len(X[0])
	if width == 0 {
		return errors.New("isolation forest: rows have no features")
	}
	for i, row := range X {
		if len(row) != width {
			return fmt.Errorf("isolation forest: row %d has %d features, want %d", i, len(row), width)
		}
	}

	rng := rand.New(rand.NewPCG(f.seed, f.seed^0x9e3779b97f4a7c15))
	f.psi = min(f.maxSamples, len(X))
	heightLimit := int(math.Ceil(math.Log2(float64(f.psi))))

	f.forest = make([]tree, f.trees)
	for t := range f.forest {
		idx := rng.Perm(len(X))[:f.psi]
		var tr tree
		build(&tr, X, idx, 0, heightLimit, rng)
		f.forest[t] = tr
	}

	scores := f.Score(X)
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	f.threshold = stat.Quantile(1-f.contamination, stat.Empirical, sorted, nil)
	return nil
}

// Score returns the anomaly score s = 2^(-E[h(x)]/c(psi)) of each row.
// Rows are scored as zero before Fit.
func (f *IsolationForest) Score(X [][]float64) []float64 {
	out := make([]float64, len(X))
	if len(f.forest) == 0 {
		return out
	}
	norm := averagePathLength(f.psi)
	for i, x := range X {
		var total float64
		for _, tr := range f.forest {
			total += tr.pathLength(x)
		}
		mean := total / float64(len(f.forest))
		out[i] = math.Pow(2, -mean/norm)
	}
	return out
}

// Threshold is the fitted cut-off; rows scoring above it are anomalies.
func (f *IsolationForest) Threshold() float64 { return f.threshold }

// Predict flags rows whose score exceeds the fitted threshold.
func (f *IsolationForest) Predict(X [][]float64) ([]bool, []float64, error) {
	if len(f.forest) == 0 {
		return nil, nil, ErrNotFitted
	}
	scores := f.Score(X)
	flags := make([]bool, len(scores))
	for i, s := range scores {
		flags[i] = s > f.threshold
	}
	return flags, scores, nil
}

func build(tr *tree, X [][]float64, idx []int, depth, limit int, rng *rand.Rand) int {
	pos := len(*tr)
	*tr = append(*tr, node{size: len(idx), leaf: true})
	if depth >= limit || len(idx) <= 1 {
		return pos
	}

	width := len(X[idx[0]])
	lo := make([]float64, width)
	hi := make([]float64, width)
	for j := 0; j < width; j++ {
		lo[j], hi[j] = math.Inf(1), math.Inf(-1)
	}
	for _, i := range idx {
		for j, v := range X[i] {
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}
	var candidates []int
	for j := 0; j < width; j++ {
		if hi[j] > lo[j] {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return pos
	}

	feature := candidates[rng.IntN(len(candidates))]
	split := lo[feature] + rng.Float64()*(hi[feature]-lo[feature])

	var left, right []int
	for _, i := range idx {
		if X[i][feature] < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := build(tr, X, left, depth+1, limit, rng)
	r := build(tr, X, right, depth+1, limit, rng)
	(*tr)[pos] = node{feature: feature, split: split, left: l, right: r, size: len(idx)}
	return pos
}

func (tr tree) pathLength(x []float64) float64 {
	var depth float64
	n := tr[0]
	for !n.leaf {
		if x[n.feature] < n.split {
			n = tr[n.left]
		} else {
			n = tr[n.right]
		}
		depth++
	}
	return depth + averagePathLength(n.size)
}

// averagePathLength is c(n), the mean depth of an unsuccessful BST search.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	m := float64(n)
	return 2*(math.Log(m-1)+eulerGamma) - 2*(m-1)/m
}
