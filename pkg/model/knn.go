package model

import (
	"errors"
	"runtime"
	"sort"
	"sync"
)

// KNNRegressor predicts the mean target of the K nearest training rows under
// Euclidean distance. Fitting just stores the training data.
type KNNRegressor struct {
	K int

	x [][]float64
	y []float64
}

// NewKNNRegressor creates a regressor over the k nearest neighbors.
func NewKNNRegressor(k int) *KNNRegressor {
	return &KNNRegressor{K: k}
}

// Fit stores the training rows and targets.
func (m *KNNRegressor) Fit(X [][]float64, y []float64) error {
	if m.K < 1 {
		return errors.New("knn: k must be at least 1")
	}
	if len(X) != len(y) {
		return errors.New("knn: the number of feature vectors must match the number of targets")
	}
	if len(X) < m.K {
		return errors.New("knn: fewer training rows than k")
	}
	m.x = X
	m.y = y
	return nil
}

// Predict computes one prediction per row, parallelized across CPU cores.
// The fitted state is read-only, so concurrent workers are safe.
func (m *KNNRegressor) Predict(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}

	out := make([]float64, len(X))
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(X))
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				out[i] = m.predictSingle(X[i])
			}
		}(start, end)
	}

	wg.Wait()
	return out
}

// predictSingle averages the targets of the K nearest training rows.
func (m *KNNRegressor) predictSingle(xi []float64) float64 {
	type pair struct {
		d float64
		v float64
	}

	// Keep a small sorted slice of the nearest neighbors found so far.
	nbrs := make([]pair, 0, m.K+1)
	for j, xj := range m.x {
		distSquared := euclidSquared(xi, xj)
		neighbor := pair{d: distSquared, v: m.y[j]}

		if len(nbrs) < m.K {
			nbrs = append(nbrs, neighbor)
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		} else if distSquared < nbrs[len(nbrs)-1].d {
			nbrs[len(nbrs)-1] = neighbor
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		}
	}

	sum := 0.0
	for _, p := range nbrs {
		sum += p.v
	}
	return sum / float64(len(nbrs))
}

// euclidSquared computes the squared Euclidean distance between two vectors.
// Squared distance avoids square roots during comparisons.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
