package model

import (
	"errors"
	"math"
)

// Lasso is L1-penalized least squares fit by cyclic coordinate descent.
type Lasso struct {
	Alpha   float64
	MaxIter int
	Tol     float64

	coef      []float64
	intercept float64
	fitted    bool
}

// NewLasso returns an unfitted lasso regressor with the given penalty.
func NewLasso(alpha float64) *Lasso { return &Lasso{Alpha: alpha} }

func (m *Lasso) Fit(X [][]float64, y []float64) error {
	coef, intercept, err := coordinateDescent(X, y, m.Alpha, 1, m.MaxIter, m.Tol)
	if err != nil {
		return err
	}
	m.coef, m.intercept, m.fitted = coef, intercept, true
	return nil
}

func (m *Lasso) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}

func (m *Lasso) Coef() []float64 { return append([]float64(nil), m.coef...) }

func (m *Lasso) Intercept() float64 { return m.intercept }

// ElasticNet combines L1 and L2 penalties. L1Ratio=1 reduces to the lasso,
// L1Ratio=0 to ridge.
type ElasticNet struct {
	Alpha   float64
	L1Ratio float64
	MaxIter int
	Tol     float64

	coef      []float64
	intercept float64
	fitted    bool
}

// NewElasticNet returns an unfitted elastic-net regressor.
func NewElasticNet(alpha, l1Ratio float64) *ElasticNet {
	return &ElasticNet{Alpha: alpha, L1Ratio: l1Ratio}
}

func (m *ElasticNet) Fit(X [][]float64, y []float64) error {
	if m.L1Ratio < 0 || m.L1Ratio > 1 {
		return errors.New("elastic net: l1 ratio must be within [0, 1]")
	}
	coef, intercept, err := coordinateDescent(X, y, m.Alpha, m.L1Ratio, m.MaxIter, m.Tol)
	if err != nil {
		return err
	}
	m.coef, m.intercept, m.fitted = coef, intercept, true
	return nil
}

func (m *ElasticNet) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}

func (m *ElasticNet) Coef() []float64 { return append([]float64(nil), m.coef...) }

func (m *ElasticNet) Intercept() float64 { return m.intercept }

func softThreshold(v, lambda float64) float64 {
	switch {
	case v > lambda:
		return v - lambda
	case v < -lambda:
		return v + lambda
	default:
		return 0
	}
}

// coordinateDescent minimizes
//
//	1/(2n) ||y - Xw - b||^2 + alpha*l1Ratio*||w||_1 + alpha*(1-l1Ratio)/2*||w||^2
//
// by cyclic updates on column-centered data; the intercept absorbs the
// means and is never penalized.
func coordinateDescent(X [][]float64, y []float64, alpha, l1Ratio float64, maxIter int, tol float64) ([]float64, float64, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, 0, errors.New("coordinate descent: feature rows and targets must be non-empty and equal length")
	}
	if alpha < 0 {
		return nil, 0, errors.New("coordinate descent: alpha must be non-negative")
	}
	if maxIter <= 0 {
		maxIter = 1000
	}
	if tol <= 0 {
		tol = 1e-6
	}
	n, p := len(X), len(X[0])

	colMean := make([]float64, p)
	for _, row := range X {
		for j, v := range row {
			colMean[j] += v
		}
	}
	for j := range colMean {
		colMean[j] /= float64(n)
	}
	yMean := 0.0
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)

	xc := make([][]float64, n)
	resid := make([]float64, n)
	for i, row := range X {
		r := make([]float64, p)
		for j, v := range row {
			r[j] = v - colMean[j]
		}
		xc[i] = r
		resid[i] = y[i] - yMean
	}
	// Squared column norms; constant columns stay at zero weight.
	z := make([]float64, p)
	for _, row := range xc {
		for j, v := range row {
			z[j] += v * v
		}
	}

	lam1 := alpha * l1Ratio * float64(n)
	lam2 := alpha * (1 - l1Ratio) * float64(n)
	w := make([]float64, p)
	for iter := 0; iter < maxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < p; j++ {
			if z[j] == 0 {
				continue
			}
			old := w[j]
			rho := z[j] * old
			for i := range xc {
				rho += xc[i][j] * resid[i]
			}
			next := softThreshold(rho, lam1) / (z[j] + lam2)
			if next != old {
				diff := next - old
				for i := range xc {
					resid[i] -= xc[i][j] * diff
				}
				w[j] = next
				if d := math.Abs(diff); d > maxDelta {
					maxDelta = d
				}
			}
		}
		if maxDelta < tol {
			break
		}
	}
	intercept := yMean
	for j := range w {
		intercept -= w[j] * colMean[j]
	}
	return w, intercept, nil
}
