package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is ordinary least squares solved in closed form via QR
// factorization of the design matrix.
type LinearRegression struct {
	coef      []float64
	intercept float64
	fitted    bool
}

// NewLinearRegression returns an unfitted OLS regressor.
func NewLinearRegression() *LinearRegression { return &LinearRegression{} }

// designMatrix builds the n x (p+1) matrix with a leading column of ones for
// the intercept.
func designMatrix(X [][]float64) *mat.Dense {
	n, p := len(X), len(X[0])
	a := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}
	return a
}

// Fit solves min ||y - Xb|| over rows of X.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 || len(X) != len(y) {
		return errors.New("linear regression: feature rows and targets must be non-empty and equal length")
	}
	a := designMatrix(X)
	b := mat.NewVecDense(len(y), append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(a)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, b); err != nil {
		// A Condition error flags near-singularity but still carries the
		// least-norm solution; anything else is fatal.
		if _, ok := err.(mat.Condition); !ok {
			return err
		}
	}
	m.intercept = beta.AtVec(0)
	m.coef = make([]float64, beta.Len()-1)
	for j := range m.coef {
		m.coef[j] = beta.AtVec(j + 1)
	}
	m.fitted = true
	return nil
}

// Predict returns one prediction per row of X.
func (m *LinearRegression) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}

// Coef returns the fitted coefficients, one per input column.
func (m *LinearRegression) Coef() []float64 { return append([]float64(nil), m.coef...) }

// Intercept returns the fitted intercept.
func (m *LinearRegression) Intercept() float64 { return m.intercept }

func linearPredict(X [][]float64, coef []float64, intercept float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		s := intercept
		for j, v := range row {
			s += coef[j] * v
		}
		out[i] = s
	}
	return out
}
