package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noiselessData returns rows following y = 3 + 2*a - b exactly.
func noiselessData() ([][]float64, []float64) {
	X := [][]float64{
		{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 1}, {3, 5},
	}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 3 + 2*row[0] - row[1]
	}
	return X, y
}

func TestLinearRegressionRecoversExactCoefficients(t *testing.T) {
	X, y := noiselessData()
	m := NewLinearRegression()
	require.NoError(t, m.Fit(X, y))

	assert.InDelta(t, 3, m.Intercept(), 1e-9)
	coef := m.Coef()
	require.Len(t, coef, 2)
	assert.InDelta(t, 2, coef[0], 1e-9)
	assert.InDelta(t, -1, coef[1], 1e-9)

	pred := m.Predict([][]float64{{4, 2}})
	assert.InDelta(t, 3+8-2, pred[0], 1e-9)
}

func TestLinearRegressionRejectsEmptyInput(t *testing.T) {
	require.Error(t, NewLinearRegression().Fit(nil, nil))
	require.Error(t, NewLinearRegression().Fit([][]float64{{1}}, []float64{1, 2}))
}

func TestRidgeZeroAlphaMatchesOLS(t *testing.T) {
	X, y := noiselessData()
	ols := NewLinearRegression()
	require.NoError(t, ols.Fit(X, y))

	r := NewRidge(0)
	require.NoError(t, r.Fit(X, y))

	for j := range ols.Coef() {
		assert.InDelta(t, ols.Coef()[j], r.Coef()[j], 1e-8)
	}
	assert.InDelta(t, ols.Intercept(), r.Intercept(), 1e-8)
}

func TestRidgeShrinksCoefficients(t *testing.T) {
	X, y := noiselessData()
	small := NewRidge(0.001)
	require.NoError(t, small.Fit(X, y))
	big := NewRidge(1000)
	require.NoError(t, big.Fit(X, y))

	for j := range small.Coef() {
		assert.Less(t, abs(big.Coef()[j]), abs(small.Coef()[j]))
	}
}

func TestRidgeUnknownSolver(t *testing.T) {
	r := NewRidge(1)
	r.Solver = "newton"
	err := r.Fit([][]float64{{1}, {2}}, []float64{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown solver")
}

func TestRidgeSAGApproximatesCholesky(t *testing.T) {
	X, y := noiselessData()
	closed := NewRidge(0.1)
	require.NoError(t, closed.Fit(X, y))

	sag := NewRidge(0.1)
	sag.Solver = SolverSAG
	sag.Seed = 7
	sag.MaxIter = 2000
	require.NoError(t, sag.Fit(X, y))

	for j := range closed.Coef() {
		assert.InDelta(t, closed.Coef()[j], sag.Coef()[j], 0.05)
	}
	assert.InDelta(t, closed.Intercept(), sag.Intercept(), 0.05)
}

func TestLassoLargeAlphaZeroesCoefficients(t *testing.T) {
	X, y := noiselessData()
	m := NewLasso(1e6)
	require.NoError(t, m.Fit(X, y))
	for _, c := range m.Coef() {
		assert.Equal(t, 0.0, c)
	}
	// With all weights zero the intercept is the target mean.
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	assert.InDelta(t, mean, m.Intercept(), 1e-9)
}

func TestLassoTinyAlphaNearOLS(t *testing.T) {
	X, y := noiselessData()
	ols := NewLinearRegression()
	require.NoError(t, ols.Fit(X, y))

	m := NewLasso(1e-8)
	m.MaxIter = 5000
	require.NoError(t, m.Fit(X, y))
	for j := range ols.Coef() {
		assert.InDelta(t, ols.Coef()[j], m.Coef()[j], 1e-4)
	}
}

func TestElasticNetL1RatioBounds(t *testing.T) {
	m := NewElasticNet(1, 1.5)
	require.Error(t, m.Fit([][]float64{{1}, {2}}, []float64{1, 2}))
}

func TestElasticNetTinyAlphaNearOLS(t *testing.T) {
	X, y := noiselessData()
	ols := NewLinearRegression()
	require.NoError(t, ols.Fit(X, y))

	enet := NewElasticNet(1e-8, 0.5)
	enet.MaxIter = 5000
	require.NoError(t, enet.Fit(X, y))
	for j := range ols.Coef() {
		assert.InDelta(t, ols.Coef()[j], enet.Coef()[j], 1e-4)
	}
}

func TestElasticNetShrinksWithAlpha(t *testing.T) {
	X, y := noiselessData()
	small := NewElasticNet(0.01, 0.5)
	require.NoError(t, small.Fit(X, y))
	big := NewElasticNet(100, 0.5)
	require.NoError(t, big.Fit(X, y))

	for j := range small.Coef() {
		assert.LessOrEqual(t, abs(big.Coef()[j]), abs(small.Coef()[j]))
	}
}

func TestKNNRegressorAveragesNeighbors(t *testing.T) {
	X := [][]float64{{0}, {1}, {10}, {11}}
	y := []float64{2, 4, 100, 200}
	m := NewKNNRegressor(2)
	require.NoError(t, m.Fit(X, y))

	pred := m.Predict([][]float64{{0.4}, {10.5}})
	assert.InDelta(t, 3, pred[0], 1e-12)
	assert.InDelta(t, 150, pred[1], 1e-12)
}

func TestKNNValidation(t *testing.T) {
	require.Error(t, NewKNNRegressor(0).Fit([][]float64{{1}}, []float64{1}))
	require.Error(t, NewKNNRegressor(2).Fit([][]float64{{1}}, []float64{1}))
	require.Error(t, NewKNNRegressor(1).Fit([][]float64{{1}}, []float64{1, 2}))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
