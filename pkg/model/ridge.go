package model

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/optim"
)

// Ridge solver names.
const (
	SolverAuto     = "auto"
	SolverCholesky = "cholesky"
	SolverSAG      = "sag"
)

// Ridge is L2-penalized least squares. The intercept is never penalized.
//
// Solver selects the fitting algorithm: "cholesky" solves the regularized
// normal equations in closed form, "sag" runs seeded stochastic gradient
// passes, and "auto" (or empty) picks cholesky. Seed only matters for the
// stochastic solver.
type Ridge struct {
	Alpha   float64
	Solver  string
	Seed    int64
	MaxIter int // sag passes over the data; defaults to 1000

	coef      []float64
	intercept float64
	fitted    bool
}

// NewRidge returns an unfitted ridge regressor with the given penalty.
func NewRidge(alpha float64) *Ridge { return &Ridge{Alpha: alpha, Solver: SolverAuto} }

func (m *Ridge) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 || len(X) != len(y) {
		return errors.New("ridge: feature rows and targets must be non-empty and equal length")
	}
	if m.Alpha < 0 {
		return errors.New("ridge: alpha must be non-negative")
	}
	switch m.Solver {
	case "", SolverAuto, SolverCholesky:
		return m.fitCholesky(X, y)
	case SolverSAG:
		return m.fitSAG(X, y)
	default:
		return fmt.Errorf("ridge: unknown solver %q", m.Solver)
	}
}

// fitCholesky solves (Xc'Xc + alpha*I) w = Xc'yc on column-centered data so
// the intercept stays unpenalized.
func (m *Ridge) fitCholesky(X [][]float64, y []float64) error {
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

	xc := mat.NewDense(n, p, nil)
	for i, row := range X {
		for j, v := range row {
			xc.Set(i, j, v-colMean[j])
		}
	}
	yc := mat.NewVecDense(n, nil)
	for i, v := range y {
		yc.SetVec(i, v-yMean)
	}

	var gram mat.Dense
	gram.Mul(xc.T(), xc)
	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := gram.At(i, j)
			if i == j {
				v += m.Alpha
			}
			sym.SetSym(i, j, v)
		}
	}
	var rhs mat.VecDense
	rhs.MulVec(xc.T(), yc)

	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return errors.New("ridge: normal equations are not positive definite")
	}
	var w mat.VecDense
	if err := ch.SolveVecTo(&w, &rhs); err != nil {
		return err
	}
	m.coef = make([]float64, p)
	m.intercept = yMean
	for j := 0; j < p; j++ {
		m.coef[j] = w.AtVec(j)
		m.intercept -= m.coef[j] * colMean[j]
	}
	m.fitted = true
	return nil
}

// fitSAG makes seeded stochastic passes over the samples, stepping down the
// per-sample ridge gradient.
func (m *Ridge) fitSAG(X [][]float64, y []float64) error {
	n, p := len(X), len(X[0])
	maxIter := m.MaxIter
	if maxIter <= 0 {
		maxIter = 1000
	}
	rng := rand.New(rand.NewSource(m.Seed))
	w := make([]float64, p)
	for j := range w {
		w[j] = rng.NormFloat64() * 0.01
	}
	b := 0.0

	// Step size bounded by the largest squared sample norm keeps the
	// updates stable for standardized inputs.
	maxNorm := 1.0
	for _, row := range X {
		s := 0.0
		for _, v := range row {
			s += v * v
		}
		if s > maxNorm {
			maxNorm = s
		}
	}
	lr := 1.0 / (maxNorm + m.Alpha/float64(n))
	opt := optim.NewSGD(lr)
	grad := make([]float64, p)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for epoch := 0; epoch < maxIter; epoch++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			row := X[i]
			pred := b
			for j, v := range row {
				pred += w[j] * v
			}
			d := pred - y[i]
			for j, v := range row {
				grad[j] = d*v + m.Alpha/float64(n)*w[j]
			}
			opt.Step(w, grad)
			b -= lr * d
		}
	}
	m.coef = w
	m.intercept = b
	m.fitted = true
	return nil
}

func (m *Ridge) Predict(X [][]float64) []float64 {
	return linearPredict(X, m.coef, m.intercept)
}

func (m *Ridge) Coef() []float64 { return append([]float64(nil), m.coef...) }

func (m *Ridge) Intercept() float64 { return m.intercept }
