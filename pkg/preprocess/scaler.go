// Package preprocess implements the column-wise preprocessing stage:
// standardization for numeric columns, one-hot encoding with a dropped
// reference category for categorical columns, and optional pairwise
// polynomial expansion of the numeric block.
package preprocess

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
)

// StandardScaler centers each column to zero mean and scales it to unit
// variance. Statistics are learned once at Fit and reused for every later
// Transform, never refit on new data.
type StandardScaler struct {
	Mean  []float64
	Scale []float64

	fitted bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column means and standard deviations. Constant columns get
// a scale of 1 so they transform to zero rather than dividing by zero.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("standard scaler: no rows to fit")
	}
	c := len(X[0])
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, len(X))
	for j := 0; j < c; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		s.Mean[j] = mean
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}
	s.fitted = true
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, mlerr.ErrNotFitted
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, errors.New("standard scaler: column count differs from fit")
		}
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = r
	}
	return out, nil
}

// FitTransform fits the scaler and transforms the fitting data.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
