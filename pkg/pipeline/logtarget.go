package pipeline

import (
	"fmt"
	"math"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/model"
)

// LogTransform maps strictly positive targets into log space. Any
// non-positive value aborts with ErrInvalidTargetDomain; values are never
// clamped or dropped.
func LogTransform(y []float64) ([]float64, error) {
	out := make([]float64, len(y))
	for i, v := range y {
		if v <= 0 {
			return nil, fmt.Errorf("row %d has target %v: %w", i, v, mlerr.ErrInvalidTargetDomain)
		}
		out[i] = math.Log(v)
	}
	return out, nil
}

// ExpTransform inverts LogTransform.
func ExpTransform(y []float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = math.Exp(v)
	}
	return out
}

// LogTarget wraps a regressor so it fits against log(y) and predicts
// exp(raw). Sale prices are strictly positive and right-skewed; modeling in
// log space makes linear coefficients read as multiplicative effects.
type LogTarget struct {
	Regressor model.Model
}

// NewLogTarget wraps a regressor in the log/exp target transform.
func NewLogTarget(r model.Model) *LogTarget { return &LogTarget{Regressor: r} }

func (lt *LogTarget) Fit(X [][]float64, y []float64) error {
	ly, err := LogTransform(y)
	if err != nil {
		return err
	}
	return lt.Regressor.Fit(X, ly)
}

func (lt *LogTarget) Predict(X [][]float64) []float64 {
	return ExpTransform(lt.Regressor.Predict(X))
}
