// Package interpret turns fitted log-target linear pipelines into readable
// coefficient reports.
package interpret

import (
	"errors"
	"math"
	"sort"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/pipeline"
)

// Coefficient pairs an expanded feature name with its multiplicative effect:
// holding all else constant, one raw unit of the feature (or being in the
// category instead of the dropped reference) multiplies the predicted price
// by 1+Effect.
type Coefficient struct {
	Feature string
	Effect  float64
}

// CoefficientTable is ordered by descending absolute effect.
type CoefficientTable []Coefficient

// Coefficients extracts the fitted coefficients from a log-wrapped
// linear-family pipeline and expresses each as a multiplicative effect. The
// feature names come from the preprocessing stage's expanded-name contract,
// so alignment with the coefficient vector is structural.
func Coefficients(p *pipeline.Pipeline) (CoefficientTable, error) {
	if !p.IsFitted() {
		return nil, mlerr.ErrNotFitted
	}
	if !p.IsLogTarget() {
		return nil, errors.New("coefficient interpretation requires a log-target pipeline")
	}
	lm, ok := p.LinearModel()
	if !ok {
		return nil, errors.New("coefficient interpretation requires a linear-family estimator")
	}
	names := p.FeatureNames()
	scales := p.FeatureScales()
	coefs := lm.Coef()
	if len(names) != len(coefs) {
		return nil, errors.New("feature names and coefficients have different lengths")
	}
	// Coefficients are fitted against standardized columns; dividing by the
	// column's scale expresses the effect per raw unit of the feature.
	out := make(CoefficientTable, len(coefs))
	for i, c := range coefs {
		out[i] = Coefficient{Feature: names[i], Effect: math.Exp(c/scales[i]) - 1}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].Effect) > math.Abs(out[b].Effect)
	})
	return out, nil
}
