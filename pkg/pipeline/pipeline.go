// Package pipeline composes the preprocessing stage, an optional log target
// transform, and an estimator into one end-to-end fit/predict unit.
package pipeline

import (
	"strconv"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/model"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/preprocess"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

// Option configures a pipeline at construction time.
type Option func(*Pipeline)

// WithLogTarget fits the estimator against log(y) and exponentiates
// predictions back to price units.
func WithLogTarget() Option {
	return func(p *Pipeline) { p.logTarget = true }
}

// WithPolynomialFeatures expands the numeric block with pairwise interaction
// terms before scaling.
func WithPolynomialFeatures() Option {
	return func(p *Pipeline) { p.polynomial = true }
}

// Pipeline owns one preprocessing stage and one estimator. It is not shared
// while fitting; once fitted it is immutable and safe for concurrent
// Predict calls.
type Pipeline struct {
	roles      table.RoleSet
	target     string
	logTarget  bool
	polynomial bool

	pre    *preprocess.ColumnTransformer
	est    model.Model
	fitted bool
}

// New builds an unfitted pipeline for the given role set, target column and
// estimator.
func New(roles table.RoleSet, target string, est model.Model, opts ...Option) *Pipeline {
	p := &Pipeline{roles: roles, target: target, est: est}
	for _, o := range opts {
		o(p)
	}
	if p.polynomial {
		p.pre = preprocess.NewPolynomialTransformer(roles)
	} else {
		p.pre = preprocess.NewColumnTransformer(roles)
	}
	if p.logTarget {
		p.est = NewLogTarget(est)
	}
	return p
}

// Fit fits the preprocessing stage and the estimator on the training split
// only. A failed fit leaves the pipeline in its previous state rather than
// exposing partially fitted components.
func (p *Pipeline) Fit(t *table.FeatureTable) error {
	y, err := t.Numeric(p.target)
	if err != nil {
		return err
	}
	pre := p.pre.Clone()
	X, err := pre.FitTransform(t)
	if err != nil {
		return err
	}
	if err := p.est.Fit(X, y); err != nil {
		return err
	}
	p.pre = pre
	p.fitted = true
	return nil
}

// Predict returns one prediction per row, already inverse-transformed to
// price units when the pipeline is log-wrapped. The table must share the
// schema seen at fit time.
func (p *Pipeline) Predict(t *table.FeatureTable) ([]float64, error) {
	if !p.fitted {
		return nil, mlerr.ErrNotFitted
	}
	X, err := p.pre.Transform(t)
	if err != nil {
		return nil, err
	}
	return p.est.Predict(X), nil
}

// Prediction pairs a row identifier with its predicted value.
type Prediction struct {
	ID    string
	Value float64
}

// PredictTable predicts over a table and pairs each prediction with that
// row's identifier, preserving input row order.
func (p *Pipeline) PredictTable(t *table.FeatureTable, idCol string) ([]Prediction, error) {
	ids, err := identifiers(t, idCol)
	if err != nil {
		return nil, err
	}
	preds, err := p.Predict(t)
	if err != nil {
		return nil, err
	}
	out := make([]Prediction, len(preds))
	for i, v := range preds {
		out[i] = Prediction{ID: ids[i], Value: v}
	}
	return out, nil
}

func identifiers(t *table.FeatureTable, idCol string) ([]string, error) {
	c, ok := t.Column(idCol)
	if !ok {
		return nil, &mlerr.SchemaMismatchError{Column: idCol, Reason: "identifier column not present"}
	}
	if c.Role == table.RoleCategorical {
		return append([]string(nil), c.Labels...), nil
	}
	ids := make([]string, len(c.Floats))
	for i, v := range c.Floats {
		ids[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ids, nil
}

// FeatureNames exposes the fitted preprocessing stage's expanded output
// names, aligned with the estimator's coefficient order.
func (p *Pipeline) FeatureNames() []string { return p.pre.FeatureNames() }

// FeatureScales exposes the fitted preprocessing stage's per-column
// standardization divisors, aligned with FeatureNames.
func (p *Pipeline) FeatureScales() []float64 { return p.pre.FeatureScales() }

// IsFitted reports whether Fit has completed.
func (p *Pipeline) IsFitted() bool { return p.fitted }

// IsLogTarget reports whether predictions pass through the exp inverse.
func (p *Pipeline) IsLogTarget() bool { return p.logTarget }

// Target returns the target column name.
func (p *Pipeline) Target() string { return p.target }

// LinearModel unwraps the estimator down to its linear model, when it has
// one.
func (p *Pipeline) LinearModel() (model.LinearModel, bool) {
	est := p.est
	if lt, ok := est.(*LogTarget); ok {
		est = lt.Regressor
	}
	lm, ok := est.(model.LinearModel)
	return lm, ok
}
