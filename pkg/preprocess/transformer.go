package preprocess

import (
	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

// ColumnTransformer is the preprocessing stage. It binds a role set to
// column-wise transforms: numeric columns are standardized (optionally after
// pairwise polynomial expansion), categorical columns are one-hot encoded
// with a dropped reference category.
//
// Fit consumes only the training split. Transform reuses the fitted
// parameters for any later table and never refits. Output column order is
// stable: the numeric (or numeric+pairwise) block first, then one indicator
// block per categorical column in role-set order.
type ColumnTransformer struct {
	roles      table.RoleSet
	polynomial bool

	scaler   *StandardScaler
	encoders map[string]*OneHotEncoder
	names    []string
	fitted   bool
}

// NewColumnTransformer builds the plain preprocessing stage for a role set.
func NewColumnTransformer(roles table.RoleSet) *ColumnTransformer {
	return &ColumnTransformer{roles: roles}
}

// NewPolynomialTransformer builds the polynomial-augmented variant: every
// pairwise product of two distinct numeric columns is added before scaling.
func NewPolynomialTransformer(roles table.RoleSet) *ColumnTransformer {
	return &ColumnTransformer{roles: roles, polynomial: true}
}

// Clone returns a fresh unfitted transformer with the same configuration.
// Cross-validation clones the stage so each fold fits independent state.
func (ct *ColumnTransformer) Clone() *ColumnTransformer {
	return &ColumnTransformer{roles: ct.roles, polynomial: ct.polynomial}
}

// IsFitted reports whether Fit has completed.
func (ct *ColumnTransformer) IsFitted() bool { return ct.fitted }

// numericMatrix gathers the role set's numeric columns in order, expanding
// pairwise products when configured. Names of the resulting block are
// returned with the data.
func (ct *ColumnTransformer) numericMatrix(t *table.FeatureTable) ([][]float64, []string, error) {
	X := make([][]float64, t.NumRows())
	for i := range X {
		X[i] = make([]float64, len(ct.roles.Numeric))
	}
	for j, name := range ct.roles.Numeric {
		vals, err := t.Numeric(name)
		if err != nil {
			return nil, nil, err
		}
		for i, v := range vals {
			X[i][j] = v
		}
	}
	names := append([]string(nil), ct.roles.Numeric...)
	if ct.polynomial {
		X, names = PairwiseProducts(X, names)
	}
	return X, names, nil
}

// Fit learns scaling statistics and category vocabularies from the training
// split. Fitting against a table inconsistent with the configured role set
// fails with an UnknownColumnRole error.
func (ct *ColumnTransformer) Fit(t *table.FeatureTable) error {
	if err := ct.checkRoles(t); err != nil {
		return err
	}
	X, numericNames, err := ct.numericMatrix(t)
	if err != nil {
		return err
	}
	scaler := NewStandardScaler()
	if len(numericNames) > 0 {
		if err := scaler.Fit(X); err != nil {
			return err
		}
	}
	encoders := make(map[string]*OneHotEncoder, len(ct.roles.Categorical))
	names := append([]string(nil), numericNames...)
	for _, col := range ct.roles.Categorical {
		labels, err := t.Categorical(col)
		if err != nil {
			return err
		}
		enc := NewOneHotEncoder()
		if err := enc.Fit(labels); err != nil {
			return err
		}
		encoders[col] = enc
		names = append(names, enc.Names(col)...)
	}
	ct.scaler = scaler
	ct.encoders = encoders
	ct.names = names
	ct.fitted = true
	return nil
}

// checkRoles verifies the fitting table matches the configured role set;
// mismatches at fit time are configuration errors, not schema errors.
func (ct *ColumnTransformer) checkRoles(t *table.FeatureTable) error {
	for _, name := range ct.roles.Numeric {
		c, ok := t.Column(name)
		if !ok {
			return &mlerr.UnknownColumnRoleError{Column: name, Reason: "configured numeric column not present"}
		}
		if c.Role != table.RoleNumeric {
			return &mlerr.UnknownColumnRoleError{Column: name, Reason: "configured numeric, table has categorical"}
		}
	}
	for _, name := range ct.roles.Categorical {
		c, ok := t.Column(name)
		if !ok {
			return &mlerr.UnknownColumnRoleError{Column: name, Reason: "configured categorical column not present"}
		}
		if c.Role != table.RoleCategorical {
			return &mlerr.UnknownColumnRoleError{Column: name, Reason: "configured categorical, table has numeric"}
		}
	}
	return nil
}

// Transform applies the fitted transforms to any table sharing the training
// schema. Unseen category values map to all-zero indicator rows.
func (ct *ColumnTransformer) Transform(t *table.FeatureTable) ([][]float64, error) {
	if !ct.fitted {
		return nil, mlerr.ErrNotFitted
	}
	if err := ct.roles.Check(t); err != nil {
		return nil, err
	}
	X, _, err := ct.numericMatrix(t)
	if err != nil {
		return nil, err
	}
	if len(ct.roles.Numeric) > 0 {
		X, err = ct.scaler.Transform(X)
		if err != nil {
			return nil, err
		}
	}
	out := make([][]float64, t.NumRows())
	for i := range out {
		row := make([]float64, 0, len(ct.names))
		row = append(row, X[i]...)
		out[i] = row
	}
	for _, col := range ct.roles.Categorical {
		labels, err := t.Categorical(col)
		if err != nil {
			return nil, err
		}
		ind, err := ct.encoders[col].Transform(labels)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = append(out[i], ind[i]...)
		}
	}
	return out, nil
}

// FitTransform fits the stage and transforms the fitting data.
func (ct *ColumnTransformer) FitTransform(t *table.FeatureTable) ([][]float64, error) {
	if err := ct.Fit(t); err != nil {
		return nil, err
	}
	return ct.Transform(t)
}

// FeatureNames returns the expanded output feature names in output column
// order, aligned with the matrices Transform produces.
func (ct *ColumnTransformer) FeatureNames() []string {
	return append([]string(nil), ct.names...)
}

// FeatureScales returns the divisor each output column was standardized by,
// aligned with FeatureNames. Indicator columns bypass the scaler and report
// 1. Dividing a fitted coefficient by its scale converts it from
// per-standard-deviation back to per-raw-unit.
func (ct *ColumnTransformer) FeatureScales() []float64 {
	scales := make([]float64, len(ct.names))
	for i := range scales {
		scales[i] = 1
	}
	copy(scales, ct.scaler.Scale)
	return scales
}
