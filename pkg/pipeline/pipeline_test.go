package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/model"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

// multiplicativeTable follows y = 100 * 1.5^(x-1) exactly, so a log-target
// linear fit can recover it perfectly.
func multiplicativeTable(t *testing.T) *table.FeatureTable {
	t.Helper()
	tbl, err := table.New(
		table.NumericColumn("id", []float64{1, 2, 3}),
		table.NumericColumn("x", []float64{1, 2, 3}),
		table.CategoricalColumn("cat", []string{"A", "A", "B"}),
		table.NumericColumn("price", []float64{100, 150, 225}),
	)
	require.NoError(t, err)
	return tbl
}

func multiplicativeRoles() table.RoleSet {
	return table.RoleSet{Numeric: []string{"x"}, Categorical: []string{"cat"}}
}

func TestLogTransformRoundTrip(t *testing.T) {
	y := []float64{0.5, 1, 100, 12345.678}
	ly, err := LogTransform(y)
	require.NoError(t, err)
	back := ExpTransform(ly)
	for i := range y {
		assert.InDelta(t, y[i], back[i], 1e-9)
	}
}

func TestLogTransformRejectsNonPositive(t *testing.T) {
	_, err := LogTransform([]float64{10, 0, 5})
	assert.ErrorIs(t, err, mlerr.ErrInvalidTargetDomain)
	_, err = LogTransform([]float64{-3})
	assert.ErrorIs(t, err, mlerr.ErrInvalidTargetDomain)
}

func TestLogTargetPipelineRecoversMultiplicativeData(t *testing.T) {
	tbl := multiplicativeTable(t)
	p := New(multiplicativeRoles(), "price", model.NewLinearRegression(), WithLogTarget())
	require.NoError(t, p.Fit(tbl))

	preds, err := p.Predict(tbl)
	require.NoError(t, err)
	want := []float64{100, 150, 225}
	for i := range want {
		assert.InDelta(t, want[i], preds[i], 1)
	}
}

func TestLogTargetPredictionsAlwaysPositive(t *testing.T) {
	tbl := multiplicativeTable(t)
	p := New(multiplicativeRoles(), "price", model.NewLinearRegression(), WithLogTarget())
	require.NoError(t, p.Fit(tbl))

	far, err := table.New(
		table.NumericColumn("x", []float64{-50, 80}),
		table.CategoricalColumn("cat", []string{"A", "B"}),
	)
	require.NoError(t, err)
	preds, err := p.Predict(far)
	require.NoError(t, err)
	for _, v := range preds {
		assert.Greater(t, v, 0.0)
	}
}

func TestFitFailsOnNonPositiveTarget(t *testing.T) {
	tbl, err := table.New(
		table.NumericColumn("x", []float64{1, 2}),
		table.NumericColumn("price", []float64{100, -5}),
	)
	require.NoError(t, err)
	p := New(table.RoleSet{Numeric: []string{"x"}}, "price", model.NewLinearRegression(), WithLogTarget())
	err = p.Fit(tbl)
	assert.ErrorIs(t, err, mlerr.ErrInvalidTargetDomain)
	assert.False(t, p.IsFitted())
}

func TestPredictBeforeFit(t *testing.T) {
	p := New(multiplicativeRoles(), "price", model.NewLinearRegression())
	_, err := p.Predict(multiplicativeTable(t))
	assert.ErrorIs(t, err, mlerr.ErrNotFitted)
}

func TestPredictMissingColumnIsSchemaMismatch(t *testing.T) {
	p := New(multiplicativeRoles(), "price", model.NewLinearRegression(), WithLogTarget())
	require.NoError(t, p.Fit(multiplicativeTable(t)))

	missing, err := table.New(table.NumericColumn("x", []float64{2}))
	require.NoError(t, err)
	_, err = p.Predict(missing)
	var sm *mlerr.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "cat", sm.Column)
}

func TestUnseenCategoryStillPredicts(t *testing.T) {
	p := New(multiplicativeRoles(), "price", model.NewLinearRegression(), WithLogTarget())
	require.NoError(t, p.Fit(multiplicativeTable(t)))

	novel, err := table.New(
		table.NumericColumn("x", []float64{2}),
		table.CategoricalColumn("cat", []string{"Z"}),
	)
	require.NoError(t, err)
	preds, err := p.Predict(novel)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.False(t, math.IsNaN(preds[0]))
	// The zero indicator block means Z is scored like the reference
	// category A, so the prediction follows the x trend.
	assert.InDelta(t, 150, preds[0], 1)
}

func TestPredictTablePreservesRowOrderUnderPermutation(t *testing.T) {
	p := New(multiplicativeRoles(), "price", model.NewLinearRegression(), WithLogTarget())
	require.NoError(t, p.Fit(multiplicativeTable(t)))

	base := multiplicativeTable(t)
	perm := base.SelectRows([]int{2, 0, 1})

	basePreds, err := p.PredictTable(base, "id")
	require.NoError(t, err)
	permPreds, err := p.PredictTable(perm, "id")
	require.NoError(t, err)

	assert.Equal(t, []string{"3", "1", "2"}, []string{permPreds[0].ID, permPreds[1].ID, permPreds[2].ID})

	byID := make(map[string]float64)
	for _, pr := range basePreds {
		byID[pr.ID] = pr.Value
	}
	for _, pr := range permPreds {
		assert.InDelta(t, byID[pr.ID], pr.Value, 1e-9, "prediction must follow its row")
	}
}

func TestPolynomialOptionChangesFeatureNames(t *testing.T) {
	tbl, err := table.New(
		table.NumericColumn("a", []float64{1, 2, 3, 4}),
		table.NumericColumn("b", []float64{2, 1, 4, 3}),
		table.NumericColumn("price", []float64{10, 20, 30, 40}),
	)
	require.NoError(t, err)
	roles := table.RoleSet{Numeric: []string{"a", "b"}}

	p := New(roles, "price", model.NewLinearRegression(), WithPolynomialFeatures())
	require.NoError(t, p.Fit(tbl))
	assert.Equal(t, []string{"a", "b", "a*b"}, p.FeatureNames())
	assert.False(t, p.IsLogTarget())
}
