package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/eval"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/model"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/pipeline"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

func searchTable(t *testing.T, n int) (*table.FeatureTable, table.RoleSet) {
	t.Helper()
	x := make([]float64, n)
	price := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i%6) + 1
		price[i] = 100 * math.Pow(1.4, x[i])
	}
	tbl, err := table.New(
		table.NumericColumn("x", x),
		table.NumericColumn("price", price),
	)
	require.NoError(t, err)
	return tbl, table.RoleSet{Numeric: []string{"x"}}
}

func ridgeBuilder(roles table.RoleSet) func(Params) *pipeline.Pipeline {
	return func(p Params) *pipeline.Pipeline {
		r := model.NewRidge(1)
		if v, ok := p["alpha"]; ok {
			r.Alpha = v.(float64)
		}
		if v, ok := p["solver"]; ok {
			r.Solver = v.(string)
		}
		return pipeline.New(roles, "price", r, pipeline.WithLogTarget())
	}
}

func TestSingleCandidateGridMatchesPlainCrossValidation(t *testing.T) {
	tbl, roles := searchTable(t, 30)
	build := ridgeBuilder(roles)

	gs := &GridSearchCV{
		Build:     build,
		ParamGrid: map[string][]any{"alpha": {1.0}},
		Folds:     5,
	}
	res, err := gs.Run(tbl, "price")
	require.NoError(t, err)

	spec := eval.ModelSpec{
		Name:  "ridge",
		Build: func() *pipeline.Pipeline { return build(Params{"alpha": 1.0}) },
	}
	plain, err := eval.CrossVal(spec, tbl, "price", 5, eval.NegMSE)
	require.NoError(t, err)

	assert.Equal(t, Params{"alpha": 1.0}, res.BestParams)
	assert.Equal(t, plain, res.BestScore)
	require.Len(t, res.Candidates, 1)
}

func TestGridSearchPicksLowestPenaltyOnNoiselessData(t *testing.T) {
	tbl, roles := searchTable(t, 30)
	gs := &GridSearchCV{
		Build:     ridgeBuilder(roles),
		ParamGrid: map[string][]any{"alpha": {100.0, 1.0, 1e-6}},
		Folds:     5,
	}
	res, err := gs.Run(tbl, "price")
	require.NoError(t, err)
	// Noiseless data wants no regularization.
	assert.Equal(t, 1e-6, res.BestParams["alpha"])
	require.Len(t, res.Candidates, 3)
}

func TestGridSearchEnumeratesCartesianProductInOrder(t *testing.T) {
	tbl, roles := searchTable(t, 30)
	gs := &GridSearchCV{
		Build: ridgeBuilder(roles),
		ParamGrid: map[string][]any{
			"alpha":  {1.0, 2.0},
			"solver": {model.SolverCholesky},
		},
		Folds: 5,
	}
	res, err := gs.Run(tbl, "price")
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)
	// Keys sort as alpha, solver; alpha values keep given order.
	assert.Equal(t, 1.0, res.Candidates[0].Params["alpha"])
	assert.Equal(t, 2.0, res.Candidates[1].Params["alpha"])
}

func TestGridSearchTieBreaksToFirstCandidate(t *testing.T) {
	tbl, roles := searchTable(t, 30)
	gs := &GridSearchCV{
		Build: ridgeBuilder(roles),
		// "auto" resolves to the cholesky solver, so the two candidates are
		// distinct configurations with identical scores; the first
		// enumerated must win.
		ParamGrid: map[string][]any{
			"alpha":  {1.0},
			"solver": {model.SolverAuto, model.SolverCholesky},
		},
		Folds: 5,
	}
	res, err := gs.Run(tbl, "price")
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, res.Candidates[0].Score, res.Candidates[1].Score)
	assert.Equal(t, model.SolverAuto, res.Candidates[0].Params["solver"])
	assert.Equal(t, res.Candidates[0].Params, res.BestParams)
}

func TestGridSearchEmptyCandidateSetFails(t *testing.T) {
	tbl, roles := searchTable(t, 30)
	gs := &GridSearchCV{
		Build:     ridgeBuilder(roles),
		ParamGrid: map[string][]any{"alpha": {}},
	}
	_, err := gs.Run(tbl, "price")
	assert.ErrorIs(t, err, mlerr.ErrEmptyGrid)
}
