// Package search implements exhaustive, cross-validated hyperparameter grid
// search.
package search

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/eval"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/pipeline"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

// Params maps hyperparameter names to candidate values for one grid point.
type Params map[string]any

// Candidate records the cross-validated score of one grid point.
type Candidate struct {
	Params Params
	Score  float64
}

// Result is the outcome of a grid search run.
type Result struct {
	BestParams Params
	BestScore  float64
	Candidates []Candidate
}

// GridSearchCV fits and cross-validates every combination in the Cartesian
// product of the candidate sets. Enumeration order is deterministic: keys
// sorted, values in given order, last key varying fastest; the first
// combination to reach the best score wins ties.
type GridSearchCV struct {
	// Build returns a fresh unfitted pipeline configured with the given
	// hyperparameters. Each candidate and each fold gets its own instance.
	Build func(Params) *pipeline.Pipeline

	ParamGrid map[string][]any
	Folds     int         // defaults to eval.DefaultFolds
	Scorer    eval.Scorer // defaults to eval.NegMSE, maximized
	Log       zerolog.Logger
}

// Run searches the grid on the given training split.
func (g *GridSearchCV) Run(t *table.FeatureTable, target string) (*Result, error) {
	keys := make([]string, 0, len(g.ParamGrid))
	for k := range g.ParamGrid {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(g.ParamGrid[k]) == 0 {
			return nil, fmt.Errorf("hyperparameter %q: %w", k, mlerr.ErrEmptyGrid)
		}
	}
	folds := g.Folds
	if folds <= 0 {
		folds = eval.DefaultFolds
	}
	scorer := g.Scorer
	if scorer == nil {
		scorer = eval.NegMSE
	}

	res := &Result{BestScore: 0}
	first := true
	counters := make([]int, len(keys))
	for {
		params := make(Params, len(keys))
		for i, k := range keys {
			params[k] = g.ParamGrid[k][counters[i]]
		}
		spec := eval.ModelSpec{
			Name:  fmt.Sprintf("%v", params),
			Build: func() *pipeline.Pipeline { return g.Build(params) },
		}
		score, err := eval.CrossVal(spec, t, target, folds, scorer)
		if err != nil {
			return nil, err
		}
		g.Log.Debug().Interface("params", params).Float64("score", score).Msg("scored grid candidate")
		res.Candidates = append(res.Candidates, Candidate{Params: params, Score: score})
		if first || score > res.BestScore {
			res.BestParams = params
			res.BestScore = score
			first = false
		}

		// Odometer increment over the candidate sets, last key fastest.
		i := len(keys) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(g.ParamGrid[keys[i]]) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return res, nil
}
