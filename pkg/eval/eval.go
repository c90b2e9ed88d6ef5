// Package eval scores fitted pipelines: train/validation RMSE and R2
// reports, the null baseline, and leakage-safe k-fold cross-validation.
package eval

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/loader"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/model"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/pipeline"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

// DefaultFolds is the fold count used when none is given.
const DefaultFolds = 5

// ModelSpec names a pipeline configuration. Build returns a fresh unfitted
// pipeline, so cross-validation can refit independent instances per fold
// without sharing encoder or scaler state.
type ModelSpec struct {
	Name  string
	Build func() *pipeline.Pipeline
}

// EvaluationResult reports one model's fit quality on a train/validation
// split. RMSE is in target units; scores are coefficients of determination.
type EvaluationResult struct {
	Model      string
	TrainRMSE  float64
	ValRMSE    float64
	TrainScore float64
	ValScore   float64
}

// Scorer reduces true and predicted targets to a single goodness value,
// higher is better.
type Scorer func(yTrue, yPred []float64) float64

// R2Score scores by coefficient of determination.
func R2Score(yTrue, yPred []float64) float64 { return model.R2(yTrue, yPred) }

// NegMSE scores by negative mean squared error, so grid search maximizes it.
func NegMSE(yTrue, yPred []float64) float64 { return -model.MSE(yTrue, yPred) }

// NullRMSE is the error of predicting the training-target mean for every
// row, the baseline any model has to beat.
func NullRMSE(y []float64) float64 {
	mean := stat.Mean(y, nil)
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = mean
	}
	return model.RMSE(y, pred)
}

// Evaluate fits a fresh pipeline on the training split and reports errors
// and scores on both splits. The validation split is never seen during fit.
func Evaluate(spec ModelSpec, train, val *table.FeatureTable, target string) (EvaluationResult, error) {
	yTrain, err := train.Numeric(target)
	if err != nil {
		return EvaluationResult{}, err
	}
	yVal, err := val.Numeric(target)
	if err != nil {
		return EvaluationResult{}, err
	}
	p := spec.Build()
	if err := p.Fit(train); err != nil {
		return EvaluationResult{}, fmt.Errorf("fitting %s: %w", spec.Name, err)
	}
	trainPred, err := p.Predict(train)
	if err != nil {
		return EvaluationResult{}, err
	}
	valPred, err := p.Predict(val)
	if err != nil {
		return EvaluationResult{}, err
	}
	return EvaluationResult{
		Model:      spec.Name,
		TrainRMSE:  model.RMSE(yTrain, trainPred),
		ValRMSE:    model.RMSE(yVal, valPred),
		TrainScore: model.R2(yTrain, trainPred),
		ValScore:   model.R2(yVal, valPred),
	}, nil
}

// CrossVal runs k-fold cross-validation of a pipeline specification and
// returns the mean fold score. Every fold fits a fresh pipeline on the
// remaining rows only, so the held-out fold never leaks into preprocessing
// statistics or the estimator.
func CrossVal(spec ModelSpec, t *table.FeatureTable, target string, k int, score Scorer) (float64, error) {
	if k < 2 {
		return 0, fmt.Errorf("cross-validation needs at least 2 folds, got %d", k)
	}
	n := t.NumRows()
	if n < k {
		return 0, fmt.Errorf("cross-validation with %d folds needs at least %d rows, got %d", k, k, n)
	}
	folds := loader.KFold(n, k)
	total := 0.0
	for _, fold := range folds {
		trainPart := t.SelectRows(loader.Complement(n, fold))
		heldOut := t.SelectRows(fold)
		p := spec.Build()
		if err := p.Fit(trainPart); err != nil {
			return 0, fmt.Errorf("fitting %s fold: %w", spec.Name, err)
		}
		pred, err := p.Predict(heldOut)
		if err != nil {
			return 0, err
		}
		yHeld, err := heldOut.Numeric(target)
		if err != nil {
			return 0, err
		}
		total += score(yHeld, pred)
	}
	return total / float64(k), nil
}

// CrossValScore is CrossVal with the regressor's native R2 scoring.
func CrossValScore(spec ModelSpec, t *table.FeatureTable, target string, k int) (float64, error) {
	return CrossVal(spec, t, target, k, R2Score)
}

// Compare evaluates every spec on the same split and returns one result per
// model, logging progress as it goes.
func Compare(specs []ModelSpec, train, val *table.FeatureTable, target string, log zerolog.Logger) ([]EvaluationResult, error) {
	results := make([]EvaluationResult, 0, len(specs))
	for _, spec := range specs {
		res, err := Evaluate(spec, train, val, target)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("model", res.Model).
			Float64("train_rmse", res.TrainRMSE).
			Float64("val_rmse", res.ValRMSE).
			Float64("train_score", res.TrainScore).
			Float64("val_score", res.ValScore).
			Msg("evaluated model")
		results = append(results, res)
	}
	return results, nil
}
