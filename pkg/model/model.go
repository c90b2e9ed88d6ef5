package model

// Model is a generic supervised regression interface.
type Model interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
}

// LinearModel is a regressor with an explicit coefficient vector, one entry
// per input column, plus an intercept. The coefficient interpreter depends
// on this contract.
type LinearModel interface {
	Model
	Coef() []float64
	Intercept() float64
}
