package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRMSE(t *testing.T) {
	assert.Equal(t, 0.0, RMSE([]float64{1, 2, 3}, []float64{1, 2, 3}))
	assert.InDelta(t, 2, RMSE([]float64{0, 0}, []float64{2, -2}), 1e-12)
}

func TestMAE(t *testing.T) {
	assert.InDelta(t, 1.5, MAE([]float64{0, 0}, []float64{1, 2}), 1e-12)
}

func TestR2(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, R2(y, y))
	// Predicting the mean scores zero.
	assert.InDelta(t, 0, R2(y, []float64{2.5, 2.5, 2.5, 2.5}), 1e-12)
}
