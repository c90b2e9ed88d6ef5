package preprocess

import (
	"errors"
	"sort"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/mlerr"
)

// OneHotEncoder one-hot encodes a single categorical column. The first
// category in sorted order is the dropped reference, so every indicator
// coefficient reads as an effect relative to it. A value never seen during
// Fit maps to an all-zero indicator row, indistinguishable from the
// reference category; it is not an error.
type OneHotEncoder struct {
	// Categories holds the observed category values in sorted order.
	// Categories[0] is the dropped reference.
	Categories []string

	index  map[string]int
	fitted bool
}

// NewOneHotEncoder returns an unfitted encoder.
func NewOneHotEncoder() *OneHotEncoder { return &OneHotEncoder{} }

// Fit records the distinct categories present in labels.
func (e *OneHotEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.New("one-hot encoder: no rows to fit")
	}
	seen := make(map[string]struct{})
	for _, v := range labels {
		seen[v] = struct{}{}
	}
	e.Categories = make([]string, 0, len(seen))
	for v := range seen {
		e.Categories = append(e.Categories, v)
	}
	sort.Strings(e.Categories)
	e.index = make(map[string]int, len(e.Categories))
	for i, v := range e.Categories {
		e.index[v] = i
	}
	e.fitted = true
	return nil
}

// Width returns the number of indicator columns the encoder emits, one per
// non-reference category.
func (e *OneHotEncoder) Width() int {
	if len(e.Categories) == 0 {
		return 0
	}
	return len(e.Categories) - 1
}

// Transform encodes labels into indicator rows of Width() columns.
func (e *OneHotEncoder) Transform(labels []string) ([][]float64, error) {
	if !e.fitted {
		return nil, mlerr.ErrNotFitted
	}
	w := e.Width()
	out := make([][]float64, len(labels))
	for i, v := range labels {
		row := make([]float64, w)
		if idx, ok := e.index[v]; ok && idx > 0 {
			row[idx-1] = 1
		}
		out[i] = row
	}
	return out, nil
}

// Names returns the expanded feature names for the indicator columns, in
// output order.
func (e *OneHotEncoder) Names(column string) []string {
	names := make([]string, 0, e.Width())
	for _, cat := range e.Categories[1:] {
		names = append(names, column+"="+cat)
	}
	return names
}
