package preprocess

// PairwiseProducts expands a numeric matrix with the product of every pair
// of two distinct columns. The original columns come first, then the
// products in (j, k) order with j < k. No squares and no bias column are
// added. The expanded feature names are returned alongside the data.
func PairwiseProducts(X [][]float64, names []string) ([][]float64, []string) {
	c := len(names)
	outNames := make([]string, 0, c+c*(c-1)/2)
	outNames = append(outNames, names...)
	for j := 0; j < c; j++ {
		for k := j + 1; k < c; k++ {
			outNames = append(outNames, names[j]+"*"+names[k])
		}
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		expanded := make([]float64, 0, len(outNames))
		expanded = append(expanded, row...)
		for j := 0; j < c; j++ {
			for k := j + 1; k < c; k++ {
				expanded = append(expanded, row[j]*row[k])
			}
		}
		out[i] = expanded
	}
	return out, outNames
}
