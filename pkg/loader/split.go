// Package loader splits feature tables into training, validation and
// cross-validation folds.
package loader

import (
	"math/rand"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

// TrainTestSplit shuffles the table's rows with the given seed and splits
// them into train and test sets by ratio.
func TrainTestSplit(t *table.FeatureTable, testRatio float64, seed int64) (train, test *table.FeatureTable) {
	n := t.NumRows()
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testRatio)
	test = t.SelectRows(indices[:nTest])
	train = t.SelectRows(indices[nTest:])
	return train, test
}

// KFold partitions row indices 0..n-1 into k contiguous folds. The first
// n%k folds carry one extra row. The assignment is deterministic so repeated
// runs score identically.
func KFold(n, k int) [][]int {
	folds := make([][]int, k)
	base := n / k
	extra := n % k
	next := 0
	for f := 0; f < k; f++ {
		size := base
		if f < extra {
			size++
		}
		fold := make([]int, 0, size)
		for i := 0; i < size; i++ {
			fold = append(fold, next)
			next++
		}
		folds[f] = fold
	}
	return folds
}

// Complement returns all indices 0..n-1 not present in fold, in order. It is
// the training index set for a held-out fold.
func Complement(n int, fold []int) []int {
	inFold := make(map[int]struct{}, len(fold))
	for _, i := range fold {
		inFold[i] = struct{}{}
	}
	out := make([]int, 0, n-len(fold))
	for i := 0; i < n; i++ {
		if _, held := inFold[i]; !held {
			out = append(out, i)
		}
	}
	return out
}
