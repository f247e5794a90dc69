package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Split partitions rows into a training and a held-out test set.
// The permutation depends only on seed and len(rows), so every caller using
// the same seed sees the same partition.
func Split(rows []LabeledObservation, testSize float64, seed uint64) (train, test []LabeledObservation, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0, 1), got %v", testSize)
	}

	n := len(rows)
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, fmt.Errorf("cannot split %d rows with test size %v", n, testSize)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	test = make([]LabeledObservation, 0, nTest)
	for _, idx := range perm[:nTest] {
		test = append(test, rows[idx])
	}

	train = make([]LabeledObservation, 0, n-nTest)
	for _, idx := range perm[nTest:] {
		train = append(train, rows[idx])
	}

	return train, test, nil
}

// Fold is one cross-validation partition, expressed as row indices.
type Fold struct {
	Train []int
	Test  []int
}

// KFold splits n rows into k contiguous folds without shuffling.
// The first n%k folds hold one extra row.
func KFold(n, k int) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("fold count must be at least 2, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot make %d folds from %d rows", k, n)
	}

	folds := make([]Fold, 0, k)
	start := 0
	for i := 0; i < k; i++ {
		size := n / k
		if i < n%k {
			size++
		}
		end := start + size

		fold := Fold{
			Test:  make([]int, 0, size),
			Train: make([]int, 0, n-size),
		}
		for j := 0; j < n; j++ {
			if j >= start && j < end {
				fold.Test = append(fold.Test, j)
			} else {
				fold.Train = append(fold.Train, j)
			}
		}
		folds = append(folds, fold)
		start = end
	}

	return folds, nil
}
