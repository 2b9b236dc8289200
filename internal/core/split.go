package core

import (
	"math"
	"math/rand"
)

const (
	// SplitSeed fixes every random source in the engine so that two runs over
	// identical data and configuration produce identical metrics.
	SplitSeed = 42

	// TestFraction is the share of rows held out for evaluation.
	TestFraction = 0.2
)

// TrainTestSplit shuffles the rows with a fixed seed and holds out
// ceil(n * fraction) of them for testing.
func TrainTestSplit(features [][]float64, target []float64, fraction float64, seed int64) (
	trainX [][]float64, testX [][]float64, trainY []float64, testY []float64,
) {
	n := len(features)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testSize := int(math.Ceil(float64(n) * fraction))
	if testSize > n {
		testSize = n
	}

	for i, idx := range perm {
		if i < testSize {
			testX = append(testX, features[idx])
			testY = append(testY, target[idx])
		} else {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, target[idx])
		}
	}
	return trainX, testX, trainY, testY
}
