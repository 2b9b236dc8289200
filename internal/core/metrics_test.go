package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanSquaredError(t *testing.T) {
	assert.Equal(t, 0.0, MeanSquaredError([]float64{1, 2, 3}, []float64{1, 2, 3}))
	assert.InDelta(t, 1.0, MeanSquaredError([]float64{1, 2, 3}, []float64{2, 3, 4}), 1e-12)
	assert.InDelta(t, 4.0/3.0, MeanSquaredError([]float64{0, 0, 0}, []float64{2, 0, 0}), 1e-12)
}

func TestRSquared(t *testing.T) {
	assert.Equal(t, 1.0, RSquared([]float64{1, 2, 3}, []float64{1, 2, 3}))

	// predicting the mean gives zero
	assert.InDelta(t, 0.0, RSquared([]float64{1, 2, 3}, []float64{2, 2, 2}), 1e-12)

	// constant target: perfect fit is 1, anything else is 0
	assert.Equal(t, 1.0, RSquared([]float64{5, 5}, []float64{5, 5}))
	assert.Equal(t, 0.0, RSquared([]float64{5, 5}, []float64{4, 6}))
}

func TestTrainTestSplitIsDeterministic(t *testing.T) {
	features := make([][]float64, 10)
	target := make([]float64, 10)
	for i := range features {
		features[i] = []float64{float64(i)}
		target[i] = float64(i)
	}

	trainX1, testX1, trainY1, testY1 := TrainTestSplit(features, target, TestFraction, SplitSeed)
	trainX2, testX2, trainY2, testY2 := TrainTestSplit(features, target, TestFraction, SplitSeed)

	assert.Equal(t, trainX1, trainX2)
	assert.Equal(t, testX1, testX2)
	assert.Equal(t, trainY1, trainY2)
	assert.Equal(t, testY1, testY2)

	assert.Len(t, testX1, 2)
	assert.Len(t, trainX1, 8)
}
