package core

import (
	"fmt"

	"train-service/pkg/models"
)

// TrainAndEvaluate splits the dataset deterministically, fits the model on
// the train partition, and computes r2/mse for both partitions.
func TrainAndEvaluate(model Regressor, features [][]float64, target []float64) (models.Metrics, error) {
	trainX, testX, trainY, testY := TrainTestSplit(features, target, TestFraction, SplitSeed)
	if len(trainX) == 0 || len(testX) == 0 {
		return models.Metrics{}, fmt.Errorf("%w: dataset too small to split into train and test partitions", ErrTraining)
	}

	if err := model.Fit(trainX, trainY); err != nil {
		return models.Metrics{}, err
	}

	trainPredictions, err := model.Predict(trainX)
	if err != nil {
		return models.Metrics{}, err
	}
	testPredictions, err := model.Predict(testX)
	if err != nil {
		return models.Metrics{}, err
	}

	return models.Metrics{
		Train: models.SplitMetrics{
			R2Score:          RSquared(trainY, trainPredictions),
			MeanSquaredError: MeanSquaredError(trainY, trainPredictions),
		},
		Test: models.SplitMetrics{
			R2Score:          RSquared(testY, testPredictions),
			MeanSquaredError: MeanSquaredError(testY, testPredictions),
		},
	}, nil
}
