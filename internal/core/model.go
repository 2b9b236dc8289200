package core

import "errors"

// ErrTraining marks numerical or algorithmic failures during fit or predict.
var ErrTraining = errors.New("training failed")

// Regressor is a trainable regression model. Implementations carry exported
// fields so a fitted model can be serialized with encoding/json.
type Regressor interface {
	Fit(features [][]float64, target []float64) error

	Predict(features [][]float64) ([]float64, error)
}
