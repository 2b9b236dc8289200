package core

import (
	"fmt"
	"math/rand"
)

const boostingTreeDepth = 3

type BoostingConfig struct {
	Loss         string
	LearningRate float64
	NEstimators  int
	Subsample    float64
}

// GradientBoosting fits shallow regression trees to the residuals of the
// running prediction, starting from the target mean. The loss is recorded as
// configured; residuals are always taken against squared error.
type GradientBoosting struct {
	Loss         string            `json:"loss"`
	LearningRate float64           `json:"learning_rate"`
	NEstimators  int               `json:"n_estimators"`
	Subsample    float64           `json:"subsample"`
	Init         float64           `json:"init"`
	Trees        []*RegressionTree `json:"trees"`
}

var _ Regressor = (*GradientBoosting)(nil)

func NewGradientBoosting(cfg BoostingConfig) *GradientBoosting {
	return &GradientBoosting{
		Loss:         cfg.Loss,
		LearningRate: cfg.LearningRate,
		NEstimators:  cfg.NEstimators,
		Subsample:    cfg.Subsample,
	}
}

func (m *GradientBoosting) Fit(features [][]float64, target []float64) error {
	n := len(features)
	if n == 0 || n != len(target) {
		return fmt.Errorf("%w: feature matrix and target are empty or misaligned", ErrTraining)
	}
	if m.NEstimators <= 0 {
		return fmt.Errorf("%w: n_estimators must be positive", ErrTraining)
	}
	if m.Subsample <= 0 || m.Subsample > 1 {
		return fmt.Errorf("%w: subsample must be in (0, 1]", ErrTraining)
	}

	var sum float64
	for _, y := range target {
		sum += y
	}
	m.Init = sum / float64(n)

	current := make([]float64, n)
	for i := range current {
		current[i] = m.Init
	}

	rng := rand.New(rand.NewSource(SplitSeed))
	sampleSize := int(m.Subsample * float64(n))
	if sampleSize < 1 {
		sampleSize = 1
	}

	m.Trees = make([]*RegressionTree, 0, m.NEstimators)
	for i := 0; i < m.NEstimators; i++ {
		residuals := make([]float64, n)
		for j := range residuals {
			residuals[j] = target[j] - current[j]
		}

		sampleIdx := rng.Perm(n)[:sampleSize]
		sampleFeatures := make([][]float64, sampleSize)
		sampleResiduals := make([]float64, sampleSize)
		for j, idx := range sampleIdx {
			sampleFeatures[j] = features[idx]
			sampleResiduals[j] = residuals[idx]
		}

		tree := &RegressionTree{MaxDepth: boostingTreeDepth}
		if err := tree.Fit(sampleFeatures, sampleResiduals); err != nil {
			return err
		}
		m.Trees = append(m.Trees, tree)

		predictions, err := tree.Predict(features)
		if err != nil {
			return err
		}
		for j, p := range predictions {
			current[j] += m.LearningRate * p
		}
	}

	return nil
}

func (m *GradientBoosting) Predict(features [][]float64) ([]float64, error) {
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("%w: model is not fitted", ErrTraining)
	}

	predictions := make([]float64, len(features))
	for i := range predictions {
		predictions[i] = m.Init
	}
	for _, tree := range m.Trees {
		treePredictions, err := tree.Predict(features)
		if err != nil {
			return nil, err
		}
		for i, p := range treePredictions {
			predictions[i] += m.LearningRate * p
		}
	}
	return predictions, nil
}
