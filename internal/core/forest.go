package core

import (
	"fmt"
	"math/rand"
)

type ForestConfig struct {
	NEstimators int
	Criterion   string
	MaxDepth    int
}

// RandomForest averages NEstimators regression trees, each fitted on a
// bootstrap resample of the training data. The criterion is recorded as
// configured; splits always minimize squared error.
type RandomForest struct {
	NEstimators int               `json:"n_estimators"`
	Criterion   string            `json:"criterion"`
	MaxDepth    int               `json:"max_depth"`
	Trees       []*RegressionTree `json:"trees"`
}

var _ Regressor = (*RandomForest)(nil)

func NewRandomForest(cfg ForestConfig) *RandomForest {
	return &RandomForest{
		NEstimators: cfg.NEstimators,
		Criterion:   cfg.Criterion,
		MaxDepth:    cfg.MaxDepth,
	}
}

func (m *RandomForest) Fit(features [][]float64, target []float64) error {
	n := len(features)
	if n == 0 || n != len(target) {
		return fmt.Errorf("%w: feature matrix and target are empty or misaligned", ErrTraining)
	}
	if m.NEstimators <= 0 {
		return fmt.Errorf("%w: n_estimators must be positive", ErrTraining)
	}

	rng := rand.New(rand.NewSource(SplitSeed))
	m.Trees = make([]*RegressionTree, 0, m.NEstimators)

	for i := 0; i < m.NEstimators; i++ {
		sampleFeatures := make([][]float64, n)
		sampleTarget := make([]float64, n)
		for j := 0; j < n; j++ {
			idx := rng.Intn(n)
			sampleFeatures[j] = features[idx]
			sampleTarget[j] = target[idx]
		}

		tree := &RegressionTree{MaxDepth: m.MaxDepth}
		if err := tree.Fit(sampleFeatures, sampleTarget); err != nil {
			return err
		}
		m.Trees = append(m.Trees, tree)
	}

	return nil
}

func (m *RandomForest) Predict(features [][]float64) ([]float64, error) {
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("%w: forest is not fitted", ErrTraining)
	}

	sums := make([]float64, len(features))
	for _, tree := range m.Trees {
		predictions, err := tree.Predict(features)
		if err != nil {
			return nil, err
		}
		for i, p := range predictions {
			sums[i] += p
		}
	}

	for i := range sums {
		sums[i] /= float64(len(m.Trees))
	}
	return sums, nil
}
