package core

import (
	"fmt"
	"sort"
)

const minSamplesSplit = 2

// TreeNode is one node of a fitted regression tree. Leaves predict the mean
// of the training targets that reached them.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Value     float64   `json:"value"`
	Leaf      bool      `json:"leaf,omitempty"`
}

// RegressionTree is a CART regression tree splitting on variance reduction.
// MaxDepth of zero means unlimited depth.
type RegressionTree struct {
	MaxDepth int       `json:"max_depth"`
	Root     *TreeNode `json:"root"`
}

var _ Regressor = (*RegressionTree)(nil)

func (t *RegressionTree) Fit(features [][]float64, target []float64) error {
	if len(features) == 0 || len(features) != len(target) {
		return fmt.Errorf("%w: feature matrix and target are empty or misaligned", ErrTraining)
	}

	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}
	t.Root = t.grow(features, target, indices, 0)
	return nil
}

func (t *RegressionTree) grow(features [][]float64, target []float64, indices []int, depth int) *TreeNode {
	value := meanAt(target, indices)

	if len(indices) < minSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return &TreeNode{Value: value, Leaf: true}
	}

	feature, threshold, ok := bestSplit(features, target, indices)
	if !ok {
		return &TreeNode{Value: value, Leaf: true}
	}

	var left, right []int
	for _, idx := range indices {
		if features[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &TreeNode{Value: value, Leaf: true}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Value:     value,
		Left:      t.grow(features, target, left, depth+1),
		Right:     t.grow(features, target, right, depth+1),
	}
}

// bestSplit scans every feature for the threshold with the largest reduction
// in summed squared error, using prefix sums over the sorted column.
func bestSplit(features [][]float64, target []float64, indices []int) (int, float64, bool) {
	n := len(indices)
	numFeatures := len(features[indices[0]])

	var total, totalSq float64
	for _, idx := range indices {
		total += target[idx]
		totalSq += target[idx] * target[idx]
	}
	parentSSE := totalSq - total*total/float64(n)

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0

	order := make([]int, n)
	for feature := 0; feature < numFeatures; feature++ {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool {
			return features[order[a]][feature] < features[order[b]][feature]
		})

		var leftSum, leftSq float64
		for i := 0; i < n-1; i++ {
			y := target[order[i]]
			leftSum += y
			leftSq += y * y

			current, next := features[order[i]][feature], features[order[i+1]][feature]
			if current == next {
				continue
			}

			leftN := float64(i + 1)
			rightN := float64(n - i - 1)
			rightSum := total - leftSum
			rightSq := totalSq - leftSq

			leftSSE := leftSq - leftSum*leftSum/leftN
			rightSSE := rightSq - rightSum*rightSum/rightN
			gain := parentSSE - leftSSE - rightSSE

			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (current + next) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func meanAt(target []float64, indices []int) float64 {
	var sum float64
	for _, idx := range indices {
		sum += target[idx]
	}
	return sum / float64(len(indices))
}

func (t *RegressionTree) Predict(features [][]float64) ([]float64, error) {
	if t.Root == nil {
		return nil, fmt.Errorf("%w: tree is not fitted", ErrTraining)
	}

	predictions := make([]float64, len(features))
	for i, row := range features {
		node := t.Root
		for !node.Leaf && node.Left != nil {
			if row[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		predictions[i] = node.Value
	}
	return predictions, nil
}
