package core

// MeanSquaredError returns the average squared difference between predictions
// and true targets.
func MeanSquaredError(truth, predictions []float64) float64 {
	var sum float64
	for i, y := range truth {
		diff := predictions[i] - y
		sum += diff * diff
	}
	return sum / float64(len(truth))
}

// RSquared returns the coefficient of determination. A constant target yields
// 1 for a perfect fit and 0 otherwise.
func RSquared(truth, predictions []float64) float64 {
	var mean float64
	for _, y := range truth {
		mean += y
	}
	mean /= float64(len(truth))

	var ssRes, ssTot float64
	for i, y := range truth {
		res := y - predictions[i]
		ssRes += res * res
		tot := y - mean
		ssTot += tot * tot
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
