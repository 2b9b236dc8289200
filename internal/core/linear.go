package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression fits an ordinary least squares model. When Positive is
// set the coefficients are constrained to be non-negative and the model is
// solved by projected gradient descent instead of the closed form.
type LinearRegression struct {
	FitIntercept bool    `json:"fit_intercept"`
	Tol          float64 `json:"tol"`
	Positive     bool    `json:"positive"`

	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

var _ Regressor = (*LinearRegression)(nil)

func (m *LinearRegression) Fit(features [][]float64, target []float64) error {
	rows := len(features)
	if rows == 0 || rows != len(target) {
		return fmt.Errorf("%w: feature matrix and target are empty or misaligned", ErrTraining)
	}
	cols := len(features[0])
	if cols == 0 {
		return fmt.Errorf("%w: feature matrix has no columns", ErrTraining)
	}

	if m.Positive {
		return m.fitProjected(features, target)
	}

	width := cols
	if m.FitIntercept {
		width++
	}

	design := mat.NewDense(rows, width, nil)
	for i, row := range features {
		for j, v := range row {
			design.Set(i, j, v)
		}
		if m.FitIntercept {
			design.Set(i, cols, 1)
		}
	}
	rhs := mat.NewVecDense(rows, append([]float64(nil), target...))

	var solution mat.VecDense
	if err := solution.SolveVec(design, rhs); err != nil {
		return fmt.Errorf("%w: least squares solve: %v", ErrTraining, err)
	}

	m.Coefficients = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.Coefficients[j] = solution.AtVec(j)
	}
	if m.FitIntercept {
		m.Intercept = solution.AtVec(cols)
	} else {
		m.Intercept = 0
	}

	return nil
}

// fitProjected minimizes the squared error by gradient descent, clamping
// coefficients at zero after each step. The intercept stays unconstrained.
func (m *LinearRegression) fitProjected(features [][]float64, target []float64) error {
	rows, cols := len(features), len(features[0])

	var scale float64
	for _, row := range features {
		for _, v := range row {
			scale += v * v
		}
	}
	if m.FitIntercept {
		scale += float64(rows)
	}
	if scale == 0 {
		return fmt.Errorf("%w: feature matrix is all zeros", ErrTraining)
	}
	step := 1.0 / scale

	tol := m.Tol
	if tol <= 0 {
		tol = 1e-6
	}

	coefs := make([]float64, cols)
	intercept := 0.0

	const maxIterations = 10000
	for iter := 0; iter < maxIterations; iter++ {
		gradients := make([]float64, cols)
		var interceptGrad float64
		for i, row := range features {
			prediction := intercept
			for j, v := range row {
				prediction += coefs[j] * v
			}
			residual := prediction - target[i]
			for j, v := range row {
				gradients[j] += residual * v
			}
			interceptGrad += residual
		}

		var maxDelta float64
		for j := range coefs {
			next := coefs[j] - step*gradients[j]
			if next < 0 {
				next = 0
			}
			maxDelta = math.Max(maxDelta, math.Abs(next-coefs[j]))
			coefs[j] = next
		}
		if m.FitIntercept {
			next := intercept - step*interceptGrad
			maxDelta = math.Max(maxDelta, math.Abs(next-intercept))
			intercept = next
		}

		if maxDelta < tol {
			break
		}
	}

	for _, c := range coefs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: projected gradient diverged", ErrTraining)
		}
	}

	m.Coefficients = coefs
	m.Intercept = intercept
	return nil
}

func (m *LinearRegression) Predict(features [][]float64) ([]float64, error) {
	if m.Coefficients == nil {
		return nil, fmt.Errorf("%w: model is not fitted", ErrTraining)
	}

	predictions := make([]float64, len(features))
	for i, row := range features {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("%w: expected %d features, got %d", ErrTraining, len(m.Coefficients), len(row))
		}
		p := m.Intercept
		for j, v := range row {
			p += m.Coefficients[j] * v
		}
		predictions[i] = p
	}
	return predictions, nil
}
