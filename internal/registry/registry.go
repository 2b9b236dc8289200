package registry

import "train-service/internal/core"

// DefaultModel is used when a run configuration does not name a model.
const DefaultModel = "LinearRegression"

func ptr(v float64) *float64 { return &v }

// NewRegistry builds the catalog of supported regression models. Adding a
// model means adding an entry here; the resolver is driven entirely by the
// parameter schemas.
func NewRegistry() *Registry {
	return newRegistry(
		&ModelSpec{
			Name: "LinearRegression",
			Parameters: []ParameterSpec{
				{Name: "fit_intercept", Kind: KindBool, Default: true, Options: []any{true, false}},
				{Name: "tol", Kind: KindFloat, Default: 1e-6, Min: ptr(0.0), Step: 1e-6},
				{Name: "positive", Kind: KindBool, Default: false, Options: []any{true, false}},
			},
			Build: func(p Params) core.Regressor {
				return &core.LinearRegression{
					FitIntercept: p.Bool("fit_intercept", true),
					Tol:          p.Float("tol", 1e-6),
					Positive:     p.Bool("positive", false),
				}
			},
		},
		&ModelSpec{
			Name: "RandomForestRegressor",
			Parameters: []ParameterSpec{
				{Name: "n_estimators", Kind: KindInt, Default: 100, Min: ptr(1), Step: 1},
				{Name: "criterion", Kind: KindEnum, Default: "squared_error", Options: []any{
					"squared_error", "absolute_error", "friedman_mse", "poisson",
				}},
				{Name: "max_depth", Kind: KindInt, Default: nil, Min: ptr(1), Step: 1, Nullable: true},
			},
			Build: func(p Params) core.Regressor {
				maxDepth, _ := p.MaybeInt("max_depth")
				return core.NewRandomForest(core.ForestConfig{
					NEstimators: p.Int("n_estimators", 100),
					Criterion:   p.Enum("criterion", "squared_error"),
					MaxDepth:    maxDepth,
				})
			},
		},
		&ModelSpec{
			Name: "GradientBoostingRegressor",
			Parameters: []ParameterSpec{
				{Name: "loss", Kind: KindEnum, Default: "squared_error", Options: []any{
					"squared_error", "absolute_error", "huber", "quantile",
				}},
				{Name: "learning_rate", Kind: KindFloat, Default: 0.1, Min: ptr(0.0), Step: 0.01},
				{Name: "n_estimators", Kind: KindInt, Default: 100, Min: ptr(1), Step: 1},
				{Name: "subsample", Kind: KindFloat, Default: 1.0, Min: ptr(0.01), Max: ptr(1.0), Step: 0.01},
			},
			Build: func(p Params) core.Regressor {
				return core.NewGradientBoosting(core.BoostingConfig{
					Loss:         p.Enum("loss", "squared_error"),
					LearningRate: p.Float("learning_rate", 0.1),
					NEstimators:  p.Int("n_estimators", 100),
					Subsample:    p.Float("subsample", 1.0),
				})
			},
		},
	)
}
