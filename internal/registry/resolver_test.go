package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCoercesStringBool(t *testing.T) {
	reg := NewRegistry()

	resolved, err := reg.Resolve(map[string]any{
		"model":           "LinearRegression",
		"hyperparameters": map[string]any{"fit_intercept": "false"},
	})
	require.NoError(t, err)

	assert.Equal(t, "LinearRegression", resolved.Model)
	assert.False(t, resolved.Params.Bool("fit_intercept", true))
}

func TestResolveBoolLiterals(t *testing.T) {
	reg := NewRegistry()

	for _, value := range []any{true, "true", "1", "YES"} {
		resolved, err := reg.Resolve(map[string]any{"model": "LinearRegression", "positive": value})
		require.NoError(t, err, "value %v", value)
		assert.True(t, resolved.Params.Bool("positive", false), "value %v", value)
	}

	for _, value := range []any{false, "False", "0", "no"} {
		resolved, err := reg.Resolve(map[string]any{"model": "LinearRegression", "positive": value})
		require.NoError(t, err, "value %v", value)
		assert.False(t, resolved.Params.Bool("positive", true), "value %v", value)
	}

	_, err := reg.Resolve(map[string]any{"model": "LinearRegression", "positive": "maybe"})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)
}

func TestResolveDefaultsToLinearRegression(t *testing.T) {
	reg := NewRegistry()

	resolved, err := reg.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "LinearRegression", resolved.Model)

	// without a "model" key the whole map is hyperparameters
	resolved, err = reg.Resolve(map[string]any{"fit_intercept": false})
	require.NoError(t, err)
	assert.Equal(t, "LinearRegression", resolved.Model)
	assert.False(t, resolved.Params.Bool("fit_intercept", true))
}

func TestResolveSiblingKeysAsHyperparameters(t *testing.T) {
	reg := NewRegistry()

	resolved, err := reg.Resolve(map[string]any{
		"model":        "RandomForestRegressor",
		"n_estimators": float64(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resolved.Params.Int("n_estimators", 100))
}

func TestResolveUnknownModel(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(map[string]any{"model": "SupportVectorRegressor"})
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestResolveRejectsUnknownParameter(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(map[string]any{
		"model":           "LinearRegression",
		"hyperparameters": map[string]any{"n_estimators": float64(10)},
	})
	assert.ErrorIs(t, err, ErrUnsupportedParameter)
	assert.ErrorContains(t, err, "n_estimators")
}

func TestResolveIntCoercion(t *testing.T) {
	reg := NewRegistry()

	resolved, err := reg.Resolve(map[string]any{"model": "RandomForestRegressor", "n_estimators": "25"})
	require.NoError(t, err)
	assert.Equal(t, 25, resolved.Params.Int("n_estimators", 100))

	_, err = reg.Resolve(map[string]any{"model": "RandomForestRegressor", "n_estimators": 1.5})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)

	_, err = reg.Resolve(map[string]any{"model": "RandomForestRegressor", "n_estimators": float64(0)})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)
}

func TestResolveFloatBounds(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(map[string]any{"model": "GradientBoostingRegressor", "subsample": 1.5})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)

	resolved, err := reg.Resolve(map[string]any{"model": "GradientBoostingRegressor", "subsample": "0.5"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, resolved.Params.Float("subsample", 1.0))
}

func TestResolveEnumMembership(t *testing.T) {
	reg := NewRegistry()

	resolved, err := reg.Resolve(map[string]any{"model": "RandomForestRegressor", "criterion": "poisson"})
	require.NoError(t, err)
	assert.Equal(t, "poisson", resolved.Params.Enum("criterion", "squared_error"))

	_, err = reg.Resolve(map[string]any{"model": "RandomForestRegressor", "criterion": "gini"})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)
}

func TestResolveNullable(t *testing.T) {
	reg := NewRegistry()

	resolved, err := reg.Resolve(map[string]any{"model": "RandomForestRegressor", "max_depth": nil})
	require.NoError(t, err)
	_, ok := resolved.Params.MaybeInt("max_depth")
	assert.False(t, ok)

	// tol is not nullable, empty string is a missing value
	_, err = reg.Resolve(map[string]any{"model": "LinearRegression", "tol": ""})
	assert.ErrorIs(t, err, ErrMissingRequiredValue)
}

func TestResolveRejectsNonStringModel(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(map[string]any{"model": float64(1)})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)

	_, err = reg.Resolve(map[string]any{"model": "LinearRegression", "hyperparameters": "oops"})
	assert.ErrorIs(t, err, ErrInvalidParameterValue)
}

func TestCatalogListsAllModels(t *testing.T) {
	catalog := NewRegistry().Catalog()

	names := make([]string, 0, len(catalog.Models))
	for _, model := range catalog.Models {
		names = append(names, model.Name)
	}
	assert.Equal(t, []string{"LinearRegression", "RandomForestRegressor", "GradientBoostingRegressor"}, names)

	require.NotEmpty(t, catalog.Models[0].Parameters)
	assert.Equal(t, "fit_intercept", catalog.Models[0].Parameters[0].Name)
	assert.Equal(t, "bool", catalog.Models[0].Parameters[0].Type)
}
