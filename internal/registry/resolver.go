package registry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"train-service/internal/core"
)

var (
	ErrUnknownModel          = errors.New("unknown model")
	ErrUnsupportedParameter  = errors.New("unsupported parameter")
	ErrInvalidParameterValue = errors.New("invalid parameter value")
	ErrMissingRequiredValue  = errors.New("missing required parameter value")
)

// IsConfigurationError reports whether err comes from resolving a run
// configuration, i.e. is a user input fault rather than a system one.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownModel) ||
		errors.Is(err, ErrUnsupportedParameter) ||
		errors.Is(err, ErrInvalidParameterValue) ||
		errors.Is(err, ErrMissingRequiredValue)
}

// ResolvedConfig is the validated, strongly typed outcome of resolving a raw
// run configuration. It is never mutated after creation.
type ResolvedConfig struct {
	Model  string
	Params Params

	spec *ModelSpec
}

// NewModel instantiates a trainable model from the resolved parameters.
func (c *ResolvedConfig) NewModel() core.Regressor {
	return c.spec.Build(c.Params)
}

// Resolve validates a raw run configuration against the registry. The
// configuration either names a model under "model" (with hyperparameters in a
// "hyperparameters" sub-map, or as the remaining sibling keys) or consists
// solely of hyperparameters for the default model.
func (r *Registry) Resolve(raw map[string]any) (*ResolvedConfig, error) {
	modelName, hyperparameters, err := splitConfiguration(raw)
	if err != nil {
		return nil, err
	}

	spec, ok := r.Spec(modelName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, modelName)
	}

	var unknown []string
	for name := range hyperparameters {
		if _, ok := spec.parameterSpec(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedParameter, strings.Join(unknown, ", "))
	}

	values := make(map[string]Value, len(hyperparameters))
	for name, value := range hyperparameters {
		paramSpec, _ := spec.parameterSpec(name)
		coerced, err := coerceValue(paramSpec, value)
		if err != nil {
			return nil, err
		}
		values[name] = coerced
	}

	return &ResolvedConfig{Model: modelName, Params: Params{values: values}, spec: spec}, nil
}

func splitConfiguration(raw map[string]any) (string, map[string]any, error) {
	if len(raw) == 0 {
		return DefaultModel, nil, nil
	}

	if rawModel, ok := raw["model"]; ok {
		modelName, ok := rawModel.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: model must be a string", ErrInvalidParameterValue)
		}

		if rawParams, ok := raw["hyperparameters"]; ok {
			if rawParams == nil {
				return modelName, nil, nil
			}
			hyperparameters, ok := rawParams.(map[string]any)
			if !ok {
				return "", nil, fmt.Errorf("%w: hyperparameters must be an object", ErrInvalidParameterValue)
			}
			return modelName, hyperparameters, nil
		}

		hyperparameters := make(map[string]any, len(raw)-1)
		for key, value := range raw {
			if key != "model" {
				hyperparameters[key] = value
			}
		}
		return modelName, hyperparameters, nil
	}

	return DefaultModel, raw, nil
}

func coerceValue(spec *ParameterSpec, value any) (Value, error) {
	if value == nil || value == "" {
		if spec.Nullable {
			return NullValue(spec.Kind), nil
		}
		return Value{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, spec.Name)
	}

	switch spec.Kind {
	case KindBool:
		return coerceBool(spec.Name, value)
	case KindInt:
		parsed, err := coerceInt(spec.Name, value)
		if err != nil {
			return Value{}, err
		}
		if err := checkBounds(spec, float64(parsed)); err != nil {
			return Value{}, err
		}
		return IntValue(parsed), nil
	case KindFloat:
		parsed, err := coerceFloat(spec.Name, value)
		if err != nil {
			return Value{}, err
		}
		if err := checkBounds(spec, parsed); err != nil {
			return Value{}, err
		}
		return FloatValue(parsed), nil
	case KindEnum:
		return coerceEnum(spec, value)
	}

	return Value{}, fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidParameterValue, spec.Name, spec.Kind)
}

func coerceBool(name string, value any) (Value, error) {
	switch v := value.(type) {
	case bool:
		return BoolValue(v), nil
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return BoolValue(true), nil
		case "false", "0", "no":
			return BoolValue(false), nil
		}
	}
	return Value{}, fmt.Errorf("%w: invalid boolean for %s", ErrInvalidParameterValue, name)
}

func coerceInt(name string, value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		if math.Trunc(v) != v || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: invalid int for %s", ErrInvalidParameterValue, name)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid int for %s", ErrInvalidParameterValue, name)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("%w: invalid int for %s", ErrInvalidParameterValue, name)
}

func coerceFloat(name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid float for %s", ErrInvalidParameterValue, name)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("%w: invalid float for %s", ErrInvalidParameterValue, name)
}

func coerceEnum(spec *ParameterSpec, value any) (Value, error) {
	candidate, ok := value.(string)
	if !ok {
		return Value{}, fmt.Errorf("%w: invalid option for %s", ErrInvalidParameterValue, spec.Name)
	}
	for _, option := range spec.Options {
		if s, ok := option.(string); ok && s == candidate {
			return EnumValue(candidate), nil
		}
	}
	return Value{}, fmt.Errorf("%w: invalid option for %s", ErrInvalidParameterValue, spec.Name)
}

func checkBounds(spec *ParameterSpec, value float64) error {
	if spec.Min != nil && value < *spec.Min {
		return fmt.Errorf("%w: value for %s is below minimum", ErrInvalidParameterValue, spec.Name)
	}
	if spec.Max != nil && value > *spec.Max {
		return fmt.Errorf("%w: value for %s is above maximum", ErrInvalidParameterValue, spec.Name)
	}
	return nil
}
