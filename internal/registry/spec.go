package registry

import (
	"train-service/internal/core"
	"train-service/pkg/models"
)

type ParamKind string

const (
	KindBool  ParamKind = "bool"
	KindInt   ParamKind = "int"
	KindFloat ParamKind = "float"
	KindEnum  ParamKind = "enum"
)

// Value is a coerced, validated hyperparameter value. Exactly one of the
// typed fields is meaningful, selected by the kind; a null value carries no
// payload and is only legal for nullable parameters.
type Value struct {
	kind ParamKind
	null bool

	b bool
	i int64
	f float64
	s string
}

func BoolValue(v bool) Value      { return Value{kind: KindBool, b: v} }
func IntValue(v int64) Value      { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value  { return Value{kind: KindFloat, f: v} }
func EnumValue(v string) Value    { return Value{kind: KindEnum, s: v} }
func NullValue(k ParamKind) Value { return Value{kind: k, null: true} }

func (v Value) IsNull() bool { return v.null }

// Params holds the resolved hyperparameters for one run. Parameters that were
// not supplied (or resolved to null) fall back to the model's own defaults.
type Params struct {
	values map[string]Value
}

func (p Params) Bool(name string, fallback bool) bool {
	if v, ok := p.values[name]; ok && !v.null {
		return v.b
	}
	return fallback
}

func (p Params) Int(name string, fallback int) int {
	if v, ok := p.values[name]; ok && !v.null {
		return int(v.i)
	}
	return fallback
}

// MaybeInt reports whether a nullable integer parameter was supplied with a
// concrete value.
func (p Params) MaybeInt(name string) (int, bool) {
	if v, ok := p.values[name]; ok && !v.null {
		return int(v.i), true
	}
	return 0, false
}

func (p Params) Float(name string, fallback float64) float64 {
	if v, ok := p.values[name]; ok && !v.null {
		return v.f
	}
	return fallback
}

func (p Params) Enum(name string, fallback string) string {
	if v, ok := p.values[name]; ok && !v.null {
		return v.s
	}
	return fallback
}

type ParameterSpec struct {
	Name     string
	Kind     ParamKind
	Default  any
	Min      *float64
	Max      *float64
	Step     float64
	Options  []any
	Nullable bool
}

// ModelSpec describes one supported model: its typed parameter schema in
// declaration order, and a factory producing a trainable instance from
// resolved parameters.
type ModelSpec struct {
	Name       string
	Parameters []ParameterSpec
	Build      func(params Params) core.Regressor
}

func (s *ModelSpec) parameterSpec(name string) (*ParameterSpec, bool) {
	for i := range s.Parameters {
		if s.Parameters[i].Name == name {
			return &s.Parameters[i], true
		}
	}
	return nil, false
}

// Registry is the fixed catalog of supported models. It is constructed once
// at startup and never mutated.
type Registry struct {
	specs  []*ModelSpec
	byName map[string]*ModelSpec
}

func newRegistry(specs ...*ModelSpec) *Registry {
	r := &Registry{specs: specs, byName: make(map[string]*ModelSpec, len(specs))}
	for _, spec := range specs {
		r.byName[spec.Name] = spec
	}
	return r
}

func (r *Registry) Spec(name string) (*ModelSpec, bool) {
	spec, ok := r.byName[name]
	return spec, ok
}

func (r *Registry) Catalog() models.CatalogResponse {
	catalog := models.CatalogResponse{Models: make([]models.ModelInfo, 0, len(r.specs))}
	for _, spec := range r.specs {
		info := models.ModelInfo{Name: spec.Name, Parameters: make([]models.ParameterInfo, 0, len(spec.Parameters))}
		for _, param := range spec.Parameters {
			info.Parameters = append(info.Parameters, models.ParameterInfo{
				Name:     param.Name,
				Type:     string(param.Kind),
				Default:  param.Default,
				Min:      param.Min,
				Max:      param.Max,
				Step:     param.Step,
				Options:  param.Options,
				Nullable: param.Nullable,
			})
		}
		catalog.Models = append(catalog.Models, info)
	}
	return catalog
}
