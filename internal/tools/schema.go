package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/bobmcallan/minimcp-servers/internal/namespace"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
	bigIntType  = reflect.TypeFor[big.Int]()
)

// ParamSchema is the derived description of one tool parameter.
type ParamSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type paramSpec struct {
	ParamSchema
	typ    reflect.Type
	def    reflect.Value
	schema *jsonschema.Schema
}

// signature is the snapshot of a function's declaration taken at
// registration time.
type signature struct {
	fn           reflect.Value
	withContext  bool
	returnsError bool
	params       []paramSpec
	result       string
}

// deriveSignature validates f's declared parameters against its Go type.
func deriveSignature(f *namespace.Function) (*signature, error) {
	name := f.Name
	if name == "" {
		return nil, unsupported(name, "function has no name")
	}
	if f.Fn == nil {
		return nil, unsupported(name, "function value is nil")
	}

	fv := reflect.ValueOf(f.Fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, unsupported(name, "%s is not a function", ft)
	}
	if fv.IsNil() {
		return nil, unsupported(name, "function value is nil")
	}
	if ft.IsVariadic() {
		return nil, unsupported(name, "variadic parameters are not supported")
	}

	sig := &signature{fn: fv}
	offset := 0
	if ft.NumIn() > 0 && ft.In(0) == contextType {
		sig.withContext = true
		offset = 1
	}

	if got, want := ft.NumIn()-offset, len(f.Params); got != want {
		return nil, unsupported(name, "function takes %d parameters but %d are declared", got, want)
	}

	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == errorType {
			return nil, unsupported(name, "function returns only an error")
		}
	case 2:
		if ft.Out(1) != errorType {
			return nil, unsupported(name, "second result must be error, got %s", ft.Out(1))
		}
		sig.returnsError = true
	default:
		return nil, unsupported(name, "function must return a value, optionally followed by an error")
	}
	if err := checkType(ft.Out(0), map[reflect.Type]bool{}); err != nil {
		return nil, unsupported(name, "result: %v", err)
	}
	sig.result = jsonType(ft.Out(0))

	seen := make(map[string]bool, len(f.Params))
	for i, p := range f.Params {
		if p.Name == "" {
			return nil, unsupported(name, "parameter %d has no name", i)
		}
		if seen[p.Name] {
			return nil, unsupported(name, "parameter %q declared twice", p.Name)
		}
		seen[p.Name] = true

		pt := ft.In(i + offset)
		if err := checkType(pt, map[reflect.Type]bool{}); err != nil {
			return nil, unsupported(name, "parameter %q: %v", p.Name, err)
		}

		spec := paramSpec{
			ParamSchema: ParamSchema{
				Name:        p.Name,
				Type:        jsonType(pt),
				Required:    !p.Optional,
				Description: p.Doc,
			},
			typ: pt,
		}
		if p.Optional {
			def, err := defaultValue(pt, p.Default)
			if err != nil {
				return nil, unsupported(name, "parameter %q: %v", p.Name, err)
			}
			spec.def = def
			spec.Default = p.Default
		}

		s, err := paramJSONSchema(pt)
		if err != nil {
			return nil, unsupported(name, "parameter %q: %v", p.Name, err)
		}
		s.Description = p.Doc
		if p.Optional && p.Default != nil {
			s.Default = p.Default
		}
		spec.schema = s

		sig.params = append(sig.params, spec)
	}

	return sig, nil
}

// checkType reports whether t can travel as a JSON tool argument or result.
func checkType(t reflect.Type, visiting map[reflect.Type]bool) error {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return checkType(t.Elem(), visiting)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("map key type %s is not a string", t.Key())
		}
		return checkType(t.Elem(), visiting)
	case reflect.Struct:
		if visiting[t] {
			return fmt.Errorf("recursive type %s", t)
		}
		visiting[t] = true
		defer delete(visiting, t)
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			if err := checkType(field.Type, visiting); err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}
		}
		return nil
	case reflect.Interface:
		// Results such as []any carry mixed tuples; arguments of interface
		// type have no schema.
		if t.NumMethod() == 0 {
			return nil
		}
		return fmt.Errorf("interface type %s", t)
	default:
		return fmt.Errorf("type %s has no JSON representation", t)
	}
}

// jsonType names the JSON Schema type of t.
func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == bigIntType {
		return "integer"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "any"
	}
}

// paramJSONSchema reflects the JSON Schema of a parameter type.
func paramJSONSchema(t reflect.Type) (s *jsonschema.Schema, err error) {
	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("interface parameters have no schema")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("schema reflection failed: %v", r)
		}
	}()

	r := &jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	s = r.ReflectFromType(t)
	s.Version = ""
	s.Definitions = nil
	return s, nil
}

// defaultValue converts a declared default to a value of type t.
func defaultValue(t reflect.Type, def any) (reflect.Value, error) {
	if def == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("nil default for non-nullable type %s", t)
		}
	}

	dv := reflect.ValueOf(def)
	if dv.Type().AssignableTo(t) {
		return dv, nil
	}
	if t.Kind() == reflect.Pointer {
		elem, err := defaultValue(t.Elem(), def)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}
	if sameFamily(dv.Kind(), t.Kind()) && dv.Type().ConvertibleTo(t) {
		return dv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("default %v (%T) is not a %s", def, def, t)
}

func sameFamily(a, b reflect.Kind) bool {
	return numeric(a) && numeric(b) || a == b
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// inputSchema renders the object schema for all parameters in declared order.
func (s *signature) inputSchema() (json.RawMessage, error) {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, p := range s.params {
		root.Properties.Set(p.Name, p.schema)
		if p.Required {
			root.Required = append(root.Required, p.Name)
		}
	}
	return json.Marshal(root)
}
