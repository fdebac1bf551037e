package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// invoke decodes args against the snapshot signature and calls the function.
func (s *signature) invoke(ctx context.Context, tool string, args map[string]any) (out any, err error) {
	known := make(map[string]bool, len(s.params))
	for _, p := range s.params {
		known[p.Name] = true
	}
	var unexpected []string
	for k := range args {
		if !known[k] {
			unexpected = append(unexpected, k)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, fmt.Errorf("unexpected argument %q", unexpected[0])
	}

	in := make([]reflect.Value, 0, len(s.params)+1)
	if s.withContext {
		in = append(in, reflect.ValueOf(ctx))
	}
	for _, p := range s.params {
		v, err := p.decode(args)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%s failed: %v", tool, r)
		}
	}()

	res := s.fn.Call(in)
	if s.returnsError && !res[1].IsNil() {
		return nil, res[1].Interface().(error)
	}
	return res[0].Interface(), nil
}

// decode extracts one argument, falling back to the declared default.
func (p paramSpec) decode(args map[string]any) (reflect.Value, error) {
	raw, present := args[p.Name]
	if !present || raw == nil {
		if p.def.IsValid() {
			return copyValue(p.def), nil
		}
		if present {
			switch p.typ.Kind() {
			case reflect.Pointer, reflect.Slice, reflect.Map:
				return reflect.Zero(p.typ), nil
			}
		}
		return reflect.Value{}, fmt.Errorf("missing required argument %q", p.Name)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("argument %q: %w", p.Name, err)
	}
	ptr := reflect.New(p.typ)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("argument %q: expected %s: %w", p.Name, p.Type, err)
	}
	return ptr.Elem(), nil
}

// copyValue keeps a pointer default from being shared between calls.
func copyValue(v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return v
	}
	cp := reflect.New(v.Type().Elem())
	cp.Elem().Set(v.Elem())
	return cp
}

// toolResult renders a function result as text plus structured content.
func toolResult(out any) *mcp.CallToolResult {
	if s, ok := out.(string); ok {
		return mcp.NewToolResultStructured(map[string]any{"result": s}, s)
	}
	if f, ok := asFloat(out); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return mcp.NewToolResultText(strconv.FormatFloat(f, 'g', -1, 64))
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprint(out))
	}
	return mcp.NewToolResultStructured(map[string]any{"result": json.RawMessage(data)}, string(data))
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}
