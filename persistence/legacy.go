package persistence

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/wandadars/spitfire/codec"
)

// IsLegacy reports whether data looks like a version 1 plain-mapping blob.
func IsLegacy(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{' && !bytes.HasPrefix(data, Magic[:])
}

// UpgradeLegacy converts a version 1 blob into a Snapshot of the current
// format. A version 1 blob is a JSON object:
//
//	{
//	  "dimensions":       {"<name>": {"name": ..., "values": [...], "structured": true}},
//	  "dim_ordering":     {"0": "<name>", "1": "<name>"},
//	  "properties":       {"<name>": <nested lists> | {"shape": [...], "data": [...]}},
//	  "extra_attributes": {...}
//	}
//
// dim_ordering is required; dimension order is never inferred. Version 1
// mappings do not preserve property order, so properties are restored in
// name order.
func UpgradeLegacy(data []byte, opts ...Option) (Snapshot, error) {
	o := newOptions(opts)
	c := o.codec
	if c == nil {
		c = codec.Default
	}

	var doc map[string]any
	if err := c.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: legacy blob: %w", ErrCorrupt, err)
	}

	dims, err := legacyDimensions(doc)
	if err != nil {
		return Snapshot{}, err
	}
	props, err := legacyProperties(doc)
	if err != nil {
		return Snapshot{}, err
	}

	attrs := map[string]any{}
	switch ea := doc["extra_attributes"].(type) {
	case nil:
	case map[string]any:
		attrs = ea
	default:
		return Snapshot{}, legacyErr("extra_attributes is not a mapping")
	}

	return Snapshot{Dimensions: dims, Properties: props, Attributes: attrs}, nil
}

func legacyErr(format string, args ...any) error {
	return fmt.Errorf("%w: legacy blob: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

func legacyDimensions(doc map[string]any) ([]DimensionRecord, error) {
	defs, ok := doc["dimensions"].(map[string]any)
	if !ok {
		return nil, legacyErr("missing dimensions mapping")
	}
	ordering, ok := doc["dim_ordering"].(map[string]any)
	if !ok {
		return nil, legacyErr("missing dim_ordering")
	}
	if len(ordering) != len(defs) {
		return nil, legacyErr("dim_ordering has %d entries for %d dimensions", len(ordering), len(defs))
	}

	order := make([]string, len(defs))
	for key, v := range ordering {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(order) {
			return nil, legacyErr("dim_ordering index %q out of range", key)
		}
		name, ok := v.(string)
		if !ok {
			return nil, legacyErr("dim_ordering[%s] is not a name", key)
		}
		if order[idx] != "" {
			return nil, legacyErr("dim_ordering index %d repeated", idx)
		}
		order[idx] = name
	}

	out := make([]DimensionRecord, len(order))
	for i, key := range order {
		def, ok := defs[key].(map[string]any)
		if !ok {
			return nil, legacyErr("dim_ordering names unknown dimension %q", key)
		}
		rec := DimensionRecord{Name: key, Structured: true}
		if name, ok := def["name"].(string); ok {
			if name != key {
				return nil, legacyErr("dimension %q is recorded as %q", key, name)
			}
		}
		if s, ok := def["structured"]; ok {
			b, ok := s.(bool)
			if !ok {
				return nil, legacyErr("dimension %q: structured is not a boolean", key)
			}
			rec.Structured = b
		}
		shape, values, err := flattenNested(def["values"])
		if err != nil {
			return nil, legacyErr("dimension %q values: %v", key, err)
		}
		if len(shape) != 1 {
			return nil, legacyErr("dimension %q values are not one-dimensional", key)
		}
		rec.Values = values
		out[i] = rec
	}
	return out, nil
}

func legacyProperties(doc map[string]any) ([]PropertyRecord, error) {
	var props map[string]any
	switch p := doc["properties"].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		props = p
	default:
		return nil, legacyErr("properties is not a mapping")
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]PropertyRecord, 0, len(names))
	for _, name := range names {
		rec, err := legacyProperty(name, props[name])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func legacyProperty(name string, v any) (PropertyRecord, error) {
	rec := PropertyRecord{Name: name}

	if m, ok := v.(map[string]any); ok {
		rawShape, ok := m["shape"].([]any)
		if !ok {
			return rec, legacyErr("property %q: missing shape", name)
		}
		size := 1
		for _, e := range rawShape {
			f, ok := number(e)
			if !ok || f < 1 || f != float64(int(f)) {
				return rec, legacyErr("property %q: invalid extent %v", name, e)
			}
			rec.Shape = append(rec.Shape, int(f))
			size *= int(f)
		}
		_, data, err := flattenNested(m["data"])
		if err != nil {
			return rec, legacyErr("property %q data: %v", name, err)
		}
		if len(data) != size {
			return rec, legacyErr("property %q: %d values for shape %v", name, len(data), rec.Shape)
		}
		rec.Data = data
		return rec, nil
	}

	shape, data, err := flattenNested(v)
	if err != nil {
		return rec, legacyErr("property %q: %v", name, err)
	}
	if len(shape) == 0 {
		return rec, legacyErr("property %q is a scalar", name)
	}
	rec.Shape, rec.Data = shape, data
	return rec, nil
}

// flattenNested converts regular nested lists of numbers to a shape and
// row-major data.
func flattenNested(v any) ([]int, []float64, error) {
	var shape []int
	for cur := v; ; {
		arr, ok := cur.([]any)
		if !ok {
			break
		}
		shape = append(shape, len(arr))
		if len(arr) == 0 {
			return nil, nil, fmt.Errorf("empty list")
		}
		cur = arr[0]
	}

	var data []float64
	var walk func(v any, shape []int) error
	walk = func(v any, shape []int) error {
		if len(shape) == 0 {
			f, ok := number(v)
			if !ok {
				return fmt.Errorf("non-numeric value %v", v)
			}
			data = append(data, f)
			return nil
		}
		arr, ok := v.([]any)
		if !ok || len(arr) != shape[0] {
			return fmt.Errorf("ragged nested lists")
		}
		for _, e := range arr {
			if err := walk(e, shape[1:]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(v, shape); err != nil {
		return nil, nil, err
	}
	return shape, data, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
