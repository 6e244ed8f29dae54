package persistence

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/wandadars/spitfire/ndarray"
)

// Kinds carried in the typed attributes section. Every value is written as
// {"t": kind, "v": payload}; numbers travel as decimal strings so that
// integers, NaN and the infinities survive any JSON codec exactly. A
// missing "v" marks a nil slice, map or array.
const (
	kindNull      = "null"
	kindBool      = "bool"
	kindString    = "string"
	kindInt       = "int"
	kindInt64     = "int64"
	kindFloat     = "float"
	kindFloats    = "floats"
	kindInts      = "ints"
	kindStrings   = "strings"
	kindStringMap = "stringmap"
	kindList      = "list"
	kindMap       = "map"
	kindArray     = "ndarray"
)

// AttributeError reports an extra attribute value the binary format cannot
// represent. Key is the path to the value, e.g. "meta.weights[1]".
type AttributeError struct {
	Key  string
	Type string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("persistence: attribute %q: unsupported value type %s", e.Key, e.Type)
}

func (e *AttributeError) Unwrap() error { return ErrUnsupportedAttribute }

func encodeAttributes(attrs map[string]any) (map[string]any, error) {
	return encodeMap("", attrs)
}

func encodeMap(prefix string, m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		tv, err := encodeValue(joinKey(prefix, k), m[k])
		if err != nil {
			return nil, err
		}
		out[k] = tv
	}
	return out, nil
}

func encodeValue(path string, v any) (map[string]any, error) {
	tagged := func(kind string, payload any) map[string]any {
		return map[string]any{"t": kind, "v": payload}
	}
	bare := func(kind string) map[string]any {
		return map[string]any{"t": kind}
	}

	switch x := v.(type) {
	case nil:
		return bare(kindNull), nil
	case bool:
		return tagged(kindBool, x), nil
	case string:
		return tagged(kindString, x), nil
	case int:
		return tagged(kindInt, strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return tagged(kindInt64, strconv.FormatInt(x, 10)), nil
	case float64:
		return tagged(kindFloat, formatFloat(x)), nil
	case []float64:
		if x == nil {
			return bare(kindFloats), nil
		}
		return tagged(kindFloats, formatFloats(x)), nil
	case []int:
		if x == nil {
			return bare(kindInts), nil
		}
		return tagged(kindInts, formatInts(x)), nil
	case []string:
		if x == nil {
			return bare(kindStrings), nil
		}
		return tagged(kindStrings, slices.Clone(x)), nil
	case map[string]string:
		if x == nil {
			return bare(kindStringMap), nil
		}
		return tagged(kindStringMap, maps.Clone(x)), nil
	case []any:
		if x == nil {
			return bare(kindList), nil
		}
		items := make([]any, len(x))
		for i, item := range x {
			tv, err := encodeValue(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			items[i] = tv
		}
		return tagged(kindList, items), nil
	case map[string]any:
		if x == nil {
			return bare(kindMap), nil
		}
		inner, err := encodeMap(path, x)
		if err != nil {
			return nil, err
		}
		return tagged(kindMap, inner), nil
	case *ndarray.Array:
		if x == nil {
			return bare(kindArray), nil
		}
		return tagged(kindArray, map[string]any{
			"shape": formatInts(x.Shape()),
			"data":  formatFloats(x.Data()),
		}), nil
	default:
		return nil, &AttributeError{Key: path, Type: fmt.Sprintf("%T", v)}
	}
}

func decodeTypedAttributes(tree map[string]any) (map[string]any, error) {
	return decodeMap("", tree)
}

func decodeMap(prefix string, m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, raw := range m {
		v, err := decodeValue(joinKey(prefix, k), raw)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func decodeValue(path string, raw any) (any, error) {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: attribute %q: %s", ErrCorrupt, path, fmt.Sprintf(format, args...))
	}

	node, ok := raw.(map[string]any)
	if !ok {
		return nil, bad("expected a typed value, got %T", raw)
	}
	kind, ok := node["t"].(string)
	if !ok {
		return nil, bad("missing type tag")
	}
	payload, present := node["v"]

	switch kind {
	case kindNull:
		return nil, nil
	case kindBool:
		b, ok := payload.(bool)
		if !ok {
			return nil, bad("bool payload is %T", payload)
		}
		return b, nil
	case kindString:
		s, ok := payload.(string)
		if !ok {
			return nil, bad("string payload is %T", payload)
		}
		return s, nil
	case kindInt, kindInt64:
		s, ok := payload.(string)
		if !ok {
			return nil, bad("integer payload is %T", payload)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, bad("%v", err)
		}
		if kind == kindInt64 {
			return n, nil
		}
		if int64(int(n)) != n {
			return nil, bad("integer %d overflows int", n)
		}
		return int(n), nil
	case kindFloat:
		s, ok := payload.(string)
		if !ok {
			return nil, bad("float payload is %T", payload)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, bad("%v", err)
		}
		return f, nil
	case kindFloats:
		if !present {
			return []float64(nil), nil
		}
		fs, err := parseFloats(payload)
		if err != nil {
			return nil, bad("%v", err)
		}
		return fs, nil
	case kindInts:
		if !present {
			return []int(nil), nil
		}
		ns, err := parseInts(payload)
		if err != nil {
			return nil, bad("%v", err)
		}
		return ns, nil
	case kindStrings:
		if !present {
			return []string(nil), nil
		}
		ss, err := stringList(payload)
		if err != nil {
			return nil, bad("%v", err)
		}
		return ss, nil
	case kindStringMap:
		if !present {
			return map[string]string(nil), nil
		}
		m, ok := payload.(map[string]any)
		if !ok {
			return nil, bad("string map payload is %T", payload)
		}
		out := make(map[string]string, len(m))
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return nil, bad("string map entry %q is %T", k, v)
			}
			out[k] = s
		}
		return out, nil
	case kindList:
		if !present {
			return []any(nil), nil
		}
		items, ok := payload.([]any)
		if !ok {
			return nil, bad("list payload is %T", payload)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := decodeValue(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case kindMap:
		if !present {
			return map[string]any(nil), nil
		}
		m, ok := payload.(map[string]any)
		if !ok {
			return nil, bad("map payload is %T", payload)
		}
		return decodeMap(path, m)
	case kindArray:
		if !present {
			return (*ndarray.Array)(nil), nil
		}
		m, ok := payload.(map[string]any)
		if !ok {
			return nil, bad("array payload is %T", payload)
		}
		shape, err := parseInts(m["shape"])
		if err != nil {
			return nil, bad("array shape: %v", err)
		}
		data, err := parseFloats(m["data"])
		if err != nil {
			return nil, bad("array data: %v", err)
		}
		a, err := ndarray.FromSlice(shape, data)
		if err != nil {
			return nil, bad("%v", err)
		}
		return a, nil
	default:
		return nil, bad("unknown type tag %q", kind)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func formatFloats(fs []float64) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = formatFloat(f)
	}
	return out
}

func formatInts(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}

func parseFloats(v any) ([]float64, error) {
	ss, err := stringList(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ss))
	for i, s := range ss {
		if out[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseInts(v any) ([]int, error) {
	ss, err := stringList(v)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ss))
	for i, s := range ss {
		if out[i], err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}
