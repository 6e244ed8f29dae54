package library

import "slices"

// Field names one per-dimension attribute exposed by a Library.
type Field uint8

const (
	FieldName Field = iota
	FieldValues
	FieldMin
	FieldMax
	FieldNPts
	FieldStructured
	FieldGrid
)

var fieldNames = [...]string{
	FieldName:       "name",
	FieldValues:     "values",
	FieldMin:        "min",
	FieldMax:        "max",
	FieldNPts:       "npts",
	FieldStructured: "structured",
	FieldGrid:       "grid",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

type accessor struct {
	dim   int
	field Field
}

// buildAccessors generates the X_name, X_values, ... table once per library.
func (l *Library) buildAccessors() {
	l.accessors = make(map[string]accessor, len(l.dims)*len(fieldNames))
	for i, d := range l.dims {
		for f := range fieldNames {
			l.accessors[d.name+"_"+fieldNames[f]] = accessor{dim: i, field: Field(f)}
		}
	}
}

// DimensionAttribute returns one attribute of the named dimension:
// string for FieldName, []float64 (a copy) for FieldValues, float64 for
// FieldMin and FieldMax, int for FieldNPts, bool for FieldStructured and
// *ndarray.Array (shared, read-only) for FieldGrid.
func (l *Library) DimensionAttribute(name string, field Field) (any, error) {
	i, ok := l.dimIndex[name]
	if !ok {
		return nil, &LookupError{Kind: "dimension", Name: name}
	}
	return l.dims[i].attribute(field)
}

// Accessor resolves a key of the form "<dimension>_<field>", for example
// "mixture_fraction_max", against the table generated at construction.
func (l *Library) Accessor(key string) (any, error) {
	a, ok := l.accessors[key]
	if !ok {
		return nil, &LookupError{Kind: "accessor", Name: key}
	}
	return l.dims[a.dim].attribute(a.field)
}

// AccessorKeys returns every generated accessor key, sorted.
func (l *Library) AccessorKeys() []string {
	keys := make([]string, 0, len(l.accessors))
	for k := range l.accessors {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (d *BoundDimension) attribute(field Field) (any, error) {
	switch field {
	case FieldName:
		return d.name, nil
	case FieldValues:
		return d.Values(), nil
	case FieldMin:
		return d.min, nil
	case FieldMax:
		return d.max, nil
	case FieldNPts:
		return d.NPts(), nil
	case FieldStructured:
		return d.structured, nil
	case FieldGrid:
		return d.grid, nil
	default:
		return nil, &LookupError{Kind: "field", Name: field.String()}
	}
}
