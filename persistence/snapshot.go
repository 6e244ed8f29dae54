package persistence

import (
	"fmt"
	"maps"
	"slices"

	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/ndarray"
)

// DimensionRecord is the persisted definition of one dimension.
type DimensionRecord struct {
	Name       string
	Values     []float64
	Structured bool
}

// PropertyRecord is one property array in row-major order.
type PropertyRecord struct {
	Name  string
	Shape []int
	Data  []float64
}

// Snapshot is the version-independent capture of a Library.
type Snapshot struct {
	Dimensions []DimensionRecord
	Properties []PropertyRecord
	Attributes map[string]any
}

// Capture copies the persisted state of lib. Attribute values are shared.
func Capture(lib *library.Library) Snapshot {
	snap := Snapshot{
		Dimensions: make([]DimensionRecord, 0, lib.NDim()),
		Properties: make([]PropertyRecord, 0, len(lib.Properties())),
		Attributes: maps.Clone(lib.ExtraAttributes()),
	}
	for _, d := range lib.Dims() {
		snap.Dimensions = append(snap.Dimensions, DimensionRecord{
			Name:       d.Name(),
			Values:     d.Values(),
			Structured: d.Structured(),
		})
	}
	for _, name := range lib.Properties() {
		p, _ := lib.Property(name)
		snap.Properties = append(snap.Properties, PropertyRecord{
			Name:  name,
			Shape: p.Shape(),
			Data:  slices.Clone(p.Data()),
		})
	}
	if snap.Attributes == nil {
		snap.Attributes = map[string]any{}
	}
	return snap
}

// Restore rebuilds a Library through the normal construction path, then
// replays every property assignment and extra attribute.
func Restore(snap Snapshot) (*library.Library, error) {
	dims := make([]library.Dimension, len(snap.Dimensions))
	for i, rec := range snap.Dimensions {
		var (
			d   library.Dimension
			err error
		)
		if rec.Structured {
			d, err = library.NewDimension(rec.Name, rec.Values)
		} else {
			d, err = library.NewUnstructuredDimension(rec.Name, rec.Values)
		}
		if err != nil {
			return nil, fmt.Errorf("persistence: restore: %w", err)
		}
		dims[i] = d
	}

	lib, err := library.New(dims...)
	if err != nil {
		return nil, fmt.Errorf("persistence: restore: %w", err)
	}
	for _, rec := range snap.Properties {
		arr, err := ndarray.FromSlice(rec.Shape, rec.Data)
		if err != nil {
			return nil, fmt.Errorf("persistence: restore property %q: %w", rec.Name, err)
		}
		if err := lib.SetProperty(rec.Name, arr); err != nil {
			return nil, fmt.Errorf("persistence: restore: %w", err)
		}
	}
	for k, v := range snap.Attributes {
		lib.SetExtraAttribute(k, v)
	}
	return lib, nil
}
