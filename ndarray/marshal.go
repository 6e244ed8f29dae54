package ndarray

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// wireArray is the mapping form of an Array shared by the JSON and YAML
// encodings.
type wireArray struct {
	Shape []int     `json:"shape" yaml:"shape,flow"`
	Data  []float64 `json:"data" yaml:"data,flow"`
}

// MarshalJSON encodes a as {"shape": [...], "data": [...]} with data in
// row-major order.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireArray{Shape: a.shape, Data: a.data})
}

// UnmarshalJSON decodes the form written by MarshalJSON. The shape must
// match the number of elements.
func (a *Array) UnmarshalJSON(b []byte) error {
	var w wireArray
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("ndarray: decode: %w", err)
	}
	decoded, err := FromSlice(w.Shape, w.Data)
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}

// MarshalYAML renders a as a mapping with shape and data keys.
func (a *Array) MarshalYAML() (any, error) {
	return wireArray{Shape: a.shape, Data: a.data}, nil
}
