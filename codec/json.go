package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON numbers decode into float64, so integer attributes come back as
// float64 after a round trip through either codec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for newly written blobs.
var Default Codec = GoJSON{}
