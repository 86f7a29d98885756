package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// Rows are map-shaped, so JSON round-trips them portably; note that numeric
// values decode as float64, which the engine's loose numeric comparison
// absorbs. Implement Codec to substitute another encoding.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// Persisted snapshots are self-describing (they store the codec name in
// their header), so changing Default never breaks existing files.
var Default Codec = JSON{}
