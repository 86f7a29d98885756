// Package codec centralizes snapshot payload encoding.
//
// Snapshots are self-describing: they record the codec name in their header,
// and the matching codec is selected by name on load. Changing codecs is a
// breaking-change boundary for previously persisted bytes.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
