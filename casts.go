package activerecord

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Codec converts an attribute value between its in-memory form and the
// form written to the driver. Codecs are registered per column with the
// Cast definition option.
type Codec interface {
	// Encode returns the storage form of the given value.
	Encode(v any) (any, error)
	// Decode returns the in-memory form of the given stored value.
	Decode(v any) (any, error)
}

// JSONCodec stores an attribute as a JSON text column.
type JSONCodec struct{}

// Encode marshals the value to a JSON string.
func (JSONCodec) Encode(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("activerecord: json cast: %w", err)
	}
	return string(b), nil
}

// Decode unmarshals the stored JSON text.
func (JSONCodec) Decode(v any) (any, error) {
	var data []byte
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		data = []byte(x)
	case []byte:
		data = x
	default:
		// Already decoded, or not a text column. Pass through.
		return v, nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("activerecord: json cast: %w", err)
	}
	return out, nil
}
