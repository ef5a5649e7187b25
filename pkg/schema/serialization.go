package schema

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON serializes the object as its JSON Schema.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	for _, f := range o.Fields {
		if f.Type == nil {
			return nil, fmt.Errorf("field %s: type is nil", f.Name)
		}
	}
	return json.Marshal(o.JSONSchema())
}

// RawJSONSchema returns the JSON Schema as raw bytes, for transports that
// take a pre-encoded schema.
func (o *Object) RawJSONSchema() (json.RawMessage, error) {
	b, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
