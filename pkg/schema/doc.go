// Package schema provides the field type system used to describe tool inputs.
//
// A shape is an ordered Object of Fields. Each field carries a Type, an
// optional/required flag and a description. Objects validate decoded JSON
// (map[string]any) and render themselves as JSON Schema for MCP clients.
//
// Basic usage:
//
//	shape := schema.NewObject(
//	    schema.Field{Name: "id", Type: schema.NonEmptyString(), Required: true},
//	    schema.Field{Name: "limit", Type: schema.PositiveInt()},
//	    schema.Field{Name: "status", Type: schema.Slice(schema.String())},
//	)
//
//	clean, err := shape.Apply(map[string]any{"id": "INC-1", "limit": 10})
//	if err != nil {
//	    // err is an *AggregateError listing every failing field
//	}
//
// Apply returns a copy holding only declared fields; unknown keys are dropped.
package schema
