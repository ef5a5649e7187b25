package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type
// and how the type is described to clients as JSON Schema.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
	// JSONSchema returns the JSON Schema fragment describing the type.
	JSONSchema() map[string]any
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct {
	nonEmpty bool
}

func (t *StringType) Name() string {
	if t.nonEmpty {
		return "non-empty string"
	}
	return "string"
}

func (t *StringType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if t.nonEmpty && strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func (t *StringType) JSONSchema() map[string]any {
	s := map[string]any{"type": "string"}
	if t.nonEmpty {
		s["minLength"] = 1
	}
	return s
}

// IntType validates integer values, optionally bounded below.
type IntType struct {
	min *int64
}

func (t *IntType) Name() string {
	if t.min != nil && *t.min == 1 {
		return "positive int"
	}
	return "int"
}

func (t *IntType) Validate(value any) error {
	n, err := asInt(value)
	if err != nil {
		return err
	}
	if t.min != nil && n < *t.min {
		return fmt.Errorf("must be >= %d", *t.min)
	}
	return nil
}

func (t *IntType) JSONSchema() map[string]any {
	s := map[string]any{"type": "integer"}
	if t.min != nil {
		s["minimum"] = *t.min
	}
	return s
}

func asInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expected int, got float (not a whole number)")
		}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("integer %g out of range", v)
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected int, got %q", v.String())
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected int, got %T", value)
	}
}

// DateTimeType validates ISO-8601 date-time strings (RFC 3339 profile).
type DateTimeType struct{}

func (t *DateTimeType) Name() string { return "date-time" }

func (t *DateTimeType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected date-time string, got %T", value)
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		return fmt.Errorf("expected ISO-8601 date-time, got %q", s)
	}
	return nil
}

func (t *DateTimeType) JSONSchema() map[string]any {
	return map[string]any{"type": "string", "format": "date-time"}
}

// EnumType validates strings restricted to a fixed set.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string { return "enum(" + strings.Join(t.values, "|") + ")" }

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, v := range t.values {
		if v == s {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(t.values, ", "))
}

func (t *EnumType) JSONSchema() map[string]any {
	values := make([]any, len(t.values))
	for i, v := range t.values {
		values[i] = v
	}
	return map[string]any{"type": "string", "enum": values}
}

// Values returns the allowed enum members in declaration order.
func (t *EnumType) Values() []string {
	return append([]string(nil), t.values...)
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	if value == nil {
		return fmt.Errorf("expected slice, got nil")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}

	// Validate each element
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (t *SliceType) JSONSchema() map[string]any {
	return map[string]any{"type": "array", "items": t.elemType.JSONSchema()}
}

// Elem returns the element type.
func (t *SliceType) Elem() Type { return t.elemType }

// MapType validates open-ended objects with string keys and arbitrary values.
type MapType struct{}

func (t *MapType) Name() string { return "map" }

func (t *MapType) Validate(value any) error {
	if _, ok := value.(map[string]any); !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	return nil
}

func (t *MapType) JSONSchema() map[string]any {
	return map[string]any{"type": "object", "additionalProperties": true}
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
	schema   map[string]any
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

func (t *CustomType) JSONSchema() map[string]any {
	if t.schema == nil {
		return map[string]any{}
	}
	return t.schema
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// NonEmptyString creates a string validator that rejects blank strings.
func NonEmptyString() Type { return &StringType{nonEmpty: true} }

// PositiveInt creates an integer validator that requires values >= 1.
func PositiveInt() Type {
	one := int64(1)
	return &IntType{min: &one}
}

// DateTime creates an ISO-8601 date-time validator.
func DateTime() Type { return &DateTimeType{} }

// Enum creates a validator for a fixed set of strings.
func Enum(values ...string) Type {
	return &EnumType{values: append([]string(nil), values...)}
}

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a validator for open-ended string-keyed objects.
func Map() Type { return &MapType{} }

// Custom creates a custom type validator with a user-defined function.
// The jsonSchema fragment is what clients see; nil means "any value".
func Custom(name string, validate func(any) error, jsonSchema map[string]any) Type {
	return &CustomType{name: name, validate: validate, schema: jsonSchema}
}
