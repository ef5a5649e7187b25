package schema

import (
	"fmt"
	"strings"
)

// Field is a single named member of an Object.
type Field struct {
	Name        string
	Type        Type
	Required    bool
	Description string
}

// Object is an ordered set of fields. It is itself a Type, so objects nest.
type Object struct {
	Fields []Field
}

// NewObject creates an object shape from the given fields, in order.
func NewObject(fields ...Field) *Object {
	return &Object{Fields: fields}
}

// Field returns the field with the given name.
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the names of required fields in declaration order.
func (o *Object) Required() []string {
	var names []string
	for _, f := range o.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

func (o *Object) Name() string {
	names := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		names[i] = f.Name
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Validate checks a value against the object shape.
func (o *Object) Validate(value any) error {
	data, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	if _, errs := o.apply("", data); len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func (o *Object) JSONSchema() map[string]any {
	props := make(map[string]any, len(o.Fields))
	for _, f := range o.Fields {
		fs := f.Type.JSONSchema()
		if f.Description != "" {
			cp := make(map[string]any, len(fs)+1)
			for k, v := range fs {
				cp[k] = v
			}
			cp["description"] = f.Description
			fs = cp
		}
		props[f.Name] = fs
	}
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if req := o.Required(); len(req) > 0 {
		s["required"] = req
	}
	return s
}

// Apply validates data against the object and returns a copy holding only
// the declared fields. Unknown keys are dropped and explicit nulls are
// treated as absent. All failures are reported in one *AggregateError.
func (o *Object) Apply(data map[string]any) (map[string]any, error) {
	clean, errs := o.apply("", data)
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return clean, nil
}

func (o *Object) apply(prefix string, data map[string]any) (map[string]any, []error) {
	clean := make(map[string]any, len(o.Fields))
	var errs []error

	for _, f := range o.Fields {
		key := prefix + f.Name
		value, exists := data[f.Name]
		if !exists || value == nil {
			if f.Required {
				errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			}
			continue
		}

		if nested, ok := f.Type.(*Object); ok {
			m, ok := value.(map[string]any)
			if !ok {
				errs = append(errs, &ValidationError{Key: key, Reason: fmt.Sprintf("expected object, got %T", value), Value: value})
				continue
			}
			sub, subErrs := nested.apply(key+".", m)
			errs = append(errs, subErrs...)
			if len(subErrs) == 0 {
				clean[f.Name] = sub
			}
			continue
		}

		if err := f.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
			continue
		}
		clean[f.Name] = value
	}

	return clean, errs
}
