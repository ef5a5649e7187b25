package contract

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/opsmcp/pkg/schema"
)

// OpenAPI describes the Core REST surface the given tools depend on.
func OpenAPI(tools []ToolContract, version, serverURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Core operations API (as consumed by opsmcp)",
			Description: "Every request carries an `Authorization: Bearer <token>` header.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
	if serverURL != "" {
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: serverURL}}
	}

	for _, c := range tools {
		item := doc.Paths.Value(c.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(c.Path, item)
		}
		item.SetOperation(c.Method, operation(c))
	}
	return doc
}

func operation(c ToolContract) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = c.Name
	op.Summary = c.Title
	op.Description = c.Description

	params := c.PathParams()
	for _, p := range params {
		f, _ := c.Input.Field(p)
		param := openapi3.NewPathParameter(p).WithSchema(toOpenAPI(f.Type))
		param.Description = f.Description
		op.AddParameter(param)
	}

	if c.Method != http.MethodGet {
		body := openapi3.NewObjectSchema()
		for _, f := range c.Input.Fields {
			if contains(params, f.Name) {
				continue
			}
			s := toOpenAPI(f.Type)
			s.Description = f.Description
			body.WithProperty(f.Name, s)
			if f.Required {
				body.Required = append(body.Required, f.Name)
			}
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
		}
	}

	var out *openapi3.Schema
	switch c.Output.Kind {
	case OutputArray:
		out = openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema())
	case OutputObject:
		out = openapi3.NewObjectSchema()
	default:
		out = &openapi3.Schema{}
	}
	desc := c.Output.Description
	if desc == "" {
		desc = "Success"
	}
	op.AddResponse(http.StatusOK, openapi3.NewResponse().WithDescription(desc).WithJSONSchema(out))

	errBody := openapi3.NewObjectSchema().WithProperty("message", openapi3.NewStringSchema())
	op.AddResponse(0, openapi3.NewResponse().WithDescription("Error with an optional message").WithJSONSchema(errBody))
	return op
}

// toOpenAPI maps a field type onto its OpenAPI schema.
func toOpenAPI(t schema.Type) *openapi3.Schema {
	switch v := t.(type) {
	case *schema.Object:
		s := openapi3.NewObjectSchema()
		for _, f := range v.Fields {
			fs := toOpenAPI(f.Type)
			fs.Description = f.Description
			s.WithProperty(f.Name, fs)
			if f.Required {
				s.Required = append(s.Required, f.Name)
			}
		}
		return s
	case *schema.SliceType:
		return openapi3.NewArraySchema().WithItems(toOpenAPI(v.Elem()))
	case *schema.EnumType:
		values := v.Values()
		members := make([]any, len(values))
		for i, m := range values {
			members[i] = m
		}
		return openapi3.NewStringSchema().WithEnum(members...)
	case *schema.DateTimeType:
		return openapi3.NewDateTimeSchema()
	case *schema.MapType:
		return openapi3.NewObjectSchema().WithAnyAdditionalProperties()
	case *schema.IntType:
		s := openapi3.NewIntegerSchema()
		if lo, ok := t.JSONSchema()["minimum"].(int64); ok {
			s.WithMin(float64(lo))
		}
		return s
	case *schema.StringType:
		s := openapi3.NewStringSchema()
		if _, ok := t.JSONSchema()["minLength"]; ok {
			s.WithMinLength(1)
		}
		return s
	default:
		return &openapi3.Schema{}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// OpenAPIYAML renders the document as YAML.
func OpenAPIYAML(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("convert openapi document: %w", err)
	}
	return yaml.Marshal(tree)
}
