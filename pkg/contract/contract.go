// Package contract declares the tools the gateway exposes: their input
// shapes, expected output shapes and the Core endpoint behind each one.
package contract

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/aretw0/opsmcp/pkg/core"
	"github.com/aretw0/opsmcp/pkg/schema"
)

// OutputKind is the top-level JSON type a tool is expected to return.
type OutputKind string

const (
	OutputAny    OutputKind = "any"
	OutputObject OutputKind = "object"
	OutputArray  OutputKind = "array"
)

// OutputShape describes the expected Core response.
type OutputShape struct {
	Kind        OutputKind
	Description string
}

// Check reports whether v has the expected top-level shape. A nil value
// (empty Core response) always passes.
func (o OutputShape) Check(v any) error {
	if v == nil {
		return nil
	}
	switch o.Kind {
	case OutputObject:
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %s", jsonKind(v))
		}
	case OutputArray:
		if _, ok := v.([]any); !ok {
			return fmt.Errorf("expected array, got %s", jsonKind(v))
		}
	}
	return nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ToolContract binds a tool name to its input shape, output shape and
// Core endpoint. Path may contain {param} segments naming required
// string fields of Input.
type ToolContract struct {
	Name        string
	Title       string
	Description string
	Method      string
	Path        string
	Input       *schema.Object
	Output      OutputShape
	Mutating    bool
}

var pathParam = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// PathParams returns the names of the {param} segments of Path, in order.
func (c ToolContract) PathParams() []string {
	matches := pathParam.FindAllStringSubmatch(c.Path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Check verifies the contract is internally consistent.
func (c ToolContract) Check() error {
	if c.Name == "" {
		return fmt.Errorf("contract has no name")
	}
	switch c.Method {
	case http.MethodGet, http.MethodPost, http.MethodPatch:
	default:
		return fmt.Errorf("contract %s: unsupported method %q", c.Name, c.Method)
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("contract %s: path %q must start with /", c.Name, c.Path)
	}
	if c.Input == nil {
		return fmt.Errorf("contract %s: missing input shape", c.Name)
	}
	for _, p := range c.PathParams() {
		f, ok := c.Input.Field(p)
		if !ok || !f.Required {
			return fmt.Errorf("contract %s: path parameter %q must be a required input field", c.Name, p)
		}
	}
	return nil
}

// Resolve turns validated input into the Core request for this tool.
// Path parameters are escaped and removed from the body; "." and ".." are
// rejected. GET requests
// carry no body; other methods always send an object, possibly empty.
func (c ToolContract) Resolve(args map[string]any) (core.Request, error) {
	params := c.PathParams()
	path := c.Path
	for _, p := range params {
		raw, ok := args[p].(string)
		if !ok || raw == "" {
			return core.Request{}, fmt.Errorf("contract %s: path parameter %q missing", c.Name, p)
		}
		// PathEscape leaves dots alone and routers collapse dot segments.
		if raw == "." || raw == ".." {
			return core.Request{}, fmt.Errorf("contract %s: path parameter %q cannot be %q", c.Name, p, raw)
		}
		path = strings.ReplaceAll(path, "{"+p+"}", url.PathEscape(raw))
	}

	req := core.Request{Path: path, Method: c.Method}
	if c.Method == http.MethodGet {
		return req, nil
	}

	body := make(map[string]any, len(args))
	for k, v := range args {
		body[k] = v
	}
	for _, p := range params {
		delete(body, p)
	}
	req.Body = body
	return req, nil
}
