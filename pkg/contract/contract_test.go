package contract

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/opsmcp/pkg/schema"
)

func TestDefaults_AreConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Defaults(true) {
		require.NoError(t, c.Check(), c.Name)
		assert.False(t, seen[c.Name], "duplicate tool %s", c.Name)
		seen[c.Name] = true
	}
	assert.Len(t, seen, len(ReadOnly())+len(Mutations()))
}

func TestDefaults_MutationsGated(t *testing.T) {
	for _, c := range Defaults(false) {
		assert.False(t, c.Mutating, "%s should not be registered without mutations", c.Name)
	}
	assert.Len(t, Defaults(false), 17)

	for _, c := range Mutations() {
		assert.True(t, c.Mutating, c.Name)
		assert.NotEqual(t, http.MethodGet, c.Method, c.Name)
	}
}

func TestCheck_RejectsBrokenContracts(t *testing.T) {
	base := ToolContract{Name: "x", Method: http.MethodGet, Path: "/x", Input: schema.NewObject()}
	require.NoError(t, base.Check())

	cases := map[string]func(c *ToolContract){
		"no name":        func(c *ToolContract) { c.Name = "" },
		"bad method":     func(c *ToolContract) { c.Method = http.MethodDelete },
		"relative path":  func(c *ToolContract) { c.Path = "x" },
		"no input":       func(c *ToolContract) { c.Input = nil },
		"unbound param":  func(c *ToolContract) { c.Path = "/x/{id}" },
		"optional param": func(c *ToolContract) {
			c.Path = "/x/{id}"
			c.Input = schema.NewObject(schema.Field{Name: "id", Type: schema.String()})
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Check())
		})
	}
}

func TestPathParams(t *testing.T) {
	c := ToolContract{Path: "/incidents/{id}/timeline/{entry_id}"}
	assert.Equal(t, []string{"id", "entry_id"}, c.PathParams())
	assert.Empty(t, Health.PathParams())
}

func TestResolve_GetSubstitutesAndEscapes(t *testing.T) {
	req, err := GetTeam.Resolve(map[string]any{"id": "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, "/teams/a%2Fb%20c", req.Path)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Nil(t, req.Body)
}

func TestResolve_PostSendsArgsAsBody(t *testing.T) {
	args := map[string]any{"query": "payments", "limit": 5}
	req, err := QueryTeams.Resolve(args)
	require.NoError(t, err)
	assert.Equal(t, "/teams/query", req.Path)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, map[string]any{"query": "payments", "limit": 5}, req.Body)

	// the caller's map is not aliased
	req.Body.(map[string]any)["query"] = "changed"
	assert.Equal(t, "payments", args["query"])
}

func TestResolve_EmptyPostSendsEmptyObject(t *testing.T) {
	req, err := QueryTeams.Resolve(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, req.Body)
}

func TestResolve_PathParamsLeaveTheBody(t *testing.T) {
	req, err := UpdateIncident.Resolve(map[string]any{"id": "INC-1", "status": "resolved"})
	require.NoError(t, err)
	assert.Equal(t, "/incidents/INC-1", req.Path)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, map[string]any{"status": "resolved"}, req.Body)
}

func TestResolve_MissingParam(t *testing.T) {
	_, err := GetIncident.Resolve(map[string]any{})
	assert.Error(t, err)
}

func TestResolve_RejectsDotSegments(t *testing.T) {
	for _, id := range []string{".", ".."} {
		_, err := GetIncident.Resolve(map[string]any{"id": id})
		assert.ErrorContains(t, err, "cannot be")
	}

	req, err := GetIncident.Resolve(map[string]any{"id": "..INC"})
	require.NoError(t, err)
	assert.Equal(t, "/incidents/..INC", req.Path)
}

func TestOutputShape_Check(t *testing.T) {
	obj := OutputShape{Kind: OutputObject}
	arr := OutputShape{Kind: OutputArray}
	anyShape := OutputShape{Kind: OutputAny}

	assert.NoError(t, obj.Check(map[string]any{}))
	assert.NoError(t, obj.Check(nil))
	assert.EqualError(t, obj.Check([]any{}), "expected object, got array")

	assert.NoError(t, arr.Check([]any{}))
	assert.EqualError(t, arr.Check("x"), "expected array, got string")

	assert.NoError(t, anyShape.Check(1.5))
	assert.NoError(t, anyShape.Check(true))
}

func TestOpenAPI_Valid(t *testing.T) {
	doc := OpenAPI(Defaults(true), "test", "http://localhost:8080")
	require.NoError(t, doc.Validate(context.Background()))

	item := doc.Paths.Value("/teams/{id}")
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	assert.Equal(t, "get-team", item.Get.OperationID)

	query := doc.Paths.Value("/incidents/query")
	require.NotNil(t, query)
	require.NotNil(t, query.Post)
	require.NotNil(t, query.Post.RequestBody)

	patch := doc.Paths.Value("/incidents/{id}")
	require.NotNil(t, patch)
	assert.NotNil(t, patch.Get)
	assert.NotNil(t, patch.Patch)
}

func TestOpenAPIYAML(t *testing.T) {
	out, err := OpenAPIYAML(OpenAPI(ReadOnly(), "test", ""))
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "/teams/{id}:")
	assert.Contains(t, text, "operationId: query-metrics")
	assert.NotContains(t, text, "create-incident")
}
