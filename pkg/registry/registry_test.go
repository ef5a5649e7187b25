package registry

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/opsmcp/pkg/contract"
	"github.com/aretw0/opsmcp/pkg/schema"
)

func TestDefault(t *testing.T) {
	reg, err := Default(false)
	require.NoError(t, err)
	assert.Equal(t, len(contract.ReadOnly()), reg.Len())

	c, ok := reg.Lookup("query-incidents")
	require.True(t, ok)
	assert.Equal(t, "/incidents/query", c.Path)

	_, ok = reg.Lookup("create-incident")
	assert.False(t, ok)

	withMutations, err := Default(true)
	require.NoError(t, err)
	_, ok = withMutations.Lookup("create-incident")
	assert.True(t, ok)
}

func TestNames_KeepRegistrationOrder(t *testing.T) {
	reg, err := New(contract.GetTeam, contract.QueryTeams, contract.Health)
	require.NoError(t, err)
	assert.Equal(t, []string{"get-team", "query-teams", "health"}, reg.Names())

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "health", all[2].Name)

	// returned slices are copies
	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, "get-team", reg.Names()[0])
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(contract.GetTeam, contract.GetTeam)
	assert.ErrorContains(t, err, "duplicate tool name: get-team")
}

func TestNew_RejectsInvalidContract(t *testing.T) {
	_, err := New(contract.ToolContract{Name: "broken", Method: http.MethodDelete, Path: "/x", Input: schema.NewObject()})
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	_, err = reg.Get("nope")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.Name)
	assert.Equal(t, "tool not found: nope", err.Error())
}
