package gateway_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/opsmcp/internal/logging"
	"github.com/aretw0/opsmcp/pkg/core"
	"github.com/aretw0/opsmcp/pkg/gateway"
	"github.com/aretw0/opsmcp/pkg/registry"
)

// fakeCore answers every call with a fixed team.
type fakeCore struct{}

func (fakeCore) Do(_ context.Context, req core.Request) (core.Response, error) {
	return core.Response{Value: map[string]any{"id": "sre", "request": req.Method + " " + req.Path}}, nil
}

func ExampleDispatcher_Dispatch() {
	reg, err := registry.Default(false)
	if err != nil {
		log.Fatal(err)
	}
	d := gateway.New(reg, fakeCore{}, logging.NewNop())

	env, err := d.Dispatch(context.Background(), "get-team", map[string]any{"id": "sre"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(env.Text)

	_, err = d.Dispatch(context.Background(), "get-team", map[string]any{})
	fmt.Println(gateway.Kind(err))
	// Output:
	// {
	//   "id": "sre",
	//   "request": "GET /teams/sre"
	// }
	// validation
}
