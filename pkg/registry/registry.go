package registry

import (
	"fmt"

	"github.com/aretw0/opsmcp/pkg/contract"
)

// NotFoundError is returned by Get for names that were never registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}

// Registry maps tool names to contracts. It is built once and never
// modified, so it is shared freely between goroutines.
type Registry struct {
	tools map[string]contract.ToolContract
	order []string
}

// New builds a registry from contracts, rejecting duplicate names and
// inconsistent contracts.
func New(contracts ...contract.ToolContract) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]contract.ToolContract, len(contracts)),
		order: make([]string, 0, len(contracts)),
	}
	for _, c := range contracts {
		if err := c.Check(); err != nil {
			return nil, err
		}
		if _, dup := r.tools[c.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name: %s", c.Name)
		}
		r.tools[c.Name] = c
		r.order = append(r.order, c.Name)
	}
	return r, nil
}

// Default builds the registry for the built-in tool table.
func Default(enableMutations bool) (*Registry, error) {
	return New(contract.Defaults(enableMutations)...)
}

// Lookup returns the contract registered under name.
func (r *Registry) Lookup(name string) (contract.ToolContract, bool) {
	c, ok := r.tools[name]
	return c, ok
}

// Get is Lookup with a typed error for unknown names.
func (r *Registry) Get(name string) (contract.ToolContract, error) {
	c, ok := r.tools[name]
	if !ok {
		return contract.ToolContract{}, &NotFoundError{Name: name}
	}
	return c, nil
}

// All returns the contracts in registration order.
func (r *Registry) All() []contract.ToolContract {
	out := make([]contract.ToolContract, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }
