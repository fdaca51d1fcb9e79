package action

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	ace "github.com/illyshaieb/ace"
)

// Args holds the validated arguments passed to a handler. Values are
// decoded JSON: string, float64, or bool depending on the declared type.
type Args map[string]any

// String returns the named argument as a string, or "" if absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the named argument as an int, or 0 if absent.
func (a Args) Int(name string) int {
	f, _ := a[name].(float64)
	return int(f)
}

// Float returns the named argument as a float64, or 0 if absent.
func (a Args) Float(name string) float64 {
	f, _ := a[name].(float64)
	return f
}

// Bool returns the named argument as a bool, or false if absent.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Handler executes an action with validated arguments. The returned value
// may be any scalar or string; the dispatcher coerces it to text for the
// transcript.
type Handler func(ctx context.Context, args Args) (any, error)

// Descriptor describes one registered action.
type Descriptor struct {
	// Name is the unique, case-sensitive identifier of the action.
	Name string
	// Description explains purpose and usage to the model.
	Description string
	// Params declares the parameter schema, in declaration order.
	Params Params
	// RequiresInput indicates the action is meaningless without at least
	// one user-supplied argument; calls with no arguments are rejected.
	RequiresInput bool
	// Schema, when set, overrides the declaration built from Params.
	// Used for actions proxied from external servers that publish their
	// own JSON Schema; such arguments are validated remotely.
	Schema json.RawMessage
	// Handler is the function to execute. Exclusively owned by this
	// descriptor.
	Handler Handler
}

// Tool builds the wire-format tool declaration for this descriptor.
func (d Descriptor) Tool() ace.Tool {
	params := d.Schema
	if len(params) == 0 {
		params = d.Params.Schema()
	}
	return ace.Tool{
		Name:        d.Name,
		Description: d.Description,
		Parameters:  params,
	}
}

// Registry maps action names to descriptors. Registration happens at
// process start; afterwards the registry is read-only and safe for
// concurrent readers.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	actions map[string]Descriptor
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty action registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		actions: make(map[string]Descriptor),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Register stores the descriptor under its name. A duplicate name
// overwrites the earlier registration and logs a warning; last write
// wins. The original registration position is kept so All stays in
// first-registration order.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("action: register: name is empty")
	}
	if d.Handler == nil {
		return fmt.Errorf("action: register %s: handler is nil", d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[d.Name]; exists {
		r.logger.Warn("overwriting registered action", "action", d.Name)
	} else {
		r.order = append(r.order, d.Name)
	}
	r.actions[d.Name] = d
	return nil
}

// Get retrieves a descriptor by name.
// Returns an *UnknownActionError if the name is not registered.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.actions[name]
	if !ok {
		return Descriptor{}, &UnknownActionError{Name: name}
	}
	return d, nil
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.actions[name])
	}
	return result
}

// Tools returns the wire-format tool declarations for every registered
// action, in registration order. Built fresh on each call so it never
// goes stale against the registry.
func (r *Registry) Tools() []ace.Tool {
	all := r.All()
	tools := make([]ace.Tool, len(all))
	for i, d := range all {
		tools[i] = d.Tool()
	}
	return tools
}

// Names returns the names of all registered actions in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}
