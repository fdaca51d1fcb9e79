package action

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ace "github.com/illyshaieb/ace"
)

// Dispatcher validates model-issued tool calls against a Registry and
// executes the matching handler.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Execute runs the handler for a tool call. It always returns an
// ace.ToolResult: every failure mode (unknown action, malformed or
// missing arguments, handler error, handler panic) becomes a failed
// result rather than a propagated fault, so a bad call from the model
// never terminates the conversation.
func (d *Dispatcher) Execute(ctx context.Context, call ace.ToolCall) ace.ToolResult {
	desc, err := d.registry.Get(call.Name)
	if err != nil {
		return failedResult(call, err)
	}

	args, err := parseArguments(desc, call.Arguments)
	if err != nil {
		return failedResult(call, err)
	}

	if desc.RequiresInput && len(args) == 0 {
		return failedResult(call, &MissingArgumentError{Action: desc.Name, Param: firstParamName(desc)})
	}

	if err := validateArguments(desc, args); err != nil {
		return failedResult(call, err)
	}

	value, err := d.invoke(ctx, desc, args)
	if err != nil {
		return failedResult(call, err)
	}

	return ace.ToolResult{
		ToolCallID: call.ID,
		Content:    coerceToString(value),
	}
}

// invoke runs the handler inside a fault boundary. A panicking handler
// is reported as a failed dispatch with a sanitized message.
func (d *Dispatcher) invoke(ctx context.Context, desc Descriptor, args Args) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("action: %s: handler failed unexpectedly", desc.Name)
		}
	}()
	return desc.Handler(ctx, args)
}

func parseArguments(desc Descriptor, raw string) (Args, error) {
	if strings.TrimSpace(raw) == "" {
		return Args{}, nil
	}

	var args Args
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, &MalformedArgumentsError{Action: desc.Name, Err: err}
	}
	if args == nil {
		args = Args{}
	}
	return args, nil
}

// validateArguments checks the supplied arguments against the declared
// parameter schema. Extra arguments the schema does not declare are
// ignored; the model sometimes volunteers them.
func validateArguments(desc Descriptor, args Args) error {
	for _, param := range desc.Params {
		value, present := args[param.Name]
		if !present {
			if param.Required {
				return &MissingArgumentError{Action: desc.Name, Param: param.Name}
			}
			continue
		}
		if !param.Type.checkType(value) {
			return &InvalidArgumentError{Action: desc.Name, Param: param.Name, Want: param.Type, Got: value}
		}
	}
	return nil
}

func firstParamName(desc Descriptor) string {
	for _, param := range desc.Params {
		if param.Required {
			return param.Name
		}
	}
	if len(desc.Params) > 0 {
		return desc.Params[0].Name
	}
	return ""
}

func failedResult(call ace.ToolCall, err error) ace.ToolResult {
	return ace.ToolResult{
		ToolCallID: call.ID,
		Content:    err.Error(),
		IsError:    true,
	}
}

// coerceToString renders a handler's return value as transcript text.
func coerceToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
