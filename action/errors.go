package action

import "fmt"

// UnknownActionError is returned when a tool call references an
// unregistered action. This is a data-contract violation from the remote
// model, not a local bug, so callers surface it as a failed tool result.
type UnknownActionError struct {
	Name string
}

// Error returns a formatted error message including the action name.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("action: unknown action: %s", e.Name)
}

// MissingArgumentError is returned when a required parameter is absent
// from a tool call's arguments.
type MissingArgumentError struct {
	Action string
	Param  string
}

// Error returns a formatted error message naming the action and parameter.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("action: %s: missing required argument %q", e.Action, e.Param)
}

// InvalidArgumentError is returned when a supplied argument does not
// match the declared parameter type.
type InvalidArgumentError struct {
	Action string
	Param  string
	Want   ParamType
	Got    any
}

// Error returns a formatted error message describing the type mismatch.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("action: %s: argument %q must be %s, got %T", e.Action, e.Param, e.Want, e.Got)
}

// MalformedArgumentsError is returned when a tool call's arguments are
// not a valid JSON object.
type MalformedArgumentsError struct {
	Action string
	Err    error
}

// Error returns a formatted error message including the parse failure.
func (e *MalformedArgumentsError) Error() string {
	return fmt.Sprintf("action: %s: malformed arguments: %v", e.Action, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *MalformedArgumentsError) Unwrap() error {
	return e.Err
}
