// Package action provides the action registry and dispatcher for ACE.
//
// An action is a named local function the remote model may ask to have
// executed. Each action is described by a [Descriptor]: a unique name, a
// model-facing description, an ordered parameter schema, and the handler
// itself. The [Registry] holds the descriptors; the [Dispatcher] validates
// a model-issued [ace.ToolCall] against the registry and runs the handler.
//
// # Registration
//
// Actions are registered once at process start, before the first dispatch:
//
//	reg := action.NewRegistry()
//	reg.Register(action.Descriptor{
//	    Name:        "get_weather",
//	    Description: "Get the current weather for a location",
//	    Params: action.Params{
//	        {Name: "location", Type: action.TypeString, Required: true,
//	            Description: "The city to look up, e.g. 'London'"},
//	    },
//	    Handler: getWeather,
//	})
//
// Registering a name twice overwrites the earlier descriptor and logs a
// warning. This is deliberate: tests and plugins override built-ins by
// re-registering under the same name.
//
// # Dispatch
//
// Dispatch failures are data, not faults. Execute always returns an
// [ace.ToolResult]; an unknown action, a missing or mistyped argument, a
// handler error, or a handler panic all produce a failed result that is
// fed back to the model so the conversation can continue.
package action
