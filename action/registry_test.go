package action

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(reply string) Handler {
	return func(ctx context.Context, args Args) (any, error) {
		return reply, nil
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Run("registers and retrieves a descriptor", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(Descriptor{
			Name:        "greet",
			Description: "Provides a greeting message",
			Handler:     echoHandler("Hello!"),
		})

		assert.Equal(t, 1, reg.Len())

		desc, err := reg.Get("greet")
		require.NoError(t, err)
		assert.Equal(t, "greet", desc.Name)
		assert.Equal(t, "Provides a greeting message", desc.Description)
	})

	t.Run("get unknown name fails with UnknownActionError", func(t *testing.T) {
		reg := NewRegistry()

		_, err := reg.Get("NOPE")
		var unknownErr *UnknownActionError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "NOPE", unknownErr.Name)
	})

	t.Run("duplicate name overwrites and warns", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		reg := NewRegistry(WithLogger(logger))
		reg.Register(Descriptor{Name: "greet", Handler: echoHandler("first")})
		reg.Register(Descriptor{Name: "greet", Handler: echoHandler("second")})

		assert.Equal(t, 1, reg.Len())
		assert.Contains(t, buf.String(), "overwriting registered action")
		assert.Contains(t, buf.String(), "greet")

		desc, err := reg.Get("greet")
		require.NoError(t, err)
		value, err := desc.Handler(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})
}

func TestRegistryOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{Name: "get_time", Handler: echoHandler("")})
	reg.Register(Descriptor{Name: "get_date", Handler: echoHandler("")})
	reg.Register(Descriptor{Name: "flip_coin", Handler: echoHandler("")})

	assert.Equal(t, []string{"get_time", "get_date", "flip_coin"}, reg.Names())

	// Re-registration keeps the original position.
	reg.Register(Descriptor{Name: "get_date", Handler: echoHandler("override")})
	assert.Equal(t, []string{"get_time", "get_date", "flip_coin"}, reg.Names())
}

func TestRegistryTools(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{
		Name:        "get_weather",
		Description: "Get the current weather for a location",
		Params: Params{
			{Name: "location", Type: TypeString, Required: true, Description: "The city to look up"},
		},
		Handler: echoHandler("15C"),
	})

	tools := reg.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "get_weather", tools[0].Name)

	var schema struct {
		Type       string `json:"type"`
		Properties map[string]struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(tools[0].Parameters, &schema))
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, "string", schema.Properties["location"].Type)
	assert.Equal(t, []string{"location"}, schema.Required)
}

func TestRegistryToolsStayInSync(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{Name: "greet", Handler: echoHandler("")})
	assert.Len(t, reg.Tools(), 1)

	reg.Register(Descriptor{Name: "get_time", Handler: echoHandler("")})
	assert.Len(t, reg.Tools(), 2)
}

func TestParamsSchema(t *testing.T) {
	params := Params{
		{Name: "min_value", Type: TypeInteger, Required: true},
		{Name: "max_value", Type: TypeInteger, Required: true},
		{Name: "label", Type: TypeString},
	}

	var schema map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(params.Schema(), &schema))
	assert.Contains(t, schema, "properties")
	assert.Contains(t, schema, "required")

	var required []string
	require.NoError(t, json.Unmarshal(schema["required"], &required))
	assert.Equal(t, []string{"min_value", "max_value"}, required)
}
