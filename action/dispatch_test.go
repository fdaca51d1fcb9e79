package action

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	ace "github.com/illyshaieb/ace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherUnknownAction(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		d := NewDispatcher(NewRegistry())

		result := d.Execute(context.Background(), ace.ToolCall{ID: "call-1", Name: "NOPE"})
		assert.True(t, result.IsError)
		assert.Equal(t, "call-1", result.ToolCallID)
		assert.Contains(t, result.Content, "unknown action")
	})

	t.Run("non-matching registry", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(Descriptor{Name: "greet", Handler: echoHandler("Hello!")})
		d := NewDispatcher(reg)

		result := d.Execute(context.Background(), ace.ToolCall{Name: "NOPE", Arguments: "{}"})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "NOPE")
	})
}

func TestDispatcherArgumentValidation(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{
		Name:        "random_number",
		Description: "Pick a random integer in a range",
		Params: Params{
			{Name: "min_value", Type: TypeInteger, Required: true},
			{Name: "max_value", Type: TypeInteger, Required: true},
		},
		RequiresInput: true,
		Handler: func(ctx context.Context, args Args) (any, error) {
			lo, hi := args.Int("min_value"), args.Int("max_value")
			if hi < lo {
				return nil, errors.New("max_value must not be below min_value")
			}
			return lo + rand.Intn(hi-lo+1), nil
		},
	})
	d := NewDispatcher(reg)

	t.Run("type mismatch yields InvalidArgumentError result", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{
			Name:      "random_number",
			Arguments: `{"min_value": "a"}`,
		})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "min_value")
		assert.Contains(t, result.Content, "integer")
	})

	t.Run("fractional number is not an integer", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{
			Name:      "random_number",
			Arguments: `{"min_value": 1.5, "max_value": 10}`,
		})
		assert.True(t, result.IsError)
	})

	t.Run("missing required argument yields MissingArgumentError result", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{
			Name:      "random_number",
			Arguments: `{"min_value": 1}`,
		})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "max_value")
	})

	t.Run("no arguments at all is rejected when input is required", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{Name: "random_number"})
		assert.True(t, result.IsError)
	})

	t.Run("malformed arguments JSON is rejected", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{
			Name:      "random_number",
			Arguments: `{"min_value": `,
		})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "malformed")
	})

	t.Run("valid arguments yield integer in range", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{
			ID:        "call-7",
			Name:      "random_number",
			Arguments: `{"min_value": 1, "max_value": 10}`,
		})
		require.False(t, result.IsError, result.Content)
		assert.Equal(t, "call-7", result.ToolCallID)

		n, err := strconv.Atoi(result.Content)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)
	})

	t.Run("extra undeclared arguments are ignored", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{
			Name:      "random_number",
			Arguments: `{"min_value": 3, "max_value": 3, "mood": "lucky"}`,
		})
		assert.False(t, result.IsError)
		assert.Equal(t, "3", result.Content)
	})
}

func TestDispatcherFaultBoundary(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Descriptor{
		Name: "explode",
		Handler: func(ctx context.Context, args Args) (any, error) {
			var zero int
			return 1 / zero, nil
		},
	})
	reg.Register(Descriptor{
		Name: "fail",
		Handler: func(ctx context.Context, args Args) (any, error) {
			return nil, errors.New("upstream service unavailable")
		},
	})
	d := NewDispatcher(reg)

	t.Run("panicking handler yields sanitized failed result", func(t *testing.T) {
		var result ace.ToolResult
		assert.NotPanics(t, func() {
			result = d.Execute(context.Background(), ace.ToolCall{ID: "call-9", Name: "explode"})
		})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "explode")
		assert.NotContains(t, result.Content, "runtime error")
	})

	t.Run("handler error yields failed result", func(t *testing.T) {
		result := d.Execute(context.Background(), ace.ToolCall{Name: "fail"})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "upstream service unavailable")
	})
}

func TestDispatcherResultCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string passes through", "Heads", "Heads"},
		{"int", 6, "6"},
		{"float", 21.5, "21.5"},
		{"bool", true, "true"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Register(Descriptor{
				Name: "value",
				Handler: func(ctx context.Context, args Args) (any, error) {
					return tt.value, nil
				},
			})

			result := NewDispatcher(reg).Execute(context.Background(), ace.ToolCall{Name: "value"})
			require.False(t, result.IsError)
			assert.Equal(t, tt.want, result.Content)
		})
	}
}
