package gateway

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/action"
	"github.com/illyshaieb/ace/retry"
	"github.com/illyshaieb/ace/session"
)

// scriptedProvider replays a fixed sequence of responses and errors,
// recording every request it sees.
type scriptedProvider struct {
	script []func() (*ace.Response, error)
	calls  int
	seen   [][]ace.Message
	opts   []*ace.Options
}

func (p *scriptedProvider) Chat(_ context.Context, messages []ace.Message, opts ...ace.Option) (*ace.Response, error) {
	p.seen = append(p.seen, messages)
	p.opts = append(p.opts, ace.ApplyOptions(opts...))
	if p.calls >= len(p.script) {
		return nil, errors.New("scripted provider exhausted")
	}
	step := p.script[p.calls]
	p.calls++
	return step()
}

func respondText(text string) func() (*ace.Response, error) {
	return func() (*ace.Response, error) {
		return &ace.Response{Content: text, FinishReason: "stop"}, nil
	}
}

func respondToolCall(id, name, args string) func() (*ace.Response, error) {
	return func() (*ace.Response, error) {
		return &ace.Response{
			FinishReason: "tool_calls",
			ToolCalls:    []ace.ToolCall{{ID: id, Name: name, Arguments: args}},
		}, nil
	}
}

func respondError(err error) func() (*ace.Response, error) {
	return func() (*ace.Response, error) { return nil, err }
}

func weatherRegistry(t *testing.T) *action.Registry {
	t.Helper()
	reg := action.NewRegistry()
	err := reg.Register(action.Descriptor{
		Name:        "get_weather",
		Description: "Get the current weather for a location.",
		Params: action.Params{
			{Name: "location", Type: action.TypeString, Description: "City name.", Required: true},
		},
		RequiresInput: true,
		Handler: func(_ context.Context, args action.Args) (any, error) {
			return "15°C, cloudy in " + args.String("location"), nil
		},
	})
	require.NoError(t, err)
	return reg
}

func TestSendTurnPlainReply(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondText("Hello! How can I help?"),
	}}
	gw := New(provider, action.NewRegistry(), WithPersona("You are ACE."))

	sess := session.New()
	sess.Append(ace.NewUserMessage("hello"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, StateFinalReply, res.State)
	assert.Equal(t, "Hello! How can I help?", res.Text)
	assert.Equal(t, 0, res.Rounds)

	turns := sess.Snapshot()
	require.Len(t, turns, 2)
	assert.Equal(t, ace.RoleUser, turns[0].Role)
	assert.Equal(t, ace.RoleAssistant, turns[1].Role)

	require.Len(t, provider.opts, 1)
	assert.Equal(t, "You are ACE.", provider.opts[0].System)
}

func TestSendTurnSingleToolRound(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondToolCall("call-1", "get_weather", `{"location": "London"}`),
		respondText("It is 15°C in London."),
	}}
	gw := New(provider, weatherRegistry(t))

	sess := session.New()
	sess.Append(ace.NewUserMessage("what's the weather in London?"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, StateFinalReply, res.State)
	assert.Equal(t, "It is 15°C in London.", res.Text)
	assert.Equal(t, 1, res.Rounds)

	// Exactly three turns: the user's, one tool round, the final reply.
	turns := sess.Snapshot()
	require.Len(t, turns, 3)
	assert.Equal(t, ace.RoleUser, turns[0].Role)
	assert.Equal(t, ace.RoleTool, turns[1].Role)
	assert.Equal(t, ace.RoleAssistant, turns[2].Role)

	require.Len(t, turns[1].ToolCalls, 1)
	require.Len(t, turns[1].ToolResults, 1)
	assert.Equal(t, "call-1", turns[1].ToolResults[0].ToolCallID)
	assert.False(t, turns[1].ToolResults[0].IsError)
	assert.Contains(t, turns[1].ToolResults[0].Content, "London")

	// The second model call must have seen the tool round.
	require.Len(t, provider.seen, 2)
	assert.Len(t, provider.seen[0], 1)
	assert.Len(t, provider.seen[1], 2)
}

func TestSendTurnFailedActionReentersLoop(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondToolCall("call-1", "get_weather", `{}`),
		respondText("I need a location to look up the weather."),
	}}
	gw := New(provider, weatherRegistry(t))

	sess := session.New()
	sess.Append(ace.NewUserMessage("weather please"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, StateFinalReply, res.State)

	turns := sess.Snapshot()
	require.Len(t, turns, 3)
	require.Len(t, turns[1].ToolResults, 1)
	assert.True(t, turns[1].ToolResults[0].IsError)
}

func TestSendTurnUnknownActionBecomesFailedResult(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondToolCall("call-1", "launch_rocket", `{}`),
		respondText("I can't do that."),
	}}
	gw := New(provider, action.NewRegistry())

	sess := session.New()
	sess.Append(ace.NewUserMessage("launch the rocket"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "I can't do that.", res.Text)

	turns := sess.Snapshot()
	require.Len(t, turns, 3)
	assert.True(t, turns[1].ToolResults[0].IsError)
	assert.Contains(t, turns[1].ToolResults[0].Content, "launch_rocket")
}

func TestSendTurnLoopCap(t *testing.T) {
	// A model that requests a tool on every call never converges.
	var script []func() (*ace.Response, error)
	for range 10 {
		script = append(script, respondToolCall("call-x", "get_weather", `{"location": "London"}`))
	}
	provider := &scriptedProvider{script: script}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	gw := New(provider, weatherRegistry(t), WithMaxRounds(3), WithLogger(logger))

	sess := session.New()
	sess.Append(ace.NewUserMessage("weather forever"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.Error(t, err)

	var loopErr *ToolLoopExceededError
	require.ErrorAs(t, err, &loopErr)
	assert.Equal(t, 3, loopErr.Rounds)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, DefaultApology, res.Text)
	assert.Equal(t, 3, res.Rounds)

	// Exactly cap tool rounds dispatched, cap+1 model calls made.
	assert.Equal(t, 4, provider.calls)
	assert.Contains(t, buf.String(), "tool loop cap reached")
}

func TestSendTurnProviderFault(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondError(ace.NewPermanentError("invalid api key", 401, nil)),
	}}
	gw := New(provider, action.NewRegistry(), WithRetryConfig(retry.Disabled()))

	sess := session.New()
	sess.Append(ace.NewUserMessage("hello"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, DefaultApology, res.Text)
	assert.Equal(t, 1, provider.calls)
}

func TestSendTurnRetriesTransientFault(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondError(ace.NewTransientError("rate limited", 429, nil)),
		respondText("All good now."),
	}}
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = 0
	cfg.Jitter = 0
	gw := New(provider, action.NewRegistry(), WithRetryConfig(cfg))

	sess := session.New()
	sess.Append(ace.NewUserMessage("hello"))

	res, err := gw.SendTurn(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "All good now.", res.Text)
	assert.Equal(t, 2, provider.calls)
}

func TestSendTurnContextCancelled(t *testing.T) {
	provider := &scriptedProvider{script: []func() (*ace.Response, error){
		respondText("never reached"),
	}}
	gw := New(provider, action.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := session.New()
	sess.Append(ace.NewUserMessage("hello"))

	res, err := gw.SendTurn(ctx, sess)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, 0, provider.calls)
}

func TestDeclareToolsTracksRegistry(t *testing.T) {
	reg := action.NewRegistry()
	gw := New(&scriptedProvider{}, reg)
	assert.Empty(t, gw.DeclareTools())

	require.NoError(t, reg.Register(action.Descriptor{
		Name:        "flip_coin",
		Description: "Flip a coin.",
		Handler: func(_ context.Context, _ action.Args) (any, error) {
			return "heads", nil
		},
	}))
	tools := gw.DeclareTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "flip_coin", tools[0].Name)
}
