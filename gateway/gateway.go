package gateway

import (
	"context"
	"io"
	"log/slog"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/action"
	"github.com/illyshaieb/ace/retry"
	"github.com/illyshaieb/ace/session"
)

// State identifies where a turn is in the gateway loop.
type State string

const (
	StateAwaitingModel State = "awaiting_model"
	StateDispatching   State = "dispatching"
	StateFinalReply    State = "final_reply"
	StateFailed        State = "failed"
)

// DefaultMaxRounds bounds how many sequential tool rounds a single user
// turn may trigger before the gateway gives up on the model converging.
const DefaultMaxRounds = 5

// DefaultApology is returned to the user when a turn fails for a reason
// they cannot act on, such as a provider outage or a runaway tool loop.
const DefaultApology = "I'm sorry, I wasn't able to finish that request. Please try again."

// Gateway runs the tool-calling loop for one assistant against one
// chat provider. It is safe for sequential use only; the assistant
// serializes turns above it.
type Gateway struct {
	provider   ace.ChatProvider
	registry   *action.Registry
	dispatcher *action.Dispatcher
	persona    string
	apology    string
	maxRounds  int
	retryCfg   retry.Config
	chatOpts   []ace.Option
	logger     *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithPersona sets the system prompt sent ahead of every transcript.
func WithPersona(persona string) Option {
	return func(g *Gateway) { g.persona = persona }
}

// WithApology overrides the text returned for failed turns.
func WithApology(apology string) Option {
	return func(g *Gateway) { g.apology = apology }
}

// WithMaxRounds overrides the tool round cap. Values below one keep
// the default.
func WithMaxRounds(n int) Option {
	return func(g *Gateway) {
		if n >= 1 {
			g.maxRounds = n
		}
	}
}

// WithRetryConfig sets the retry policy for transient provider faults.
func WithRetryConfig(cfg retry.Config) Option {
	return func(g *Gateway) { g.retryCfg = cfg }
}

// WithChatOptions appends provider options (model, max tokens,
// temperature) applied to every model call.
func WithChatOptions(opts ...ace.Option) Option {
	return func(g *Gateway) { g.chatOpts = append(g.chatOpts, opts...) }
}

// WithLogger sets the logger for round-by-round diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New builds a Gateway over the given provider and action registry.
func New(provider ace.ChatProvider, registry *action.Registry, opts ...Option) *Gateway {
	g := &Gateway{
		provider:   provider,
		registry:   registry,
		dispatcher: action.NewDispatcher(registry),
		apology:    DefaultApology,
		maxRounds:  DefaultMaxRounds,
		retryCfg:   retry.DefaultConfig(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DeclareTools returns the tool declarations for the current registry
// contents. The slice is rebuilt on every call so actions registered
// after the gateway was constructed are still advertised.
func (g *Gateway) DeclareTools() []ace.Tool {
	return g.registry.Tools()
}

// Result is the outcome of one user turn.
type Result struct {
	// Text is the reply to show the user. On failed turns it holds the
	// apology, never an internal error message.
	Text string

	// State is StateFinalReply or StateFailed.
	State State

	// Rounds counts the tool rounds that were dispatched.
	Rounds int

	// Usage aggregates token usage across every model call in the turn.
	Usage ace.Usage
}

// SendTurn runs the loop for the turn already staged on sess. The
// caller appends the user message first; SendTurn appends one tool turn
// per dispatched round and, on success, the final assistant turn.
//
// The returned error is nil only in StateFinalReply. In StateFailed the
// Result still carries the apology text and the staged turns are left
// for the caller to discard.
func (g *Gateway) SendTurn(ctx context.Context, sess *session.Session) (*Result, error) {
	res := &Result{State: StateAwaitingModel}
	tools := g.DeclareTools()

	for {
		if err := ctx.Err(); err != nil {
			res.State = StateFailed
			res.Text = g.apology
			return res, err
		}

		resp, err := retry.Do(ctx, g.retryCfg, func() (*ace.Response, error) {
			opts := make([]ace.Option, 0, len(g.chatOpts)+3)
			opts = append(opts, g.chatOpts...)
			opts = append(opts, ace.WithTools(tools))
			if g.persona != "" {
				opts = append(opts, ace.WithSystem(g.persona))
			}
			return g.provider.Chat(ctx, sess.Snapshot(), opts...)
		})
		if err != nil {
			g.logger.Error("model call failed", "rounds", res.Rounds, "error", err)
			res.State = StateFailed
			res.Text = g.apology
			return res, err
		}
		res.Usage.InputTokens += resp.Usage.InputTokens
		res.Usage.OutputTokens += resp.Usage.OutputTokens

		if len(resp.ToolCalls) == 0 {
			sess.Append(ace.NewAssistantMessage(resp.Content))
			res.State = StateFinalReply
			res.Text = resp.Content
			return res, nil
		}

		if res.Rounds >= g.maxRounds {
			err := &ToolLoopExceededError{Rounds: g.maxRounds}
			g.logger.Error("tool loop cap reached", "rounds", res.Rounds)
			res.State = StateFailed
			res.Text = g.apology
			return res, err
		}

		res.State = StateDispatching
		res.Rounds++
		results := make([]ace.ToolResult, len(resp.ToolCalls))
		for i, call := range resp.ToolCalls {
			g.logger.Debug("dispatching action", "round", res.Rounds, "action", call.Name)
			results[i] = g.dispatcher.Execute(ctx, call)
			if results[i].IsError {
				g.logger.Warn("action failed", "action", call.Name, "detail", results[i].Content)
			}
		}

		turn := ace.NewToolTurn(resp.ToolCalls, results)
		turn.Content = resp.Content
		sess.Append(turn)
		res.State = StateAwaitingModel
	}
}
