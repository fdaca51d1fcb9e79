// Package assistant is the top-level conversational surface. It owns the
// session for one conversation, runs each user turn through the gateway,
// and persists completed turns through a session.Recorder.
package assistant

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/gateway"
	"github.com/illyshaieb/ace/session"
)

// DefaultPersona is the system prompt used when none is configured.
const DefaultPersona = "You are ACE, a helpful personal assistant. " +
	"Use the available actions when they can answer the user's request, " +
	"and reply in plain conversational text."

// Assistant answers user input one turn at a time. Turns are serialized:
// a second Respond call blocks until the first finishes.
type Assistant struct {
	mu       sync.Mutex
	gateway  *gateway.Gateway
	session  *session.Session
	recorder session.Recorder
	logger   *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithRecorder sets the persistence collaborator. Without one, the
// transcript lives only in memory.
func WithRecorder(rec session.Recorder) Option {
	return func(a *Assistant) { a.recorder = rec }
}

// WithLogger sets the logger for turn lifecycle diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New builds an Assistant over the given gateway. If a recorder is
// configured, the prior transcript is loaded so the conversation resumes
// where it left off.
func New(ctx context.Context, gw *gateway.Gateway, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		gateway: gw,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.recorder != nil {
		history, err := a.recorder.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("assistant: load history: %w", err)
		}
		a.session = session.NewFrom(history)
		a.logger.Debug("resumed conversation", "turns", len(history))
	} else {
		a.session = session.New()
	}
	return a, nil
}

// Respond answers one user input. On success the new turns are committed
// to the session and recorded; on failure every turn staged during the
// attempt is discarded, the transcript is as if the turn never happened,
// and the returned text still holds something safe to show the user.
func (a *Assistant) Respond(ctx context.Context, input string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	input = strings.TrimSpace(input)
	if input == "" {
		return "", ace.NewUserInputError("empty input", 0, nil)
	}

	a.session.Append(ace.NewUserMessage(input))
	res, err := a.gateway.SendTurn(ctx, a.session)
	if err != nil {
		a.session.Discard()
		a.logger.Warn("turn failed", "error", err)
		return res.Text, err
	}

	turns := a.session.Commit()
	if a.recorder != nil {
		if recErr := a.recorder.Record(ctx, turns); recErr != nil {
			// The reply already happened; losing the write must not
			// surface as a failed turn.
			a.logger.Error("recording turn failed", "error", recErr)
		}
	}
	a.logger.Debug("turn complete", "rounds", res.Rounds,
		"input_tokens", res.Usage.InputTokens, "output_tokens", res.Usage.OutputTokens)
	return res.Text, nil
}

// History returns a copy of the committed and staged transcript.
func (a *Assistant) History() []ace.Message {
	return a.session.Snapshot()
}
