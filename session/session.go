// Package session holds the ordered conversation transcript for one
// ongoing conversation.
//
// A Session is owned by exactly one conversation. Turns appended during a
// gateway loop are staged; Commit marks them durable once the loop reaches
// a final reply, Discard drops them if the turn fails or is abandoned.
// Committed turns are never mutated or removed.
package session

import (
	"context"
	"sync"

	ace "github.com/illyshaieb/ace"
)

// Recorder is the persistence collaborator. It loads the prior transcript
// at session start and receives completed turns after each full user turn.
// The persisted schema is the implementation's concern.
type Recorder interface {
	// Load retrieves the previously persisted transcript, oldest first.
	Load(ctx context.Context) ([]ace.Message, error)

	// Record persists completed turns in order. Called once per completed
	// user turn, never for intermediate tool rounds.
	Record(ctx context.Context, msgs []ace.Message) error
}

// Session is the ordered transcript of turns for one conversation.
// Ordering is positional: turns are only ever appended, never reordered.
type Session struct {
	mu        sync.RWMutex
	turns     []ace.Message
	committed int
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// NewFrom creates a session seeded with a previously persisted transcript.
// The seeded turns count as committed.
func NewFrom(history []ace.Message) *Session {
	s := &Session{}
	if len(history) > 0 {
		s.turns = make([]ace.Message, len(history))
		copy(s.turns, history)
		s.committed = len(history)
	}
	return s
}

// Append adds turns to the end of the transcript. Appended turns are
// staged until Commit.
func (s *Session) Append(msgs ...ace.Message) {
	if len(msgs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, msgs...)
}

// Snapshot returns a copy of the full transcript, staged turns included.
// The returned slice does not reflect later appends.
func (s *Session) Snapshot() []ace.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]ace.Message, len(s.turns))
	copy(result, s.turns)
	return result
}

// Len returns the number of turns in the transcript.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Staged returns the number of turns appended since the last Commit.
func (s *Session) Staged() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns) - s.committed
}

// Commit marks all staged turns as durable and returns them, oldest
// first, for handing to the persistence collaborator.
func (s *Session) Commit() []ace.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]ace.Message, len(s.turns)-s.committed)
	copy(staged, s.turns[s.committed:])
	s.committed = len(s.turns)
	return staged
}

// Discard drops all staged turns, restoring the transcript to its last
// committed state. Used after a failed or abandoned user turn so a
// partial tool exchange never leaks into the conversation.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = s.turns[:s.committed]
}
