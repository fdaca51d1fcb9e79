// Package sqlite persists conversation transcripts in SQLite. It
// implements the session.Recorder boundary, one recorder per
// conversation row.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	conversation_id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	message_id INTEGER PRIMARY KEY AUTOINCREMENT,
	conversation_id INTEGER NOT NULL,
	sender TEXT NOT NULL,
	content TEXT NOT NULL,
	tool_calls TEXT,
	tool_results TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (conversation_id) REFERENCES conversations (conversation_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation
	ON messages (conversation_id, message_id);
`

// Store is a SQLite-backed transcript store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartConversation creates a new conversation row and returns its ID.
func (s *Store) StartConversation(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO conversations DEFAULT VALUES`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: start conversation: %w", err)
	}
	return res.LastInsertId()
}

// LatestConversation returns the most recent conversation ID, or ok
// false when the store is empty.
func (s *Store) LatestConversation(ctx context.Context) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id FROM conversations ORDER BY conversation_id DESC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("sqlite: latest conversation: %w", err)
	}
	return id, true, nil
}

// Conversation returns a recorder bound to one conversation row.
func (s *Store) Conversation(id int64) *Conversation {
	return &Conversation{store: s, id: id}
}

// Conversation reads and writes the transcript of a single conversation.
type Conversation struct {
	store *Store
	id    int64
}

// ID returns the conversation row ID.
func (c *Conversation) ID() int64 { return c.id }

// Load retrieves the persisted transcript, oldest first.
func (c *Conversation) Load(ctx context.Context) ([]ace.Message, error) {
	rows, err := c.store.db.QueryContext(ctx,
		`SELECT sender, content, tool_calls, tool_results
		 FROM messages WHERE conversation_id = ? ORDER BY message_id`,
		c.id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load conversation %d: %w", c.id, err)
	}
	defer rows.Close()

	var msgs []ace.Message
	for rows.Next() {
		var sender, content string
		var toolCalls, toolResults sql.NullString
		if err := rows.Scan(&sender, &content, &toolCalls, &toolResults); err != nil {
			return nil, fmt.Errorf("sqlite: scan message: %w", err)
		}

		msg := ace.Message{
			ID:      ace.GenerateMessageID(),
			Role:    ace.Role(sender),
			Content: content,
		}
		if toolCalls.Valid && toolCalls.String != "" {
			if err := json.Unmarshal([]byte(toolCalls.String), &msg.ToolCalls); err != nil {
				return nil, fmt.Errorf("sqlite: decode tool calls: %w", err)
			}
		}
		if toolResults.Valid && toolResults.String != "" {
			if err := json.Unmarshal([]byte(toolResults.String), &msg.ToolResults); err != nil {
				return nil, fmt.Errorf("sqlite: decode tool results: %w", err)
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// Record appends completed turns to the transcript in a single
// transaction, preserving order.
func (c *Conversation) Record(ctx context.Context, msgs []ace.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin record: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (conversation_id, sender, content, tool_calls, tool_results)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("sqlite: prepare record: %w", err)
	}
	defer stmt.Close()

	for _, msg := range msgs {
		var toolCalls, toolResults any
		if len(msg.ToolCalls) > 0 {
			data, err := json.Marshal(msg.ToolCalls)
			if err != nil {
				return fmt.Errorf("sqlite: encode tool calls: %w", err)
			}
			toolCalls = string(data)
		}
		if len(msg.ToolResults) > 0 {
			data, err := json.Marshal(msg.ToolResults)
			if err != nil {
				return fmt.Errorf("sqlite: encode tool results: %w", err)
			}
			toolResults = string(data)
		}
		if _, err := stmt.ExecContext(ctx, c.id, string(msg.Role), msg.Content, toolCalls, toolResults); err != nil {
			return fmt.Errorf("sqlite: insert message: %w", err)
		}
	}

	return tx.Commit()
}

var _ session.Recorder = (*Conversation)(nil)
