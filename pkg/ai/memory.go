package ai

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one message of a remembered conversation.
type Turn struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

/*
Memory keeps conversation turns per A2A context in SQLite. A path of
":memory:" gives a throwaway database that lives as long as the Memory.
*/
type Memory struct {
	db *sql.DB
}

func NewMemory(path string) (*Memory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open memory: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	memory := &Memory{db: db}

	if err := memory.init(); err != nil {
		db.Close()
		return nil, err
	}

	return memory, nil
}

func (memory *Memory) init() error {
	_, err := memory.db.Exec(`CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		context_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS turns_context ON turns (context_id, id);`)

	if err != nil {
		return fmt.Errorf("failed to migrate memory: %w", err)
	}

	return nil
}

// Append stores turns for contextID in order, all or nothing.
func (memory *Memory) Append(ctx context.Context, contextID string, turns ...Turn) error {
	tx, err := memory.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, turn := range turns {
		createdAt := turn.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO turns (context_id, role, content, created_at) VALUES (?, ?, ?, ?)",
			contextID, turn.Role, turn.Content, createdAt,
		); err != nil {
			return fmt.Errorf("failed to store turn: %w", err)
		}
	}

	return tx.Commit()
}

/*
History returns the last limit turns of contextID, oldest first. A limit of
zero or less returns the whole conversation.
*/
func (memory *Memory) History(ctx context.Context, contextID string, limit int) ([]Turn, error) {
	query := "SELECT role, content, created_at FROM turns WHERE context_id = ? ORDER BY id DESC"
	args := []any{contextID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := memory.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	turns := make([]Turn, 0)

	for rows.Next() {
		var turn Turn

		if err := rows.Scan(&turn.Role, &turn.Content, &turn.CreatedAt); err != nil {
			return nil, err
		}

		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}

func (memory *Memory) Close() error {
	return memory.db.Close()
}
