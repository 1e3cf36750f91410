package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"goalsort/internal/domain"
)

// SQLiteStore keeps goals in a SQLite database file
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the goal database at path
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			task TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_position ON goals(position);`,
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("failed to migrate goals table: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task, created_at_unixms FROM goals ORDER BY position, created_at_unixms, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var created int64
		if err := rows.Scan(&g.ID, &g.Task, &created); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.CreatedAt = time.UnixMilli(created)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *SQLiteStore) Add(ctx context.Context, task string) (domain.Goal, error) {
	task, err := NormalizeTask(task)
	if err != nil {
		return domain.Goal{}, err
	}
	g := domain.Goal{
		ID:        uuid.NewString(),
		Task:      task,
		CreatedAt: time.UnixMilli(s.now().UnixMilli()),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO goals (id, task, position, created_at_unixms)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM goals), ?)`,
		g.ID, g.Task, g.CreatedAt.UnixMilli())
	if err != nil {
		return domain.Goal{}, fmt.Errorf("failed to add goal: %w", err)
	}
	return g, nil
}

func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove goal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Move renumbers every position inside one transaction
func (s *SQLiteStore) Move(ctx context.Context, id, inFrontOfID string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin move: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids, err := orderedIDs(ctx, tx)
	if err != nil {
		return err
	}
	order, err := reorderIDs(ids, id, inFrontOfID)
	if err != nil {
		return err
	}
	for pos, gid := range order {
		if _, err = tx.ExecContext(ctx, `UPDATE goals SET position = ? WHERE id = ?`, pos, gid); err != nil {
			return fmt.Errorf("failed to update position of %s: %w", gid, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}
	return nil
}

func orderedIDs(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM goals ORDER BY position, created_at_unixms, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read order: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to read order: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
