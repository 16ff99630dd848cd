// Package store handles the SQLite sentence bank.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/readaloud/internal/level"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for imported sentence pools.
type Store struct {
	db *sql.DB
}

// LevelInfo summarizes one level stored in the bank.
type LevelInfo struct {
	Name       string
	Sentences  int
	ImportedAt time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sentences (
			level_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (level_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sentences_level ON sentences(level_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportSentences stores sentences for a level. With replace the existing pool
// is dropped first; otherwise sentences are appended. Returns the pool size
// after the import.
func (s *Store) ImportSentences(ctx context.Context, name string, sentences []string, replace bool) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("level name is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO levels (name, imported_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET imported_at = excluded.imported_at`,
		name, now,
	); err != nil {
		return 0, err
	}
	var levelID int64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM levels WHERE name = ?`, name).Scan(&levelID); err != nil {
		return 0, err
	}
	if replace {
		if _, err = tx.ExecContext(ctx, `DELETE FROM sentences WHERE level_id = ?`, levelID); err != nil {
			return 0, err
		}
	}
	var next int
	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM sentences WHERE level_id = ?`, levelID,
	).Scan(&next); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sentences (level_id, position, text) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, text := range sentences {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, err = stmt.ExecContext(ctx, levelID, next, text); err != nil {
			return 0, err
		}
		next++
	}

	var count int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sentences WHERE level_id = ?`, levelID).Scan(&count); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// ListLevels returns stored levels in the order they were first imported.
func (s *Store) ListLevels(ctx context.Context) ([]LevelInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT l.name, l.imported_at, COUNT(se.position)
		FROM levels l
		LEFT JOIN sentences se ON se.level_id = l.id
		GROUP BY l.id
		ORDER BY l.id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []LevelInfo
	for rows.Next() {
		var info LevelInfo
		var importedAt string
		if err := rows.Scan(&info.Name, &importedAt, &info.Sentences); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveLevel deletes a level and its sentences. Reports whether it existed.
func (s *Store) RemoveLevel(ctx context.Context, name string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM sentences WHERE level_id IN (SELECT id FROM levels WHERE name = ?)`, name,
	); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM levels WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

// LoadTable reads every stored pool into an immutable level table.
func (s *Store) LoadTable(ctx context.Context) (level.Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT l.name, se.text
		FROM sentences se
		JOIN levels l ON l.id = se.level_id
		ORDER BY l.id ASC, se.position ASC`)
	if err != nil {
		return level.Table{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var order []string
	pools := map[string][]string{}
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return level.Table{}, err
		}
		if _, ok := pools[name]; !ok {
			order = append(order, name)
		}
		pools[name] = append(pools[name], text)
	}
	if err := rows.Err(); err != nil {
		return level.Table{}, err
	}
	return level.New(order, pools), nil
}
