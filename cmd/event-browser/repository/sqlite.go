package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createKVTableSQL = `
CREATE TABLE IF NOT EXISTS kv_entries (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	update_date DATETIME NOT NULL
);
`

// SQLiteRepo stores entries in the kv_entries table of a sqlite file.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	return NewSQLiteRepoFromDB(db)
}

// NewSQLiteRepoFromDB creates the table on an already opened handle.
func NewSQLiteRepoFromDB(db *sql.DB) (*SQLiteRepo, error) {
	if _, err := db.Exec(createKVTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating table: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.
		QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE name = ?`, key).
		Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (r *SQLiteRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_entries (name, value, update_date) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, update_date = excluded.update_date`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (r *SQLiteRepo) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE name = ?`, key)
	return err
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
