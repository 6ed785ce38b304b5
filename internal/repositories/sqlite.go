package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Totarae/shortlink-demo/internal/storage"
)

const createSQLiteSlotsSQL = `
CREATE TABLE IF NOT EXISTS kv_slots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteSlot хранит значение слота в локальной базе SQLite.
type SQLiteSlot struct {
	db  *sql.DB
	key string
}

// NewSQLiteSlot открывает базу по пути path и создаёт таблицу при необходимости.
func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(createSQLiteSlotsSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv_slots: %w", err)
	}

	return &SQLiteSlot{db: db, key: key}, nil
}

func (r *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv_slots WHERE key = ?", r.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSlotEmpty
		}
		return nil, fmt.Errorf("sqlite query error: %w", err)
	}
	return []byte(value), nil
}

func (r *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		r.key, string(data),
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert error: %w", err)
	}
	return nil
}

func (r *SQLiteSlot) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteSlot) Close() error {
	return r.db.Close()
}
