package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Totarae/shortlink-demo/internal/database"
	"github.com/Totarae/shortlink-demo/internal/storage"
)

// PostgresSlot хранит значение слота в таблице kv_slots.
type PostgresSlot struct {
	DB  *database.DB
	key string
}

// NewPostgresSlot создаёт слот с ключом key. Схема должна быть создана database.Migrate.
func NewPostgresSlot(db *database.DB, key string) *PostgresSlot {
	return &PostgresSlot{DB: db, key: key}
}

// Read извлекает значение слота.
func (r *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := r.DB.Pool.QueryRow(ctx, `SELECT value FROM kv_slots WHERE key = $1`, r.key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrSlotEmpty
		}
		return nil, fmt.Errorf("database query error: %w", err)
	}
	return []byte(value), nil
}

// Write сохраняет значение слота, перезаписывая предыдущее.
func (r *PostgresSlot) Write(ctx context.Context, data []byte) error {
	query := `INSERT INTO kv_slots (key, value, updated_at)
              VALUES ($1, $2, NOW())
              ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.DB.Pool.Exec(ctx, query, r.key, string(data)); err != nil {
		return fmt.Errorf("database upsert error: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы данных.
func (r *PostgresSlot) Ping(ctx context.Context) error {
	return r.DB.Ping(ctx)
}

func (r *PostgresSlot) Close() error {
	r.DB.Close()
	return nil
}
