package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

func (d *DB) GetValue(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := d.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = "+placeholder, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (d *DB) SetValue(ctx context.Context, key string, value []byte) error {
	stmt := "INSERT INTO kv (key, value, updated_ts) VALUES (" + placeholders(3) + ") " +
		"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_ts = excluded.updated_ts"
	_, err := d.db.ExecContext(ctx, stmt, key, value, time.Now().Unix())
	return err
}

func (d *DB) DeleteValue(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM kv WHERE key = "+placeholder, key)
	return err
}
