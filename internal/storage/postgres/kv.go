// Package postgres stores KV entries in the kv_store table.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/inkwell/internal/db"
	"github.com/baharkarakas/inkwell/internal/storage"
)

type kv struct{ conn db.Conn }

// New returns a KV backed by conn. The kv_store table must exist; see db.RunMigrations.
func New(conn db.Conn) storage.KV {
	return &kv{conn: conn}
}

func (s *kv) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.conn.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *kv) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO kv_store(key, value) VALUES($1,$2)
         ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`,
		key, value,
	)
	return err
}

func (s *kv) Remove(ctx context.Context, key string) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM kv_store WHERE key=$1`, key)
	return err
}
