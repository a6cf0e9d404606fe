package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	applied map[string]bool
	execs   []string
}

type boolRow bool

func (r boolRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = bool(r)
	return nil
}

func (c *recordingConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, sql)
	if strings.HasPrefix(sql, "INSERT INTO schema_migrations") {
		c.applied[args[0].(string)] = true
	}
	return pgconn.CommandTag{}, nil
}

func (c *recordingConn) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	return boolRow(c.applied[args[0].(string)])
}

func TestMigrations_Embedded(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	assert.Contains(t, names, "0001_kv_store.up.sql")
}

func TestRunMigrations_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	conn := &recordingConn{applied: map[string]bool{}}

	require.NoError(t, RunMigrations(ctx, conn))
	first := len(conn.execs)
	assert.True(t, conn.applied["0001_kv_store.up.sql"])

	joined := strings.Join(conn.execs, "\n")
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS kv_store")

	require.NoError(t, RunMigrations(ctx, conn))
	// second run only re-creates the bookkeeping table
	assert.Equal(t, first+1, len(conn.execs))
}
