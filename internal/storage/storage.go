// Package storage is the key-value persistence shim. It mirrors an
// origin-scoped local storage: string keys, string values, and whole JSON
// collections stored under fixed keys.
package storage

import "context"

// Keys of the persisted layout.
const (
	PostsKey = "mock_posts"
	UsersKey = "mock_users"
	TokenKey = "token"
	UserKey  = "user"
)

// KV is the storage medium. Get reports ok=false for a missing key; that is
// never an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
