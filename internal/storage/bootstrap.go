package storage

import (
	"context"
	"time"

	"github.com/baharkarakas/inkwell/internal/models"
)

// DemoUser is the account seeded into an empty user collection. Password is
// the plaintext credential; Bootstrap stores it through the hash func it is given.
var DemoUser = models.User{
	ID:       "1",
	Email:    "demo@example.com",
	Password: "demo123",
	FullName: "Demo User",
}

// Bootstrap initializes missing collections: posts to an empty array, users
// to a single demo account. Existing keys are left alone.
func Bootstrap(ctx context.Context, kv KV, hash func(string) (string, error)) error {
	if _, ok, err := kv.Get(ctx, PostsKey); err != nil {
		return err
	} else if !ok {
		if err := NewCollection[models.Post](kv, PostsKey).Save(ctx, nil); err != nil {
			return err
		}
	}

	if _, ok, err := kv.Get(ctx, UsersKey); err != nil {
		return err
	} else if !ok {
		demo := DemoUser
		demo.CreatedAt = time.Now().UTC()
		if hash != nil {
			h, err := hash(demo.Password)
			if err != nil {
				return err
			}
			demo.Password = h
		}
		if err := NewCollection[models.User](kv, UsersKey).Save(ctx, []models.User{demo}); err != nil {
			return err
		}
	}
	return nil
}
