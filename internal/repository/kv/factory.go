// Package kv implements the repositories over storage collections.
package kv

import (
	"github.com/baharkarakas/inkwell/internal/models"
	repo "github.com/baharkarakas/inkwell/internal/repository"
	"github.com/baharkarakas/inkwell/internal/storage"
)

type Repositories struct {
	Posts repo.Posts
	Users repo.Users
}

type Option func(*options)

type options struct {
	newID repo.IDGenerator
	now   repo.Clock
}

func WithIDGenerator(g repo.IDGenerator) Option { return func(o *options) { o.newID = g } }

func WithClock(c repo.Clock) Option { return func(o *options) { o.now = c } }

func NewRepositories(store storage.KV, opts ...Option) Repositories {
	o := options{newID: repo.NewID, now: repo.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return Repositories{
		Posts: &postsRepo{col: storage.NewCollection[models.Post](store, storage.PostsKey), opts: o},
		Users: &usersRepo{col: storage.NewCollection[models.User](store, storage.UsersKey), opts: o},
	}
}
