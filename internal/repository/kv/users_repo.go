package kv

import (
	"context"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/models"
	"github.com/baharkarakas/inkwell/internal/storage"
)

type usersRepo struct {
	col  *storage.Collection[models.User]
	opts options
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	var created models.User
	err := r.col.Mutate(ctx, func(users []models.User) ([]models.User, bool, error) {
		for _, existing := range users {
			if existing.Email == u.Email {
				return nil, false, apperr.ErrEmailTaken
			}
		}
		created = u
		created.ID = r.opts.newID()
		created.CreatedAt = r.opts.now()
		return append(users, created), true, nil
	})
	if err != nil {
		return models.User{}, err
	}
	return created, nil
}

func (r *usersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.Email == email })
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	return r.col.Load(ctx)
}

func (r *usersRepo) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}
