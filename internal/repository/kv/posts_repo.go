package kv

import (
	"context"

	"github.com/baharkarakas/inkwell/internal/models"
	"github.com/baharkarakas/inkwell/internal/storage"
)

type postsRepo struct {
	col  *storage.Collection[models.Post]
	opts options
}

func (r *postsRepo) List(ctx context.Context) ([]models.Post, error) {
	return r.col.Load(ctx)
}

func (r *postsRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	posts, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(posts, id); i >= 0 {
		p := posts[i]
		return &p, nil
	}
	return nil, nil
}

func (r *postsRepo) Create(ctx context.Context, in models.NewPost) (models.Post, error) {
	var created models.Post
	err := r.col.Mutate(ctx, func(posts []models.Post) ([]models.Post, bool, error) {
		now := r.opts.now()
		created = models.Post{
			ID:        r.opts.newID(),
			Title:     in.Title,
			Content:   in.Content,
			Excerpt:   in.Excerpt,
			Image:     in.Image,
			Category:  in.Category,
			AuthorID:  in.AuthorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		// newest first
		out := make([]models.Post, 0, len(posts)+1)
		out = append(out, created)
		return append(out, posts...), true, nil
	})
	if err != nil {
		return models.Post{}, err
	}
	return created, nil
}

func (r *postsRepo) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	var updated *models.Post
	err := r.col.Mutate(ctx, func(posts []models.Post) ([]models.Post, bool, error) {
		i := indexOf(posts, id)
		if i < 0 {
			return nil, false, nil
		}
		patch.Apply(&posts[i])
		posts[i].UpdatedAt = r.opts.now()
		p := posts[i]
		updated = &p
		return posts, true, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postsRepo) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := r.col.Mutate(ctx, func(posts []models.Post) ([]models.Post, bool, error) {
		i := indexOf(posts, id)
		if i < 0 {
			return nil, false, nil
		}
		removed = true
		return append(posts[:i], posts[i+1:]...), true, nil
	})
	return removed, err
}

func indexOf(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
