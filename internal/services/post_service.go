package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/models"
	repo "github.com/baharkarakas/inkwell/internal/repository"
)

type PostService struct {
	posts repo.Posts
	users repo.Users
	delay time.Duration
	log   *slog.Logger
}

func NewPostService(p repo.Posts, u repo.Users, delay time.Duration, log *slog.Logger) *PostService {
	return &PostService{posts: p, users: u, delay: delay, log: orDefault(log)}
}

// FetchPosts returns every post joined with its author, newest first.
func (s *PostService) FetchPosts(ctx context.Context) (out []models.EnrichedPost, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionFetchPosts, started, err, "count", len(out)) }()

	if err := latency(ctx, s.delay); err != nil {
		return nil, err
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	authors, err := s.authors(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]models.EnrichedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, enrich(p, authors))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetPost is the single-post read used by detail views.
func (s *PostService) GetPost(ctx context.Context, id string) (out models.EnrichedPost, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionGetPost, started, err, "post_id", id) }()

	if err := latency(ctx, s.delay); err != nil {
		return out, err
	}
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return out, err
	}
	if p == nil {
		return out, apperr.ErrPostNotFound
	}
	return s.enrichOne(ctx, *p)
}

func (s *PostService) AddPost(ctx context.Context, in models.NewPost) (out models.EnrichedPost, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionAddPost, started, err, "author_id", in.AuthorID, "post_id", out.ID) }()

	if in.AuthorID == "" {
		return out, apperr.ErrNotAuthenticated
	}
	if err := latency(ctx, s.delay); err != nil {
		return out, err
	}
	p, err := s.posts.Create(ctx, in)
	if err != nil {
		return out, err
	}
	return s.enrichOne(ctx, p)
}

func (s *PostService) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (out models.EnrichedPost, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionUpdatePost, started, err, "post_id", id) }()

	if err := latency(ctx, s.delay); err != nil {
		return out, err
	}
	p, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return out, err
	}
	if p == nil {
		return out, apperr.ErrPostNotFound
	}
	return s.enrichOne(ctx, *p)
}

// DeletePost returns the id of the removed post.
func (s *PostService) DeletePost(ctx context.Context, id string) (_ string, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionDeletePost, started, err, "post_id", id) }()

	if err := latency(ctx, s.delay); err != nil {
		return "", err
	}
	ok, err := s.posts.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.ErrPostNotFound
	}
	return id, nil
}

func (s *PostService) authors(ctx context.Context) (map[string]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]models.User, len(users))
	for _, u := range users {
		if _, dup := m[u.ID]; !dup {
			m[u.ID] = u
		}
	}
	return m, nil
}

func (s *PostService) enrichOne(ctx context.Context, p models.Post) (models.EnrichedPost, error) {
	u, err := s.users.FindByID(ctx, p.AuthorID)
	if err != nil {
		return models.EnrichedPost{}, err
	}
	out := models.EnrichedPost{Post: p}
	if u != nil {
		out.Profiles = u.Profile()
	}
	return out, nil
}

func enrich(p models.Post, authors map[string]models.User) models.EnrichedPost {
	out := models.EnrichedPost{Post: p}
	if u, ok := authors[p.AuthorID]; ok {
		out.Profiles = u.Profile()
	}
	return out
}
