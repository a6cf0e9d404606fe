package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/auth"
	"github.com/baharkarakas/inkwell/internal/models"
	repo "github.com/baharkarakas/inkwell/internal/repository"
	"github.com/baharkarakas/inkwell/internal/repository/kv"
	"github.com/baharkarakas/inkwell/internal/storage"
)

type fixture struct {
	kv    *storage.Memory
	posts *PostService
	auth  *AuthService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mem := storage.NewMemory()
	require.NoError(t, storage.Bootstrap(context.Background(), mem, nil))

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repos := kv.NewRepositories(mem, kv.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fixture{
		kv:    mem,
		posts: NewPostService(repos.Posts, repos.Users, 0, log),
		auth:  NewAuthService(repos.Users, auth.PlainPasswords{}, auth.NewMockTokens(), storage.NewSession(mem), 0, log),
	}
}

func TestLogin_DemoUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.auth.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", s.User.Email)
	assert.Equal(t, "1", s.User.ID)
	assert.NotEmpty(t, s.Token)

	tok, ok, _ := f.kv.Get(ctx, storage.TokenKey)
	assert.True(t, ok)
	assert.Equal(t, s.Token, tok)
	raw, _, _ := f.kv.Get(ctx, storage.UserKey)
	assert.JSONEq(t, `{"id":"1","email":"demo@example.com","full_name":"Demo User"}`, raw)

	_, err = f.auth.Login(ctx, "demo@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid password", err.Error())
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))

	_, err = f.auth.Login(ctx, "nobody@example.com", "demo123")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Register(ctx, "demo@example.com", "whatever", "Dup")
	require.Error(t, err)
	assert.Equal(t, "User with this email already exists", err.Error())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	s, err := f.auth.Register(ctx, "new@example.com", "secret1", "New Person")
	require.NoError(t, err)
	assert.NotEqual(t, "1", s.User.ID)
	assert.Equal(t, "New Person", s.User.FullName)

	users, err := storage.NewCollection[models.User](f.kv, storage.UsersKey).Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, s.User.ID, users[1].ID, "new users are appended")

	// the fresh account can log in
	_, err = f.auth.Login(ctx, "new@example.com", "secret1")
	assert.NoError(t, err)

	s, err = f.auth.Register(ctx, "spaced@example.com", "secret1", "  Spaced Name ")
	require.NoError(t, err)
	assert.Equal(t, "  Spaced Name ", s.User.FullName, "full name is stored as given")
}

func TestRestoreAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	restored, err := f.auth.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)

	s, err := f.auth.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)

	restored, err = f.auth.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, s, *restored)

	u, err := f.auth.Authenticate(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
	_, err = f.auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	require.NoError(t, f.auth.Logout(ctx))
	restored, err = f.auth.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tok, err := auth.NewMockTokens().Issue(models.PublicUser{ID: "ghost"})
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestAddThenFetch_EnrichesWithAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	added, err := f.posts.AddPost(ctx, models.NewPost{Title: "A", Content: "<p>hi</p>", AuthorID: "1"})
	require.NoError(t, err)
	require.NotNil(t, added.Profiles)
	assert.Equal(t, "demo@example.com", added.Profiles.Email)

	posts, err := f.posts.FetchPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Profiles)
	assert.Equal(t, "demo@example.com", posts[0].Profiles.Email)
	require.NotNil(t, posts[0].Profiles.FullName)
	assert.Equal(t, "Demo User", *posts[0].Profiles.FullName)
}

func TestAddPost_RequiresAuthor(t *testing.T) {
	f := newFixture(t)
	_, err := f.posts.AddPost(context.Background(), models.NewPost{Title: "A", Content: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
	assert.Equal(t, "User not authenticated", err.Error())
}

func TestFetch_MissingAuthorOmitsProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.posts.AddPost(ctx, models.NewPost{Title: "Orphan", Content: "x", AuthorID: "gone"})
	require.NoError(t, err)

	posts, err := f.posts.FetchPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].Profiles)
}

func TestFetch_SortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// store out of order on purpose
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storage.NewCollection[models.Post](f.kv, storage.PostsKey).Save(ctx, []models.Post{
		{ID: "old", AuthorID: "1", CreatedAt: old, UpdatedAt: old},
		{ID: "new", AuthorID: "1", CreatedAt: old.Add(48 * time.Hour), UpdatedAt: old},
		{ID: "mid", AuthorID: "1", CreatedAt: old.Add(24 * time.Hour), UpdatedAt: old},
	}))

	posts, err := f.posts.FetchPosts(ctx)
	require.NoError(t, err)
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestDeleteFirstOfTwo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.posts.AddPost(ctx, models.NewPost{Title: "first", Content: "x", AuthorID: "1"})
	require.NoError(t, err)
	second, err := f.posts.AddPost(ctx, models.NewPost{Title: "second", Content: "y", AuthorID: "1"})
	require.NoError(t, err)

	id, err := f.posts.DeletePost(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)

	posts, err := f.posts.FetchPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, second.ID, posts[0].ID)
}

func TestUpdateDeleteGet_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.posts.UpdatePost(ctx, "missing", models.PostPatch{Title: models.StringPtr("x")})
	assert.ErrorIs(t, err, apperr.ErrPostNotFound)
	assert.Equal(t, "Post not found", err.Error())

	_, err = f.posts.DeletePost(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrPostNotFound)

	_, err = f.posts.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrPostNotFound)
}

func TestUpdatePost_ReturnsEnrichedMerge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.posts.AddPost(ctx, models.NewPost{Title: "A", Content: "x", AuthorID: "1", Category: models.StringPtr("Go")})
	require.NoError(t, err)

	got, err := f.posts.UpdatePost(ctx, p.ID, models.PostPatch{Content: models.StringPtr("y")})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "y", got.Content)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Go", *got.Category)
	assert.NotNil(t, got.Profiles)

	one, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, got, one)
}

func TestCancelledDuringDelay_LeavesStorageUntouched(t *testing.T) {
	f := newFixture(t)
	slow := NewPostService(nil, nil, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := slow.AddPost(ctx, models.NewPost{Title: "A", Content: "x", AuthorID: "1"})
	assert.True(t, errors.Is(err, context.Canceled))

	posts, err := f.posts.FetchPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

// failingPosts breaks List and delegates everything else.
type failingPosts struct{ repo.Posts }

func (failingPosts) List(context.Context) ([]models.Post, error) {
	return nil, fmt.Errorf("load mock_posts: %w", errors.New("disk gone"))
}

func TestFetch_BackendErrorIsInternal(t *testing.T) {
	f := newFixture(t)
	repos := kv.NewRepositories(f.kv)
	svc := NewPostService(failingPosts{repos.Posts}, repos.Users, 0, nil)

	_, err := svc.FetchPosts(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "disk gone")
}
