package store

import (
	"context"
	"sync"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/blog"
	"github.com/baharkarakas/inkwell/internal/models"
	"github.com/baharkarakas/inkwell/internal/services"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, email, password, fullName string) (models.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.Session, error)
}

type PostsAPI interface {
	FetchPosts(ctx context.Context) ([]models.EnrichedPost, error)
	AddPost(ctx context.Context, in models.NewPost) (models.EnrichedPost, error)
	UpdatePost(ctx context.Context, id string, patch models.PostPatch) (models.EnrichedPost, error)
	DeletePost(ctx context.Context, id string) (string, error)
}

// Runner executes dispatched work; *worker.Pool satisfies it.
type Runner interface {
	Submit(func())
}

type Listener func(State, Action)

type Store struct {
	auth  AuthAPI
	posts PostsAPI
	run   Runner

	mu    sync.RWMutex
	state State

	subsMu sync.Mutex
	subs   map[int]Listener
	nextID int

	// fetchMu guards fetching, the most recently started fetch.
	fetchMu  sync.Mutex
	fetching *Future[[]models.EnrichedPost]
}

// New builds a store whose auth slice is hydrated from the persisted session.
func New(ctx context.Context, a AuthAPI, p PostsAPI, run Runner) (*Store, error) {
	s := &Store{auth: a, posts: p, run: run, state: initialState(), subs: map[int]Listener{}}
	sess, err := a.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		s.state = Reduce(s.state, Action{Type: ActionHydrate, Payload: *sess})
	}
	return s, nil
}

// State returns a copy of the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to run after every action. Listeners are called
// outside the store lock and may read State.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snap := s.state.clone()
	s.mu.Unlock()

	s.subsMu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range listeners {
		fn(snap, a)
	}
}

// thunk dispatches pending, runs call on the runner and dispatches the
// outcome before resolving the returned future.
func thunk[T any](s *Store, action, fallback string, call func() (T, error)) *Future[T] {
	f := newFuture[T]()
	s.dispatch(Action{Type: action, Phase: Pending})
	s.run.Submit(func() {
		v, err := call()
		if err != nil {
			s.dispatch(Action{Type: action, Phase: Rejected, Error: apperr.Reason(err, fallback)})
		} else {
			s.dispatch(Action{Type: action, Phase: Fulfilled, Payload: v})
		}
		f.resolve(v, err)
	})
	return f
}

func (s *Store) LoginUser(ctx context.Context, email, password string) *Future[models.Session] {
	return thunk(s, services.ActionLogin, "Login failed", func() (models.Session, error) {
		return s.auth.Login(ctx, email, password)
	})
}

func (s *Store) RegisterUser(ctx context.Context, email, password, fullName string) *Future[models.Session] {
	return thunk(s, services.ActionRegister, "Registration failed", func() (models.Session, error) {
		return s.auth.Register(ctx, email, password, fullName)
	})
}

// Logout clears the auth slice and the persisted session. The slice is
// cleared even if removing the persisted keys fails.
func (s *Store) Logout(ctx context.Context) error {
	err := s.auth.Logout(ctx)
	s.dispatch(Action{Type: ActionLogout})
	return err
}

func (s *Store) ClearAuthError() { s.dispatch(Action{Type: ActionClearAuthError}) }

func (s *Store) FetchPosts(ctx context.Context) *Future[[]models.EnrichedPost] {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	return s.fetchLocked(ctx)
}

func (s *Store) fetchLocked(ctx context.Context) *Future[[]models.EnrichedPost] {
	f := thunk(s, services.ActionFetchPosts, "Failed to fetch posts", func() ([]models.EnrichedPost, error) {
		return s.posts.FetchPosts(ctx)
	})
	s.fetching = f
	return f
}

// FetchPostsIfIdle fetches only when nothing has been fetched yet. While a
// fetch is loading it returns that fetch's future; after one settled it
// returns a future already settled with the current items.
func (s *Store) FetchPostsIfIdle(ctx context.Context) *Future[[]models.EnrichedPost] {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	st := s.State()
	switch st.Posts.Status {
	case StatusIdle:
		return s.fetchLocked(ctx)
	case StatusLoading:
		if s.fetching != nil {
			return s.fetching
		}
	}
	f := newFuture[[]models.EnrichedPost]()
	f.resolve(st.Posts.Items, nil)
	return f
}

// AddPost publishes in as the signed-in user. Without one it fails at once
// and no action is dispatched.
func (s *Store) AddPost(ctx context.Context, in models.NewPost) *Future[models.EnrichedPost] {
	u := s.CurrentUser()
	if u == nil {
		return rejectedFuture[models.EnrichedPost](apperr.ErrNotAuthenticated)
	}
	in.AuthorID = u.ID
	return thunk(s, services.ActionAddPost, "Failed to create post", func() (models.EnrichedPost, error) {
		return s.posts.AddPost(ctx, in)
	})
}

func (s *Store) UpdatePost(ctx context.Context, id string, patch models.PostPatch) *Future[models.EnrichedPost] {
	return thunk(s, services.ActionUpdatePost, "Failed to update post", func() (models.EnrichedPost, error) {
		return s.posts.UpdatePost(ctx, id, patch)
	})
}

func (s *Store) DeletePost(ctx context.Context, id string) *Future[string] {
	return thunk(s, services.ActionDeletePost, "Failed to delete post", func() (string, error) {
		return s.posts.DeletePost(ctx, id)
	})
}

func (s *Store) ClearPostsError() { s.dispatch(Action{Type: ActionClearPostsError}) }

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Auth.Token != ""
}

func (s *Store) CurrentUser() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Auth.User == nil {
		return nil
	}
	u := *s.state.Auth.User
	return &u
}

// MyPosts is the dashboard view: loaded posts written by the signed-in user.
func (s *Store) MyPosts() []models.EnrichedPost {
	st := s.State()
	if st.Auth.User == nil {
		return nil
	}
	return blog.MyPosts(st.Posts.Items, st.Auth.User.ID)
}
