package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/auth"
	"github.com/baharkarakas/inkwell/internal/models"
	repo "github.com/baharkarakas/inkwell/internal/repository"
)

// SessionStore persists the signed-in token and user between runs.
type SessionStore interface {
	Load(ctx context.Context) (token string, user *models.PublicUser, ok bool, err error)
	Save(ctx context.Context, token string, user models.PublicUser) error
	Clear(ctx context.Context) error
}

type AuthService struct {
	users   repo.Users
	hasher  auth.PasswordHasher
	tokens  auth.TokenIssuer
	session SessionStore
	delay   time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// NewAuthService wires the auth actions. session may be nil, in which case
// nothing is persisted (the HTTP API hands tokens to its clients instead).
func NewAuthService(u repo.Users, h auth.PasswordHasher, t auth.TokenIssuer, session SessionStore, delay time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{users: u, hasher: h, tokens: t, session: session, delay: delay, log: orDefault(log), now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (out models.Session, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionLogin, started, err, "email", email) }()

	if err := latency(ctx, s.delay); err != nil {
		return out, err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return out, err
	}
	if u == nil {
		return out, apperr.ErrUserNotFound
	}
	if err := s.hasher.Verify(password, u.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return out, apperr.ErrInvalidPassword
		}
		return out, err
	}
	return s.openSession(ctx, *u)
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (out models.Session, err error) {
	started := time.Now()
	defer func() { err = finish(s.log, ActionRegister, started, err, "email", email) }()

	if err := latency(ctx, s.delay); err != nil {
		return out, err
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return out, err
	}
	if existing != nil {
		return out, apperr.ErrEmailTaken
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return out, err
	}
	u, err := s.users.Create(ctx, models.User{
		Email:    email,
		Password: hash,
		FullName: fullName,
	})
	if err != nil {
		return out, err
	}
	return s.openSession(ctx, u)
}

// Logout forgets the persisted session.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	if err := s.session.Clear(ctx); err != nil {
		s.log.Error("logout", "err", err)
		return err
	}
	return nil
}

// Restore returns the persisted session, or nil when nobody is signed in.
func (s *AuthService) Restore(ctx context.Context) (*models.Session, error) {
	if s.session == nil {
		return nil, nil
	}
	token, user, ok, err := s.session.Load(ctx)
	if err != nil || !ok {
		return nil, err
	}
	out := &models.Session{Token: token}
	if user != nil {
		out.User = *user
	}
	return out, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.PublicUser, error) {
	if token == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}
	if claims.Expired(s.now()) {
		return nil, apperr.ErrInvalidToken
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrInvalidToken
	}
	pub := u.Public()
	return &pub, nil
}

func (s *AuthService) openSession(ctx context.Context, u models.User) (models.Session, error) {
	pub := u.Public()
	token, err := s.tokens.Issue(pub)
	if err != nil {
		return models.Session{}, err
	}
	if s.session != nil {
		if err := s.session.Save(ctx, token, pub); err != nil {
			return models.Session{}, err
		}
	}
	return models.Session{Token: token, User: pub}, nil
}
