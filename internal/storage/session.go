package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baharkarakas/inkwell/internal/models"
)

// Session persists the authenticated token and user snapshot.
type Session struct {
	kv KV
}

func NewSession(kv KV) *Session { return &Session{kv: kv} }

// Load returns the persisted session. The token and the user snapshot are
// read independently; ok is false only when neither is stored, and an
// unreadable snapshot comes back as a nil user.
func (s *Session) Load(ctx context.Context) (token string, user *models.PublicUser, ok bool, err error) {
	token, _, err = s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", nil, false, fmt.Errorf("load session token: %w", err)
	}

	raw, found, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return "", nil, false, fmt.Errorf("load session user: %w", err)
	}
	if found && raw != "" && raw != "null" {
		var u models.PublicUser
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			user = &u
		}
	}
	return token, user, token != "" || user != nil, nil
}

func (s *Session) Save(ctx context.Context, token string, user models.PublicUser) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, string(b)); err != nil {
		return fmt.Errorf("save session user: %w", err)
	}
	return nil
}

func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	if err := s.kv.Remove(ctx, UserKey); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}
	return nil
}
