package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/models"
)

var ErrInvalidToken = apperr.ErrInvalidToken

// Claims is what a parsed token says about its holder. ExpiresAt is zero for
// tokens that never expire.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

type TokenIssuer interface {
	Issue(u models.PublicUser) (string, error)
	Parse(token string) (*Claims, error)
}

// MockTokens encodes {userId, timestamp} as base64 JSON. Anyone can forge
// one; it only identifies, it does not authenticate.
type MockTokens struct {
	now func() time.Time
}

func NewMockTokens() *MockTokens { return &MockTokens{now: time.Now} }

type mockPayload struct {
	UserID    string `json:"userId"`
	Timestamp int64  `json:"timestamp"`
}

func (m *MockTokens) Issue(u models.PublicUser) (string, error) {
	b, err := json.Marshal(mockPayload{UserID: u.ID, Timestamp: m.now().UnixMilli()})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (m *MockTokens) Parse(token string) (*Claims, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var p mockPayload
	if err := json.Unmarshal(b, &p); err != nil || p.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{UserID: p.UserID, IssuedAt: time.UnixMilli(p.Timestamp)}, nil
}

// NewTokenIssuer picks the issuer for TOKEN_MODE.
func NewTokenIssuer(mode, secret, issuer string, ttl time.Duration) (TokenIssuer, error) {
	switch mode {
	case "", "mock":
		return NewMockTokens(), nil
	case "jwt":
		if secret == "" {
			return nil, fmt.Errorf("TOKEN_MODE=jwt requires JWT_SECRET")
		}
		return NewTokenManager(secret, issuer, ttl), nil
	}
	return nil, fmt.Errorf("unknown token mode %q", mode)
}
