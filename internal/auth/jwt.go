package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baharkarakas/inkwell/internal/models"
)

// TokenManager issues HS256 tokens carrying sub, email, iat and exp.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Issue(u models.PublicUser) (string, error) {
	if len(tm.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := tm.now()
	claims := jwtClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

func (tm *TokenManager) Parse(token string) (*Claims, error) {
	c := &jwtClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
	}
	if tm.issuer != "" {
		opts = append(opts, jwt.WithIssuer(tm.issuer))
	}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	}, opts...)
	if err != nil || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	out := &Claims{UserID: c.Subject, Email: c.Email}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
