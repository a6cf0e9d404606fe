package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher turns a plaintext password into what the user collection
// stores, and checks a login attempt against it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) error
}

// PlainPasswords stores passwords as given. It is the default so existing
// mock_users data keeps working.
type PlainPasswords struct{}

func (PlainPasswords) Hash(p string) (string, error) { return p, nil }

func (PlainPasswords) Verify(plain, stored string) error {
	if subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type BcryptPasswords struct{ Cost int }

func (b BcryptPasswords) Hash(p string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(p), cost)
	return string(h), err
}

func (BcryptPasswords) Verify(plain, stored string) error {
	if err := VerifyPassword(plain, stored); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// NewPasswordHasher picks the hasher for PASSWORD_MODE.
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{}, nil
	}
	return nil, fmt.Errorf("unknown password mode %q", mode)
}
