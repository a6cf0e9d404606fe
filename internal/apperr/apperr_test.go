package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"post not found", ErrPostNotFound, KindNotFound},
		{"wrapped conflict", fmt.Errorf("register: %w", ErrEmailTaken), KindConflict},
		{"unknown login email", ErrUserNotFound, KindInvalidCredentials},
		{"forbidden", ErrNotPostAuthor, KindForbidden},
		{"plain error", errors.New("disk full"), KindInternal},
		{"nil", nil, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs_MatchesByKindOrExactReason(t *testing.T) {
	assert.True(t, errors.Is(ErrPostNotFound, &Error{Kind: KindNotFound}))
	assert.True(t, errors.Is(ErrUserNotFound, &Error{Kind: KindInvalidCredentials}))
	assert.False(t, errors.Is(ErrUserNotFound, ErrInvalidPassword))
	assert.False(t, errors.Is(ErrPostNotFound, ErrUserNotFound))
	assert.True(t, errors.Is(fmt.Errorf("x: %w", ErrInvalidPassword), ErrInvalidPassword))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "Invalid password", Reason(ErrInvalidPassword, "Login failed"))
	assert.Equal(t, "Login failed", Reason(errors.New(""), "Login failed"))
	assert.Equal(t, "", Reason(nil, "Login failed"))
}
