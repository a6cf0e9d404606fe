package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/inkwell/internal/api/httpx"
	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/models"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.PublicUser, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(a Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: a}
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
func BearerToken(r *http.Request) (string, bool) {
	ah := r.Header.Get("Authorization")
	if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(ah[7:])
	return token, token != ""
}

// Auth rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			httpx.WriteAppError(w, apperr.ErrNotAuthenticated)
			return
		}
		u, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			httpx.WriteAppError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *u)))
	})
}
