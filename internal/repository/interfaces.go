package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/inkwell/internal/models"
)

// Posts is CRUD over the post collection. No ownership checks happen here;
// any caller may update or delete any post by id.
type Posts interface {
	List(ctx context.Context) ([]models.Post, error)
	// Get returns nil when no post has the id.
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, in models.NewPost) (models.Post, error)
	// Update returns nil, and leaves the collection untouched, when id is unknown.
	Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Create assigns id and timestamp. A duplicate email yields apperr.ErrEmailTaken.
	Create(ctx context.Context, u models.User) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type IDGenerator func() string

type Clock func() time.Time

func NewID() string { return uuid.NewString() }

func Now() time.Time { return time.Now().UTC() }
