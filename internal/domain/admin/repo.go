package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Repository when no admin matches.
var ErrNotFound = errors.New("admin not found")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	Save(ctx context.Context, a *Admin) error
}
