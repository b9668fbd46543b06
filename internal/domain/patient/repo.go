package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Repository when no patient matches.
var ErrNotFound = errors.New("patient not found")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	FindByEmail(ctx context.Context, email string) (*Patient, error)
	// FindByEmailOrPhone matches either contact point, used for duplicate
	// detection at registration.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*Patient, error)
	Save(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error
}
