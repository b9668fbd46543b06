package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Repository when no doctor matches.
var ErrNotFound = errors.New("doctor not found")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	FindByEmail(ctx context.Context, email string) (*Doctor, error)
	FindAll(ctx context.Context) ([]*Doctor, error)
	// FindByNameAndSpecialty matches name as a case-insensitive substring and
	// specialty case-insensitively exact. An empty argument is no constraint.
	FindByNameAndSpecialty(ctx context.Context, name, specialty string) ([]*Doctor, error)
	FindBySpecialty(ctx context.Context, specialty string) ([]*Doctor, error)
	Save(ctx context.Context, d *Doctor) error
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookedTimesLookup reports the slot times already consumed by non-cancelled
// appointments for a doctor on a date. The exclude ID removes one
// appointment's own slot from the consumed set so reschedules do not collide
// with themselves; pass uuid.Nil to exclude nothing.
type BookedTimesLookup interface {
	BookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]string, error)
}

// AppointmentPurger removes all of a doctor's appointments when the doctor is
// deleted.
type AppointmentPurger interface {
	DeleteAllByDoctor(ctx context.Context, doctorID uuid.UUID) error
}
