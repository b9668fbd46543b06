package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by a Repository when no prescription matches.
	ErrNotFound = errors.New("prescription not found")
	// ErrDuplicate is returned when an appointment already has a
	// prescription.
	ErrDuplicate = errors.New("prescription already exists for appointment")
)

type Repository interface {
	FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error)
	Save(ctx context.Context, p *Prescription) error
}
