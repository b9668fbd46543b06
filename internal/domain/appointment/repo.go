package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by a Repository when no appointment matches.
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicateSlot is returned when a write would put two non-cancelled
	// appointments on the same (doctor, date, time).
	ErrDuplicateSlot = errors.New("slot already booked")
)

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error)
	Save(ctx context.Context, a *Appointment) error
	// Update rewrites date, time and status. Slot moves surface
	// ErrDuplicateSlot the same way Save does.
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteAllByDoctor(ctx context.Context, doctorID uuid.UUID) error
	// BookedTimes lists the slot times consumed by non-cancelled appointments
	// for a doctor on a date, minus the excluded appointment's slot. Pass
	// uuid.Nil to exclude nothing.
	BookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]string, error)
}
