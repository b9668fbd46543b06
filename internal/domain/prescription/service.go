package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/smartclinic/smartclinic/internal/domain/appointment"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

// AppointmentSource resolves an appointment so the treating doctor can be
// checked. Satisfied by the appointment repository.
type AppointmentSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

type Service struct {
	repo  Repository
	appts AppointmentSource
}

func NewService(repo Repository, appts AppointmentSource) *Service {
	return &Service{repo: repo, appts: appts}
}

// Write records a prescription against an appointment. Only the treating
// doctor may, and at most one prescription exists per appointment.
func (s *Service) Write(ctx context.Context, p *Prescription, doctorID uuid.UUID) error {
	if p.Medication == "" {
		return clinicerr.InvalidArgument("medication is required")
	}

	a, err := s.appts.FindByID(ctx, p.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			return clinicerr.NotFound("appointment not found")
		}
		return clinicerr.Internal("find appointment", err)
	}
	if a.DoctorID != doctorID {
		return clinicerr.Unauthorized("invalid or expired token")
	}

	if p.PatientName == "" {
		p.PatientName = a.PatientName
	}

	if err := s.repo.Save(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return clinicerr.Conflict("prescription already exists for appointment")
		}
		return clinicerr.Internal("save prescription", err)
	}
	return nil
}

// ByAppointment returns the appointment's prescription. The treating doctor
// and the appointment's own patient may read it.
func (s *Service) ByAppointment(ctx context.Context, appointmentID, subjectID uuid.UUID) (*Prescription, error) {
	a, err := s.appts.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			return nil, clinicerr.NotFound("appointment not found")
		}
		return nil, clinicerr.Internal("find appointment", err)
	}
	if a.DoctorID != subjectID && a.PatientID != subjectID {
		return nil, clinicerr.NotFound("prescription not found")
	}

	p, err := s.repo.FindByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, clinicerr.NotFound("prescription not found")
		}
		return nil, clinicerr.Internal("find prescription", err)
	}
	return p, nil
}
