package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

// AvailabilitySource computes a doctor's free slots for a date, optionally
// excluding one appointment's own slot from the consumed set. An unknown
// doctor surfaces as a not-found error.
type AvailabilitySource interface {
	FreeSlotsExcluding(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]string, error)
}

type Service struct {
	repo   Repository
	avail  AvailabilitySource
	locks  *slotLock
	logger zerolog.Logger
}

func NewService(repo Repository, avail AvailabilitySource, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		avail:  avail,
		locks:  newSlotLock(),
		logger: logger,
	}
}

// Validate checks whether the requested slot is currently bookable. It has
// no side effects, so repeated calls with the same request are safe. The
// exclude ID removes one appointment's own slot from the consumed set; pass
// uuid.Nil for new bookings.
func (s *Service) Validate(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string, exclude uuid.UUID) error {
	free, err := s.avail.FreeSlotsExcluding(ctx, doctorID, date, exclude)
	if err != nil {
		return err
	}
	for _, f := range free {
		if f == slot {
			return nil
		}
	}
	return clinicerr.Conflict("slot unavailable")
}

// Book creates a scheduled appointment for the authenticated patient. The
// check-then-write section is serialized per (doctor, date); the store's
// unique index catches races across processes.
func (s *Service) Book(ctx context.Context, req BookingRequest, patientID uuid.UUID) (*Appointment, error) {
	if req.Time == "" {
		return nil, clinicerr.InvalidArgument("time is required")
	}

	mu := s.locks.lockFor(req.DoctorID, req.Date)
	mu.Lock()
	defer mu.Unlock()

	if err := s.Validate(ctx, req.DoctorID, req.Date, req.Time, uuid.Nil); err != nil {
		return nil, err
	}

	a := &Appointment{
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusScheduled,
	}
	if err := s.repo.Save(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateSlot) {
			return nil, clinicerr.Conflict("slot unavailable")
		}
		return nil, clinicerr.Internal("save appointment", err)
	}

	s.logger.Info().
		Str("appointment_id", a.ID.String()).
		Str("doctor_id", a.DoctorID.String()).
		Str("time", a.Time).
		Msg("appointment booked")
	return a, nil
}

// Reschedule moves an appointment to a new slot. Only the owning patient may
// move it, and its own current slot never counts against the new one.
func (s *Service) Reschedule(ctx context.Context, apptID uuid.UUID, newDate time.Time, newTime string, patientID uuid.UUID) (*Appointment, error) {
	a, err := s.ownedBy(ctx, apptID, patientID)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusScheduled {
		return nil, clinicerr.Conflict("only scheduled appointments can be rescheduled")
	}

	mu := s.locks.lockFor(a.DoctorID, newDate)
	mu.Lock()
	defer mu.Unlock()

	if err := s.Validate(ctx, a.DoctorID, newDate, newTime, a.ID); err != nil {
		return nil, err
	}

	a.Date = newDate
	a.Time = newTime
	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateSlot) {
			return nil, clinicerr.Conflict("slot unavailable")
		}
		return nil, clinicerr.Internal("update appointment", err)
	}
	return a, nil
}

// Cancel marks an appointment cancelled. Its slot becomes bookable again.
func (s *Service) Cancel(ctx context.Context, apptID, patientID uuid.UUID) error {
	a, err := s.ownedBy(ctx, apptID, patientID)
	if err != nil {
		return err
	}
	if a.Status != StatusScheduled {
		return clinicerr.Conflict("only scheduled appointments can be cancelled")
	}
	if err := s.repo.UpdateStatus(ctx, a.ID, StatusCancelled); err != nil {
		return clinicerr.Internal("cancel appointment", err)
	}
	return nil
}

// Complete marks an appointment completed. Only the treating doctor may.
func (s *Service) Complete(ctx context.Context, apptID, doctorID uuid.UUID) error {
	return s.closeOut(ctx, apptID, doctorID, StatusCompleted)
}

// MarkNoShow records that a patient did not show up. Only the treating
// doctor may.
func (s *Service) MarkNoShow(ctx context.Context, apptID, doctorID uuid.UUID) error {
	return s.closeOut(ctx, apptID, doctorID, StatusNoShow)
}

func (s *Service) closeOut(ctx context.Context, apptID, doctorID uuid.UUID, status Status) error {
	a, err := s.get(ctx, apptID)
	if err != nil {
		return err
	}
	if a.DoctorID != doctorID {
		return clinicerr.Unauthorized("invalid or expired token")
	}
	if a.Status != StatusScheduled {
		return clinicerr.Conflict("appointment is not scheduled")
	}
	if err := s.repo.UpdateStatus(ctx, a.ID, status); err != nil {
		return clinicerr.Internal("update appointment status", err)
	}
	return nil
}

// ListForPatient returns the authenticated patient's own appointments,
// narrowed by the criteria. Other patients' data is unreachable regardless
// of criteria.
func (s *Service) ListForPatient(ctx context.Context, patientID uuid.UUID, crit Criteria) ([]*Appointment, error) {
	switch crit.Condition {
	case "", ConditionPast, ConditionFuture:
	default:
		return nil, clinicerr.InvalidArgument("condition must be past or future")
	}

	appts, err := s.repo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, clinicerr.Internal("list appointments", err)
	}

	out := make([]*Appointment, 0, len(appts))
	for _, a := range appts {
		if crit.Condition == ConditionPast && !a.Status.Past() {
			continue
		}
		if crit.Condition == ConditionFuture && a.Status != StatusScheduled {
			continue
		}
		if crit.DoctorName != "" && !strings.EqualFold(a.DoctorName, crit.DoctorName) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ListForDoctor returns a doctor's appointments for a date, optionally
// narrowed to one patient by name.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, date time.Time, patientName string) ([]*Appointment, error) {
	appts, err := s.repo.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, clinicerr.Internal("list appointments", err)
	}
	if patientName == "" {
		return appts, nil
	}
	out := make([]*Appointment, 0, len(appts))
	for _, a := range appts {
		if strings.EqualFold(a.PatientName, patientName) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Get returns one appointment, restricted to its owning patient.
func (s *Service) Get(ctx context.Context, apptID, patientID uuid.UUID) (*Appointment, error) {
	return s.ownedBy(ctx, apptID, patientID)
}

func (s *Service) get(ctx context.Context, apptID uuid.UUID) (*Appointment, error) {
	a, err := s.repo.FindByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, clinicerr.NotFound("appointment not found")
		}
		return nil, clinicerr.Internal("find appointment", err)
	}
	return a, nil
}

// ownedBy resolves an appointment and rejects callers other than the owning
// patient. Identity comes from the token subject, never a client-supplied
// ID, so a mismatch reads as not found to avoid confirming the appointment
// exists.
func (s *Service) ownedBy(ctx context.Context, apptID, patientID uuid.UUID) (*Appointment, error) {
	a, err := s.get(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if a.PatientID != patientID {
		s.logger.Debug().
			Str("appointment_id", apptID.String()).
			Str("subject_id", patientID.String()).
			Msg("appointment access by non-owner")
		return nil, clinicerr.NotFound("appointment not found")
	}
	return a, nil
}
