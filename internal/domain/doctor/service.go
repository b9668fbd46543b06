package doctor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
	"github.com/smartclinic/smartclinic/pkg/timeslot"
)

type Service struct {
	repo      Repository
	booked    BookedTimesLookup
	purger    AppointmentPurger
	authority *auth.Authority
}

func NewService(repo Repository, booked BookedTimesLookup, purger AppointmentPurger, authority *auth.Authority) *Service {
	return &Service{repo: repo, booked: booked, purger: purger, authority: authority}
}

// Get returns a doctor by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, clinicerr.NotFound("doctor not found")
		}
		return nil, clinicerr.Internal("find doctor", err)
	}
	return d, nil
}

// SlotsFor returns the doctor's canonical slot vocabulary for the date, in
// template order. The date parameter keeps the contract open for per-day
// templates; the current policy is one template for every day.
func (s *Service) SlotsFor(ctx context.Context, doctorID uuid.UUID, _ time.Time) ([]string, error) {
	d, err := s.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), d.AvailableTimes...), nil
}

// FreeSlotsFor returns SlotsFor minus the times consumed by non-cancelled
// appointments on that date. Cancelled slots are bookable again. Output
// preserves template order, so identical inputs always yield identical
// ordering.
func (s *Service) FreeSlotsFor(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	return s.FreeSlotsExcluding(ctx, doctorID, date, uuid.Nil)
}

// FreeSlotsExcluding is FreeSlotsFor with one appointment's own slot removed
// from the consumed set, so an appointment being rescheduled does not collide
// with itself.
func (s *Service) FreeSlotsExcluding(ctx context.Context, doctorID uuid.UUID, date time.Time, exclude uuid.UUID) ([]string, error) {
	template, err := s.SlotsFor(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	taken, err := s.booked.BookedTimes(ctx, doctorID, date, exclude)
	if err != nil {
		return nil, clinicerr.Internal("load booked times", err)
	}

	consumed := make(map[string]bool, len(taken))
	for _, t := range taken {
		consumed[t] = true
	}

	free := make([]string, 0, len(template))
	for _, slot := range template {
		if !consumed[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// Filter returns the doctors matching every present criterion. No criteria
// returns the full listing.
func (s *Service) Filter(ctx context.Context, crit Criteria) ([]*Doctor, error) {
	half, err := timeslot.NormalizeHalf(crit.TimeOfDay)
	if err != nil {
		return nil, clinicerr.InvalidArgument(err.Error())
	}

	var doctors []*Doctor
	switch {
	case crit.Name == "" && crit.Specialty == "":
		doctors, err = s.repo.FindAll(ctx)
	case crit.Name == "":
		doctors, err = s.repo.FindBySpecialty(ctx, crit.Specialty)
	default:
		doctors, err = s.repo.FindByNameAndSpecialty(ctx, crit.Name, crit.Specialty)
	}
	if err != nil {
		return nil, clinicerr.Internal("query doctors", err)
	}

	if half == "" {
		return doctors, nil
	}
	filtered := make([]*Doctor, 0, len(doctors))
	for _, d := range doctors {
		if timeslot.AnyInHalf(d.AvailableTimes, half) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// Register creates a doctor account. A doctor with the same email is a
// conflict.
func (s *Service) Register(ctx context.Context, d *Doctor, password string) error {
	if d.Name == "" || d.Email == "" {
		return clinicerr.InvalidArgument("name and email are required")
	}
	if password == "" {
		return clinicerr.InvalidArgument("password is required")
	}

	_, err := s.repo.FindByEmail(ctx, d.Email)
	if err == nil {
		return clinicerr.Conflict("doctor already exists")
	}
	if !errors.Is(err, ErrNotFound) {
		return clinicerr.Internal("find doctor by email", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return clinicerr.Internal("hash password", err)
	}
	d.PasswordHash = hash

	if len(d.AvailableTimes) == 0 {
		d.AvailableTimes = DefaultAvailability()
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return clinicerr.Internal("save doctor", err)
	}
	return nil
}

// Update replaces a doctor's profile, including the availability template.
func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if _, err := s.Get(ctx, d.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return clinicerr.Internal("update doctor", err)
	}
	return nil
}

// Delete removes a doctor along with all of the doctor's appointments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.purger.DeleteAllByDoctor(ctx, id); err != nil {
		return clinicerr.Internal("delete doctor appointments", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return clinicerr.Internal("delete doctor", err)
	}
	return nil
}

// Login validates a doctor's credentials and issues a session token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	d, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", clinicerr.Unauthorized("invalid credentials")
		}
		return "", clinicerr.Internal("find doctor by email", err)
	}
	if !auth.CheckPassword(d.PasswordHash, password) {
		return "", clinicerr.Unauthorized("invalid credentials")
	}
	token, err := s.authority.Issue(d.ID)
	if err != nil {
		return "", clinicerr.Internal("issue token", err)
	}
	return token, nil
}
