package doctor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

type mockRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) FindByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockRepo) FindByEmail(_ context.Context, email string) (*Doctor, error) {
	for _, d := range m.doctors {
		if strings.EqualFold(d.Email, email) {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) FindAll(_ context.Context) ([]*Doctor, error) {
	var out []*Doctor
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockRepo) FindByNameAndSpecialty(_ context.Context, name, specialty string) ([]*Doctor, error) {
	var out []*Doctor
	for _, d := range m.doctors {
		if name != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			continue
		}
		if specialty != "" && !strings.EqualFold(d.Specialty, specialty) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *mockRepo) FindBySpecialty(ctx context.Context, specialty string) ([]*Doctor, error) {
	return m.FindByNameAndSpecialty(ctx, "", specialty)
}

func (m *mockRepo) Save(_ context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.doctors, id)
	return nil
}

type mockBooked struct {
	times map[uuid.UUID][]string
	byID  map[uuid.UUID]string
}

func (m *mockBooked) BookedTimes(_ context.Context, doctorID uuid.UUID, _ time.Time, exclude uuid.UUID) ([]string, error) {
	var out []string
	excluded := m.byID[exclude]
	for _, t := range m.times[doctorID] {
		if t == excluded {
			excluded = ""
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type mockPurger struct {
	purged []uuid.UUID
}

func (m *mockPurger) DeleteAllByDoctor(_ context.Context, doctorID uuid.UUID) error {
	m.purged = append(m.purged, doctorID)
	return nil
}

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo, booked *mockBooked, purger *mockPurger) *Service {
	if booked == nil {
		booked = &mockBooked{times: map[uuid.UUID][]string{}}
	}
	if purger == nil {
		purger = &mockPurger{}
	}
	authority := auth.NewAuthority([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	return NewService(repo, booked, purger, authority)
}

func seedDoctor(t *testing.T, repo *mockRepo, name, specialty string, times []string) *Doctor {
	t.Helper()
	d := &Doctor{
		ID:             uuid.New(),
		Name:           name,
		Email:          strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@clinic.test",
		Specialty:      specialty,
		AvailableTimes: times,
	}
	repo.doctors[d.ID] = d
	return d
}

func TestFreeSlotsPreservesTemplateOrder(t *testing.T) {
	repo := newMockRepo()
	d := seedDoctor(t, repo, "Asha Rao", "cardiology", []string{"09:00 AM", "10:00 AM", "11:00 AM", "02:00 PM"})
	booked := &mockBooked{times: map[uuid.UUID][]string{d.ID: {"10:00 AM"}}}
	svc := newTestService(repo, booked, nil)

	free, err := svc.FreeSlotsFor(context.Background(), d.ID, testDate)
	if err != nil {
		t.Fatalf("FreeSlotsFor: %v", err)
	}
	want := []string{"09:00 AM", "11:00 AM", "02:00 PM"}
	if len(free) != len(want) {
		t.Fatalf("got %v, want %v", free, want)
	}
	for i := range want {
		if free[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, free[i], want[i])
		}
	}
}

func TestFreeSlotsAllBooked(t *testing.T) {
	repo := newMockRepo()
	d := seedDoctor(t, repo, "Asha Rao", "cardiology", []string{"09:00 AM", "10:00 AM"})
	booked := &mockBooked{times: map[uuid.UUID][]string{d.ID: {"09:00 AM", "10:00 AM"}}}
	svc := newTestService(repo, booked, nil)

	free, err := svc.FreeSlotsFor(context.Background(), d.ID, testDate)
	if err != nil {
		t.Fatalf("FreeSlotsFor: %v", err)
	}
	if len(free) != 0 {
		t.Errorf("expected empty, got %v", free)
	}
}

func TestFreeSlotsUnknownDoctor(t *testing.T) {
	svc := newTestService(newMockRepo(), nil, nil)
	_, err := svc.FreeSlotsFor(context.Background(), uuid.New(), testDate)
	if !clinicerr.IsKind(err, clinicerr.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestFreeSlotsExcludingOwnAppointment(t *testing.T) {
	repo := newMockRepo()
	d := seedDoctor(t, repo, "Asha Rao", "cardiology", []string{"09:00 AM", "10:00 AM"})
	apptID := uuid.New()
	booked := &mockBooked{
		times: map[uuid.UUID][]string{d.ID: {"09:00 AM", "10:00 AM"}},
		byID:  map[uuid.UUID]string{apptID: "09:00 AM"},
	}
	svc := newTestService(repo, booked, nil)

	free, err := svc.FreeSlotsExcluding(context.Background(), d.ID, testDate, apptID)
	if err != nil {
		t.Fatalf("FreeSlotsExcluding: %v", err)
	}
	if len(free) != 1 || free[0] != "09:00 AM" {
		t.Errorf("got %v, want [09:00 AM]", free)
	}
}

func TestFilterBySpecialtyCaseInsensitive(t *testing.T) {
	repo := newMockRepo()
	seedDoctor(t, repo, "Asha Rao", "Cardiology", DefaultAvailability())
	seedDoctor(t, repo, "Ben Okafor", "dermatology", DefaultAvailability())
	svc := newTestService(repo, nil, nil)

	got, err := svc.Filter(context.Background(), Criteria{Specialty: "CARDIOLOGY"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Asha Rao" {
		t.Errorf("got %d doctors, want only Asha Rao", len(got))
	}
}

func TestFilterByHalfDay(t *testing.T) {
	repo := newMockRepo()
	morning := seedDoctor(t, repo, "Morning Only", "gp", []string{"09:00 AM", "11:00 AM"})
	seedDoctor(t, repo, "Evening Only", "gp", []string{"02:00 PM", "03:00 PM"})
	svc := newTestService(repo, nil, nil)

	got, err := svc.Filter(context.Background(), Criteria{TimeOfDay: "am"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != morning.ID {
		t.Errorf("AM filter matched %d doctors, want only the morning one", len(got))
	}
}

func TestFilterInvalidHalf(t *testing.T) {
	svc := newTestService(newMockRepo(), nil, nil)
	_, err := svc.Filter(context.Background(), Criteria{TimeOfDay: "noon"})
	if !clinicerr.IsKind(err, clinicerr.KindInvalidArgument) {
		t.Errorf("expected invalid_argument, got %v", err)
	}
}

func TestFilterNoCriteriaReturnsAll(t *testing.T) {
	repo := newMockRepo()
	seedDoctor(t, repo, "Asha Rao", "cardiology", DefaultAvailability())
	seedDoctor(t, repo, "Ben Okafor", "dermatology", DefaultAvailability())
	svc := newTestService(repo, nil, nil)

	got, err := svc.Filter(context.Background(), Criteria{})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d doctors, want 2", len(got))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	existing := seedDoctor(t, repo, "Asha Rao", "cardiology", DefaultAvailability())
	svc := newTestService(repo, nil, nil)

	err := svc.Register(context.Background(), &Doctor{Name: "Other", Email: existing.Email}, "secret1234")
	if !clinicerr.IsKind(err, clinicerr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestRegisterSeedsDefaultAvailability(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil, nil)

	d := &Doctor{Name: "Asha Rao", Email: "asha@clinic.test"}
	if err := svc.Register(context.Background(), d, "secret1234"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(d.AvailableTimes) != len(DefaultAvailability()) {
		t.Errorf("availability not seeded: %v", d.AvailableTimes)
	}
	if d.PasswordHash == "" || d.PasswordHash == "secret1234" {
		t.Errorf("password not hashed")
	}
}

func TestDeletePurgesAppointments(t *testing.T) {
	repo := newMockRepo()
	d := seedDoctor(t, repo, "Asha Rao", "cardiology", DefaultAvailability())
	purger := &mockPurger{}
	svc := newTestService(repo, nil, purger)

	if err := svc.Delete(context.Background(), d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(purger.purged) != 1 || purger.purged[0] != d.ID {
		t.Errorf("appointments not purged for %s", d.ID)
	}
	if _, err := svc.Get(context.Background(), d.ID); !clinicerr.IsKind(err, clinicerr.KindNotFound) {
		t.Errorf("doctor still present after delete")
	}
}

func TestLogin(t *testing.T) {
	repo := newMockRepo()
	hash, err := auth.HashPassword("secret1234")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	d := seedDoctor(t, repo, "Asha Rao", "cardiology", DefaultAvailability())
	d.PasswordHash = hash
	svc := newTestService(repo, nil, nil)

	token, err := svc.Login(context.Background(), d.Email, "secret1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}

	if _, err := svc.Login(context.Background(), d.Email, "wrong"); !clinicerr.IsKind(err, clinicerr.KindUnauthorized) {
		t.Errorf("wrong password: expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@clinic.test", "secret1234"); !clinicerr.IsKind(err, clinicerr.KindUnauthorized) {
		t.Errorf("unknown email: expected unauthorized, got %v", err)
	}
}
