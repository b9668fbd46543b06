package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/smartclinic/smartclinic/internal/platform/auth"
	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

type Service struct {
	repo      Repository
	authority *auth.Authority
}

func NewService(repo Repository, authority *auth.Authority) *Service {
	return &Service{repo: repo, authority: authority}
}

// Register creates a patient account. A patient already registered under the
// same email or phone is a conflict.
func (s *Service) Register(ctx context.Context, p *Patient, password string) error {
	if p.Name == "" || p.Email == "" {
		return clinicerr.InvalidArgument("name and email are required")
	}
	if password == "" {
		return clinicerr.InvalidArgument("password is required")
	}

	_, err := s.repo.FindByEmailOrPhone(ctx, p.Email, p.Phone)
	if err == nil {
		return clinicerr.Conflict("patient already exists")
	}
	if !errors.Is(err, ErrNotFound) {
		return clinicerr.Internal("find patient", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return clinicerr.Internal("hash password", err)
	}
	p.PasswordHash = hash

	if err := s.repo.Save(ctx, p); err != nil {
		return clinicerr.Internal("save patient", err)
	}
	return nil
}

// Login validates a patient's credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	p, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", clinicerr.Unauthorized("invalid credentials")
		}
		return "", clinicerr.Internal("find patient by email", err)
	}
	if !auth.CheckPassword(p.PasswordHash, password) {
		return "", clinicerr.Unauthorized("invalid credentials")
	}
	token, err := s.authority.Issue(p.ID)
	if err != nil {
		return "", clinicerr.Internal("issue token", err)
	}
	return token, nil
}

// Get returns a patient by ID. Handlers pass the authenticated subject so a
// patient can only read their own record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, clinicerr.NotFound("patient not found")
		}
		return nil, clinicerr.Internal("find patient", err)
	}
	return p, nil
}

// Update replaces the patient's own profile.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	if _, err := s.Get(ctx, p.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return clinicerr.Internal("update patient", err)
	}
	return nil
}
