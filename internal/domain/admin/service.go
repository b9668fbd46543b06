package admin

import (
	"context"
	"errors"
	"strings"

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

// Login validates admin credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", clinicerr.Unauthorized("invalid credentials")
		}
		return "", clinicerr.Internal("find admin", err)
	}
	if !auth.CheckPassword(a.PasswordHash, password) {
		return "", clinicerr.Unauthorized("invalid credentials")
	}
	token, err := s.authority.Issue(a.ID)
	if err != nil {
		return "", clinicerr.Internal("issue token", err)
	}
	return token, nil
}

// Create registers an admin account. Used by the bootstrap path, not exposed
// over HTTP.
func (s *Service) Create(ctx context.Context, username, password string) (*Admin, error) {
	if username == "" || password == "" {
		return nil, clinicerr.InvalidArgument("username and password are required")
	}
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, clinicerr.Conflict("admin already exists")
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, clinicerr.Internal("find admin", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, clinicerr.Internal("hash password", err)
	}
	a := &Admin{Username: username, PasswordHash: hash}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, clinicerr.Internal("save admin", err)
	}
	return a, nil
}
