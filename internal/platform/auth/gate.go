package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

// ErrSubjectUnknown is returned by a RoleDirectory when the subject ID does
// not resolve to any stored principal.
var ErrSubjectUnknown = errors.New("subject unknown")

// RoleDirectory resolves a subject's persisted role. Each entity store
// contributes its own lookup; the composition happens at the boundary.
type RoleDirectory interface {
	RoleOf(ctx context.Context, subjectID uuid.UUID) (Role, error)
}

// Gate enforces role-matched access: a token is only good for an operation
// when the subject's stored role is one of the roles the operation requires.
// All failures — expired token, bad signature, unknown subject, role
// mismatch — are presented to callers as the same Unauthorized error so the
// response does not reveal which part of the check failed. The distinction is
// kept in the log.
type Gate struct {
	authority *Authority
	directory RoleDirectory
	logger    zerolog.Logger
}

func NewGate(authority *Authority, directory RoleDirectory, logger zerolog.Logger) *Gate {
	return &Gate{authority: authority, directory: directory, logger: logger}
}

// errUnauthorized is the single client-visible authentication failure.
func errUnauthorized() error {
	return clinicerr.Unauthorized("invalid or expired token")
}

// Authorize validates the token, resolves the subject's persisted role, and
// checks it against the accepted roles. On success it returns the subject ID
// so downstream code derives identity from the token, never from a
// client-supplied ID.
func (g *Gate) Authorize(ctx context.Context, token string, roles ...Role) (uuid.UUID, error) {
	if token == "" {
		g.logger.Debug().Msg("authorize: missing token")
		return uuid.Nil, errUnauthorized()
	}

	subjectID, err := g.authority.Parse(token)
	if err != nil {
		g.logger.Debug().Err(err).Msg("authorize: token rejected")
		return uuid.Nil, errUnauthorized()
	}

	have, err := g.directory.RoleOf(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrSubjectUnknown) {
			g.logger.Debug().Str("subject", subjectID.String()).Msg("authorize: subject not found")
			return uuid.Nil, errUnauthorized()
		}
		return uuid.Nil, clinicerr.Internal("resolve subject role", err)
	}

	for _, want := range roles {
		if have == want {
			return subjectID, nil
		}
	}

	g.logger.Debug().
		Str("subject", subjectID.String()).
		Str("role", have.String()).
		Msg("authorize: role mismatch")
	return uuid.Nil, errUnauthorized()
}
