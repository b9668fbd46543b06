package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartclinic/smartclinic/internal/platform/clinicerr"
)

type contextKey string

const subjectIDKey contextKey = "subject_id"

// Require returns middleware that authorizes the request's bearer token
// against the given roles and stores the resolved subject ID in the request
// context.
func Require(gate *Gate, roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			subjectID, err := gate.Authorize(c.Request().Context(), token, roles...)
			if err != nil {
				return clinicerr.ToHTTPError(err)
			}

			ctx := context.WithValue(c.Request().Context(), subjectIDKey, subjectID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// SubjectFromContext returns the authenticated subject ID, or uuid.Nil when
// the request did not pass through Require.
func SubjectFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(subjectIDKey).(uuid.UUID)
	return id
}

// WithSubject returns a context carrying the subject ID. Used by tests and by
// internal callers that bypass the HTTP layer.
func WithSubject(ctx context.Context, subjectID uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectIDKey, subjectID)
}
