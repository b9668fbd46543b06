package clinicerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf_TaggedError(t *testing.T) {
	err := NotFound("doctor not found")
	if KindOf(err) != KindNotFound {
		t.Errorf("expected KindNotFound, got %s", KindOf(err))
	}
}

func TestKindOf_WrappedTaggedError(t *testing.T) {
	inner := Conflict("slot unavailable")
	err := fmt.Errorf("booking failed: %w", inner)
	if KindOf(err) != KindConflict {
		t.Errorf("expected KindConflict through wrapping, got %s", KindOf(err))
	}
}

func TestKindOf_UntaggedError(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("untagged errors should default to KindInternal")
	}
}

func TestWrap_NilCause(t *testing.T) {
	if err := Wrap(KindInternal, "store", nil); err != nil {
		t.Errorf("wrapping nil should return nil, got %v", err)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("query doctors", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestToHTTPError_Statuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Unauthorized("invalid or expired token"), http.StatusUnauthorized},
		{NotFound("doctor not found"), http.StatusNotFound},
		{Conflict("appointment time not available"), http.StatusConflict},
		{InvalidArgument("invalid condition"), http.StatusBadRequest},
		{Internal("store failure", errors.New("down")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		he := ToHTTPError(tc.err)
		if he.Code != tc.status {
			t.Errorf("ToHTTPError(%v): expected status %d, got %d", tc.err, tc.status, he.Code)
		}
	}
}

func TestToHTTPError_HidesInternalDetail(t *testing.T) {
	he := ToHTTPError(Internal("query failed", errors.New("password=hunter2")))
	if he.Message != "internal server error" {
		t.Errorf("internal detail leaked to client: %v", he.Message)
	}
}
