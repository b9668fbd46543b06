package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestFromContext_ClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=9999&offset=40")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 40 {
		t.Errorf("expected offset 40, got %d", p.Offset)
	}
}

func TestSlice(t *testing.T) {
	p := Params{Limit: 10, Offset: 95}
	lo, hi := p.Slice(100)
	if lo != 95 || hi != 100 {
		t.Errorf("expected window [95,100), got [%d,%d)", lo, hi)
	}

	p = Params{Limit: 10, Offset: 200}
	lo, hi = p.Slice(100)
	if lo != 100 || hi != 100 {
		t.Errorf("expected empty window at end, got [%d,%d)", lo, hi)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse(nil, 50, 20, 0)
	if !r.HasMore {
		t.Error("expected HasMore with remaining rows")
	}
	r = NewResponse(nil, 50, 20, 40)
	if r.HasMore {
		t.Error("expected HasMore false on final page")
	}
}
