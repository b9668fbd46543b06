package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	rid, _ := c.Get("request_id").(string)
	if rid == "" {
		t.Error("expected generated request_id")
	}
	if rec.Header().Get("X-Request-ID") != rid {
		t.Error("expected response header to carry the request id")
	}
}

func TestRequestID_HonorsClientHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rid, _ := c.Get("request_id").(string); rid != "upstream-42" {
		t.Errorf("expected upstream-42, got %q", rid)
	}
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0, 2) // no refill, burst of 2

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("expected third request to be limited")
	}
	// a different client has its own bucket
	if !rl.Allow("5.6.7.8") {
		t.Error("expected separate client to pass")
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	e := echo.New()
	h := RateLimit(rl)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i, wantErr := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		err := h(c)
		if wantErr {
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusTooManyRequests {
				t.Errorf("request %d: expected 429, got %v", i, err)
			}
		} else if err != nil {
			t.Errorf("request %d: unexpected error %v", i, err)
		}
	}
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Recovery(zerolog.Nop())(func(c echo.Context) error { panic("boom") })
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 HTTPError from panic, got %v", err)
	}
}
