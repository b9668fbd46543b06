package timeslot

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(d) != "2025-01-10" {
		t.Errorf("round trip mismatch: %s", FormatDate(d))
	}

	for _, bad := range []string{"", "10/01/2025", "2025-13-01", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestNormalizeHalf(t *testing.T) {
	cases := map[string]string{"": "", "AM": "AM", "am": "AM", "Pm": "PM"}
	for in, want := range cases {
		got, err := NormalizeHalf(in)
		if err != nil || got != want {
			t.Errorf("NormalizeHalf(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"noon", "A", "evening"} {
		if _, err := NormalizeHalf(bad); err == nil {
			t.Errorf("NormalizeHalf(%q): expected error", bad)
		}
	}
}

func TestAnyInHalf(t *testing.T) {
	slots := []string{"09:00 AM", "02:00 PM"}
	if !AnyInHalf(slots, HalfAM) || !AnyInHalf(slots, HalfPM) {
		t.Error("expected mixed template to match both halves")
	}
	if AnyInHalf([]string{"09:00 AM"}, HalfPM) {
		t.Error("morning-only template must not match PM")
	}
	if !AnyInHalf(nil, "") {
		t.Error("empty half means no constraint")
	}
}
