// Package timeslot holds the clinic's slot vocabulary helpers. A slot is a
// display-time string such as "09:00 AM"; a doctor's availability template is
// an ordered sequence of them.
package timeslot

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

const (
	HalfAM = "AM"
	HalfPM = "PM"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return d, nil
}

// FormatDate renders a date in the wire format.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// NormalizeHalf canonicalizes a time-of-day filter value. The empty string
// means "no constraint"; anything other than AM/PM (case-insensitive) is an
// error.
func NormalizeHalf(s string) (string, error) {
	switch strings.ToUpper(s) {
	case "":
		return "", nil
	case HalfAM:
		return HalfAM, nil
	case HalfPM:
		return HalfPM, nil
	default:
		return "", fmt.Errorf("invalid time of day %q: expected AM or PM", s)
	}
}

// InHalf reports whether a slot falls in the given half of the day.
func InHalf(slot, half string) bool {
	return strings.HasSuffix(strings.ToUpper(slot), half)
}

// AnyInHalf reports whether any of the slots falls in the given half of the
// day. An empty half matches every slot list.
func AnyInHalf(slots []string, half string) bool {
	if half == "" {
		return true
	}
	for _, s := range slots {
		if InHalf(s, half) {
			return true
		}
	}
	return false
}
