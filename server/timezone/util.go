// Package timezone resolves the zone that defines a "day" for the
// interaction log and daily reports.
package timezone

import (
	"time"

	"github.com/pkg/errors"
)

const (
	// TimezoneLocal uses the zone of the host running the server.
	TimezoneLocal = "Local"
	// TimezoneUTC is the UTC timezone identifier.
	TimezoneUTC = "UTC"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Jerusalem").
// Empty and "Local" mean the host zone. If the timezone is invalid, returns
// the host zone and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	switch tz {
	case "", TimezoneLocal:
		return time.Local, nil
	case TimezoneUTC:
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local, errors.Wrapf(err, "invalid timezone %q", tz)
	}
	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.Local
	}
	t = t.In(tz)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, tz)
}

// SameDay reports whether a and b fall on the same calendar day in tz.
func SameDay(a, b time.Time, tz *time.Location) bool {
	return StartOfDay(a, tz).Equal(StartOfDay(b, tz))
}

// NowInTimezone returns the current time in the given timezone.
func NowInTimezone(tz *time.Location) time.Time {
	if tz == nil {
		tz = time.Local
	}
	return time.Now().In(tz)
}
