package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Asia/Kuala_Lumpur"

const DateLayout = "2006-01-02"

// Clock returns the current instant. Use cases take one so tests can pin "today".
type Clock func() time.Time

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func SystemClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Today formats the calendar date of now, in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}
