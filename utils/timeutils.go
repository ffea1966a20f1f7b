package utils

import (
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without /usr/share/zoneinfo

	"github.com/pkg/errors"
)

// QueryTimeLayout is the timeFrom format expected by the departure boards API
const QueryTimeLayout = "2006-01-02T15:04:05"

// Clock returns the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock
var SystemClock Clock = ClockFunc(time.Now)

// ZoneName converts a configured timezone (Europe_Prague) into an IANA zone name (Europe/Prague)
func ZoneName(tz string) string {
	return strings.ReplaceAll(tz, "_", "/")
}

// LocalTimestamp returns the clock's current time in the configured timezone,
// formatted as YYYY-MM-DDTHH:MM:SS without offset
func LocalTimestamp(clock Clock, tz string) (string, error) {
	loc, err := time.LoadLocation(ZoneName(tz))
	if err != nil {
		return "", errors.Wrapf(err, "unknown timezone %q", tz)
	}
	return clock.Now().In(loc).Format(QueryTimeLayout), nil
}

// TimeOfDay extracts HH:MM from an ISO8601 timestamp such as 2024-05-01T14:05:00+02:00.
// The text after 'T' is cut at '+' and truncated to five characters (runes, not
// bytes); an input without a 'T' yields an empty string.
func TimeOfDay(ts string) string {
	_, clock, ok := strings.Cut(ts, "T")
	if !ok {
		return ""
	}
	clock, _, _ = strings.Cut(clock, "+")
	if r := []rune(clock); len(r) > 5 {
		clock = string(r[:5])
	}
	return clock
}
