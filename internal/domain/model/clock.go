package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// epochDay anchors TimeOfDay values; only the clock part carries meaning.
var epochDay = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// SplitClock splits s on its first colon. Without a colon the whole string is
// the minute component and the second component is empty.
func SplitClock(s string) (minute, second string) {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

// ParseTimeOfDay converts "mm:ss" into a time-of-day value on epochDay.
// Components that are empty or not numeric count as zero and an error is
// returned alongside the best-effort value.
func ParseTimeOfDay(s string) (time.Time, error) {
	minStr, secStr := SplitClock(s)
	minutes, minErr := strconv.Atoi(strings.TrimSpace(minStr))
	seconds, secErr := strconv.Atoi(strings.TrimSpace(secStr))

	var err error
	switch {
	case minErr != nil:
		minutes = 0
		err = fmt.Errorf("%w: minute %q in %q", ErrMalformedTime, minStr, s)
	case secErr != nil:
		err = fmt.Errorf("%w: second %q in %q", ErrMalformedTime, secStr, s)
	}
	if secErr != nil {
		seconds = 0
	}
	return epochDay.Add(time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second), err
}

// YearToDate returns January 1 of year in UTC.
func YearToDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// ClockSeconds returns the seconds elapsed between epochDay and t.
func ClockSeconds(t time.Time) float64 {
	return t.Sub(epochDay).Seconds()
}

// ClockFromSeconds is the inverse of ClockSeconds.
func ClockFromSeconds(sec float64) time.Time {
	return epochDay.Add(time.Duration(sec * float64(time.Second)))
}

// FormatClock renders t as "M:SS" using total minutes since epochDay, so
// values parsed by ParseTimeOfDay round-trip.
func FormatClock(t time.Time) string {
	total := int(t.Sub(epochDay) / time.Second)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}
