// Package timewindow resolves optional date/date-time filter strings
// into an inclusive wall-clock range for session discovery. All values
// are naive local time — the same clock the session's own dateTime was
// stored with; no timezone conversion happens at any layer.
package timewindow

import (
	"errors"
	"time"
)

var ErrInvalidFormat = errors.New("invalid date format, expected YYYY-MM-DD or YYYY-MM-DDTHH:MM")

// Grace is subtracted from "now" for the default lower bound so that
// just-started sessions and slightly skewed clocks still match.
const Grace = time.Minute

const (
	layoutDate       = "2006-01-02"
	layoutDateTime   = "2006-01-02T15:04"
	layoutDateHour   = "2006-01-02T15"
	layoutSessionSec = "2006-01-02T15:04:05"
)

// Window is the resolved range. From is always set; To is nil for an
// open-ended range.
type Window struct {
	From time.Time
	To   *time.Time
}

// Resolve builds the window for the given raw filter strings. An empty
// from defaults the lower bound to now minus Grace; an empty to leaves
// the range open-ended. Bare dates expand to 00:00 (from) and 23:59:59
// (to).
func Resolve(from, to string, now time.Time) (Window, error) {
	w := Window{From: now.Add(-Grace)}

	if from != "" {
		t, err := parseBound(from, 0, 0, 0)
		if err != nil {
			return Window{}, err
		}
		w.From = t
	}

	if to != "" {
		t, err := parseBound(to, 23, 59, 59)
		if err != nil {
			return Window{}, err
		}
		w.To = &t
	}

	return w, nil
}

// ParseDateTime parses a session timestamp ("YYYY-MM-DDTHH:MM") as
// naive local time. Seconds are accepted and otherwise default to zero.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{layoutDateTime, layoutSessionSec, layoutDateHour} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidFormat
}

// parseBound parses a single bound, filling in the given default
// time-of-day when only a date is supplied. A date-time with a missing
// minute component defaults the minute to zero.
func parseBound(s string, defHour, defMin, defSec int) (time.Time, error) {
	if t, err := time.ParseInLocation(layoutDate, s, time.Local); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), defHour, defMin, defSec, 0, time.Local), nil
	}
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateHour, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidFormat
}
