package models

import (
	"errors"
	"strconv"
	"time"
)

// ErrTimeOutOfRange is returned for timestamps outside years 0001-9999.
// Stores keep four-digit years only.
var ErrTimeOutOfRange = errors.New("timestamp outside years 0001-9999")

// Now returns the current time in UTC truncated to the precision every store keeps
func Now() time.Time {
	return NormalizeTime(time.Now())
}

// NormalizeTime converts t to UTC with microsecond precision
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// StorableTime reports whether t has a four-digit year
func StorableTime(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 1 && y <= 9999
}

// FormatTime formats a time.Time according to RFC3339
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTime parses either an RFC3339 timestamp or unix seconds
func ParseTime(s string) (time.Time, error) {
	var t time.Time
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		t = time.Unix(secs, 0)
	} else {
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	if !StorableTime(t) {
		return time.Time{}, ErrTimeOutOfRange
	}
	return NormalizeTime(t), nil
}
