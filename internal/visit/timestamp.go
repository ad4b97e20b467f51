package visit

import (
	"errors"
	"time"
)

const (
	// legacyLayout is the naive layout written by earlier releases, followed by a
	// fractional-second tail of legacyTailLen characters (".123456").
	legacyLayout  = "2006-01-02 15:04:05"
	legacyTailLen = 7
)

var errShortTimestamp = errors.New("timestamp shorter than fractional tail")

// FormatTimestamp renders t as RFC 3339 with nanoseconds and an explicit offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp reads an RFC 3339 timestamp, or a legacy naive timestamp
// interpreted in loc. Failures are *ParseError.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if len(s) < legacyTailLen {
		return time.Time{}, &ParseError{Field: CookieLastVisit, Value: s, Err: errShortTimestamp}
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(legacyLayout, s[:len(s)-legacyTailLen], loc)
	if err != nil {
		return time.Time{}, &ParseError{Field: CookieLastVisit, Value: s, Err: err}
	}
	return t, nil
}
