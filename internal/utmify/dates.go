package utmify

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the timestamp format the tracking API requires:
// UTC, second precision, no timezone designator.
const DateLayout = "2006-01-02 15:04:05"

var ErrInvalidDate = errors.New("utmify: invalid date")

// FormatDate renders t in the canonical API format. A nil input yields nil,
// which serializes as an explicit null.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Truncate(time.Second).Format(DateLayout)
	return &s
}

// ParseDate accepts RFC 3339 timestamps (with or without fractional seconds),
// the canonical API format itself, and bare dates. Unparseable input fails
// with ErrInvalidDate rather than letting a garbage timestamp reach the wire.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, DateLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDateText parses s and re-renders it in the canonical format.
// Idempotent on already-canonical strings.
func FormatDateText(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return *FormatDate(&t), nil
}
