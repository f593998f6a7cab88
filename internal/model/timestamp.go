package model

import (
	"fmt"
	"time"
)

// TimeLayout is the wire form of every record timestamp: UTC, fixed-width
// millisecond fraction. Strings in this layout sort the same way as the
// instants they encode.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Precision matches the resolution of a BSON datetime, so a record reads
// back from the store exactly as it was returned on creation.
const Precision = time.Millisecond

// Now returns the current UTC time truncated to Precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(Precision).Format(TimeLayout)
}

// ParseTime accepts TimeLayout and any other RFC 3339 form. An empty string
// yields the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
