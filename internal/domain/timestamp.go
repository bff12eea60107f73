package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the local, zone-less ISO-8601 form used on the wire.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the calendar-date form used for request windows.
const DateLayout = "2006-01-02"

var localLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.000",
}

// ParseTimestamp parses a wire timestamp. Zone-less values are read in loc;
// values carrying an offset are converted into loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp renders t in the wire form.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
