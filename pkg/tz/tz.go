// Package tz parses and formats instants in the event's local time zone.
package tz

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the day-first format used in configuration and messages.
const Layout = "02/01/2006 15:04"

// Load resolves an IANA zone name; empty means UTC.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %q: %w", name, err)
	}
	return loc, nil
}

// Parse accepts RFC 3339 or Layout ("DD/MM/YYYY HH:MM") in loc.
// An empty string yields the zero time.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("tz: %q is neither RFC 3339 nor DD/MM/YYYY HH:MM", s)
	}
	return t, nil
}

// Format renders t in loc with Layout; the zero time renders empty.
func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(Layout)
}
