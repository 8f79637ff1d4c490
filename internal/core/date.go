package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Date wraps time.Time with the wire and form conventions of the backend:
// the API serves full ISO timestamps, form inputs use plain "YYYY-MM-DD".
// All date arithmetic (financial-year bucketing, sorting, range filters)
// happens on the parsed value, never on the raw string.
type Date struct {
	time.Time
}

const formLayout = "2006-01-02"

// NewDate creates a Date pinned to midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// FormString renders the date for an editable form input.
func (d Date) FormString() string {
	return d.UTC().Format(formLayout)
}

// ParseFormDate parses a "YYYY-MM-DD" form value. The result round-trips
// through FormString without timezone drift.
func ParseFormDate(s string) (Date, error) {
	t, err := time.Parse(formLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MarshalJSON emits the RFC 3339 timestamp the backend expects. The zero
// date marshals as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON accepts the ISO shapes the backend produces: RFC 3339
// timestamps (with or without fractional seconds) and bare "YYYY-MM-DD"
// dates. null and "" decode to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, formLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

// YearMonth returns the calendar bucket key used by the monthly trend.
func (d Date) YearMonth() (year, month int) {
	t := d.UTC()
	return t.Year(), int(t.Month())
}
