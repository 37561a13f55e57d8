package model

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the calendar-date representation used on the JSON boundary.
const dateLayout = "2006-01-02"

// Date is a calendar date (no time-of-day component).
//
// Release dates are a calendar concept — "Dune came out 2021-10-22" — but the
// store persists them as native timestamps. Date does the conversion at the
// boundary: JSON in/out as "YYYY-MM-DD", storage in/out as time.Time truncated
// to midnight UTC.
type Date struct {
	time.Time
}

// DateOf truncates a timestamp to its calendar date (UTC).
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("model: invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON writes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts a quoted "YYYY-MM-DD" string. Full RFC 3339
// timestamps are accepted too and truncated to their date, so records
// exported by older clients still import cleanly.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = Date{t}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("model: invalid date %q (want YYYY-MM-DD)", s)
	}
	*d = DateOf(t)
	return nil
}
