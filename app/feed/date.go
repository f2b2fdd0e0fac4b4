package feed

import (
	"fmt"
	"time"
)

// DisplayLayout is the DD/MM/YYYY format used on the wire and in pages.
const DisplayLayout = "02/01/2006"

// Date is a calendar day. It is always held as midnight UTC so formatting
// and comparison never depend on time.Local.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseNotionDate accepts a Notion date start value: either a bare date
// (2025-05-20) or a date-time with offset, which is converted to UTC first.
// A date-time without an offset is rejected.
func ParseNotionDate(s string) (Date, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return NewDate(t.Date()), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.UTC().Date()), nil
}

// ParseDisplayDate parses a DD/MM/YYYY string.
func ParseDisplayDate(s string) (Date, error) {
	t, err := time.Parse(DisplayLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid display date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

func (d Date) String() string {
	return d.t.Format(DisplayLayout)
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}
